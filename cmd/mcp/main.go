package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/app"
	"github.com/riskibarqy/fpl-mcp/internal/config"
	"github.com/riskibarqy/fpl-mcp/internal/observability"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)

	shutdowner := app.NewShutdowner(logger, cfg.ShutdownGrace, os.Exit)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("unrecovered panic", "panic", rec)
			shutdowner.Shutdown("panic", 1)
		}
	}()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}
	shutdowner.AddCloser("uptrace", shutdownUptrace)

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}
	shutdowner.AddCloser("pyroscope", func(context.Context) error { return stopPyroscope() })

	pprofServer, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		logger.Error("start pprof", "error", err)
		os.Exit(1)
	}
	shutdowner.AddCloser("pprof", func(context.Context) error {
		return observability.StopPprofServer(pprofServer, logger, 5*time.Second)
	})

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		shutdowner.Shutdown("build failed", 1)
		return
	}
	shutdowner.AddCloser("fpl client", application.Close)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Error("mcp server failed", "error", err)
		shutdowner.Shutdown("server error", 1)
		return
	}

	reason := "transport closed"
	if ctx.Err() != nil {
		reason = "signal"
	}
	shutdowner.Shutdown(reason, 0)
}
