package app

import (
	"context"
	"net"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/riskibarqy/fpl-mcp/external/fpl"
	"github.com/riskibarqy/fpl-mcp/internal/config"
	"github.com/riskibarqy/fpl-mcp/internal/interfaces/mcpapi"
	"github.com/riskibarqy/fpl-mcp/internal/platform/cache"
	"github.com/riskibarqy/fpl-mcp/internal/platform/id"
	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
	"github.com/riskibarqy/fpl-mcp/internal/platform/resilience"
	"github.com/riskibarqy/fpl-mcp/internal/usecase"
)

// App holds the wired MCP server and the resources it owns.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	fplClient *fpl.Client
	handler   *mcpapi.Handler
	server    *mcp.Server
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Transport == config.TransportHTTP && cfg.HTTPAddr == "" {
		return nil, errors.New("http server addr cannot be empty")
	}

	fplClient := fpl.NewClient(fpl.ClientConfig{
		BaseURL:   cfg.FPLBaseURL,
		Timeout:   cfg.FPLTimeout,
		UserAgent: cfg.FPLUserAgent,
		Logger:    logger.Named("fpl"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FPLCircuitEnabled,
			FailureThreshold: cfg.FPLCircuitFailureCount,
			OpenTimeout:      cfg.FPLCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FPLCircuitHalfOpenMaxReq,
		},
	})

	snapshots := usecase.NewBootstrapCache(fplClient, cache.NewStore(usecase.BootstrapTTL), logger)

	handler := mcpapi.NewHandler(
		usecase.NewPlayerService(snapshots),
		usecase.NewTeamService(snapshots),
		usecase.NewGameweekService(snapshots, logger),
		usecase.NewFixtureService(snapshots, fplClient),
		usecase.NewManagerService(snapshots, fplClient, logger),
		id.NewUUIDGenerator(),
		logger.Named("mcpapi"),
		!cfg.IsProd(),
	)

	return &App{
		cfg:       cfg,
		logger:    logger,
		fplClient: fplClient,
		handler:   handler,
		server:    mcpapi.NewServer(cfg.ServiceName, cfg.ServiceVersion, handler),
	}, nil
}

func (a *App) Server() *mcp.Server {
	return a.server
}

// Router is the HTTP surface used by the streamable transport.
func (a *App) Router() http.Handler {
	return mcpapi.NewRouter(a.server, a.handler, a.cfg.MCPHTTPPath, a.logger.Named("http"))
}

// Run serves MCP on the configured transport until ctx is done or, for stdio,
// the client closes the stream.
func (a *App) Run(ctx context.Context) error {
	switch a.cfg.Transport {
	case config.TransportHTTP:
		listener, err := net.Listen("tcp", a.cfg.HTTPAddr)
		if err != nil {
			return errors.Wrapf(err, "listen on %s", a.cfg.HTTPAddr)
		}
		return a.serveHTTP(ctx, listener)
	default:
		a.logger.InfoContext(ctx, "mcp server starting", "transport", config.TransportStdio)
		err := a.server.Run(ctx, &mcp.StdioTransport{})
		if err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "run stdio transport")
		}
		return nil
	}
}

func (a *App) serveHTTP(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:      a.Router(),
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("mcp server starting",
			"transport", config.TransportHTTP,
			"addr", listener.Addr().String(),
			"path", a.cfg.MCPHTTPPath,
		)
		serveErr <- srv.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve http transport")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http transport")
	}
	a.logger.Info("http server stopped")
	return nil
}

// Close releases upstream connections.
func (a *App) Close(context.Context) error {
	a.fplClient.CloseIdleConnections()
	return nil
}
