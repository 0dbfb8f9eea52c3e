package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/fpl-mcp/internal/platform/logging"
)

const closerTimeout = 5 * time.Second

type closer struct {
	name string
	fn   func(context.Context) error
}

// Shutdowner runs the process exit sequence once: log, wait the grace delay,
// run closers in reverse registration order, exit. Later triggers are ignored.
type Shutdowner struct {
	logger     *logging.Logger
	grace      time.Duration
	exit       func(code int)
	sleep      func(time.Duration)
	inProgress atomic.Bool

	mu      sync.Mutex
	closers []closer
}

func NewShutdowner(logger *logging.Logger, grace time.Duration, exit func(code int)) *Shutdowner {
	if logger == nil {
		logger = logging.Default()
	}
	if grace < 0 {
		grace = 0
	}
	return &Shutdowner{
		logger: logger,
		grace:  grace,
		exit:   exit,
		sleep:  time.Sleep,
	}
}

func (s *Shutdowner) AddCloser(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

// Shutdown reports false when another shutdown already started.
func (s *Shutdowner) Shutdown(reason string, code int) bool {
	if !s.inProgress.CompareAndSwap(false, true) {
		s.logger.Debug("shutdown already in progress", "reason", reason)
		return false
	}

	s.logger.Info("shutting down", "reason", reason, "exit_code", code, "grace", s.grace)
	if s.grace > 0 {
		s.sleep(s.grace)
	}

	s.mu.Lock()
	closers := append([]closer(nil), s.closers...)
	s.mu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		ctx, cancel := context.WithTimeout(context.Background(), closerTimeout)
		if err := closers[i].fn(ctx); err != nil {
			s.logger.Error("close resource", "name", closers[i].name, "error", err)
		}
		cancel()
	}

	_ = s.logger.Sync()
	if s.exit != nil {
		s.exit(code)
	}
	return true
}
