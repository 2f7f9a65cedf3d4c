package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/hbracken/fedlease/pkg/logging"
)

// GracefulServer wraps an HTTP server with signal-driven graceful
// shutdown.
type GracefulServer struct {
	server       *http.Server
	logger       logging.Logger
	timeout      time.Duration
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// NewGracefulServer wraps srv. timeout bounds how long in-flight requests
// get to drain during shutdown.
func NewGracefulServer(srv *http.Server, logger logging.Logger, timeout time.Duration) *GracefulServer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GracefulServer{
		server:     srv,
		logger:     logger,
		timeout:    timeout,
		shutdownCh: make(chan struct{}),
	}
}

// Start serves until the listener fails or a shutdown signal arrives.
func (gs *GracefulServer) Start() error {
	go gs.handleSignals()

	gs.logger.Info("http server listening", logging.String("addr", gs.server.Addr))
	if err := gs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server. Safe to call
// more than once.
func (gs *GracefulServer) Shutdown() error {
	var err error
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)

		ctx, cancel := context.WithTimeout(context.Background(), gs.timeout)
		defer cancel()

		gs.logger.Info("shutting down", logging.Duration("timeout", gs.timeout))
		if shutdownErr := gs.server.Shutdown(ctx); shutdownErr != nil {
			err = shutdownErr
			gs.logger.Error("shutdown error", logging.Error(shutdownErr))
		} else {
			gs.logger.Info("shutdown complete")
		}
	})
	return err
}

// IsShuttingDown reports whether shutdown has been initiated.
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

func (gs *GracefulServer) handleSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	gs.logger.Info("signal received", logging.String("signal", sig.String()))
	if err := gs.Shutdown(); err != nil {
		os.Exit(1)
	}
}
