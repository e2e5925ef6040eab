// Package server implements the browser surface: a form page and a small
// JSON API over per-session review controllers.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tildaslashalef/codelens/internal/config"
	"github.com/tildaslashalef/codelens/internal/loggy"
	"github.com/tildaslashalef/codelens/internal/metrics"
	"github.com/tildaslashalef/codelens/internal/review"
)

// Server wraps an HTTP server with graceful shutdown capabilities.
type Server struct {
	server   *http.Server
	sessions *Sessions
	ctx      context.Context
	cancel   context.CancelFunc
}

// handlerTimeout leaves room inside the write deadline for the timeout
// response itself
func handlerTimeout(write time.Duration) time.Duration {
	const margin = 2 * time.Second
	if write > 2*margin {
		return write - margin
	}
	return write * 9 / 10
}

// Options carries what the server needs besides configuration
type Options struct {
	Reviewer review.Reviewer
	Metrics  *metrics.Metrics
	Provider string
	Model    string
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, opts Options) *Server {
	sessions := NewSessions(opts.Reviewer, cfg.SessionTTL, opts.Metrics)
	handler := NewHandler(sessions, opts.Provider, opts.Model)
	opts.Metrics.SetBackend(opts.Provider, opts.Model)

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      NewRouter(handler, opts.Metrics, handlerTimeout(cfg.WriteTimeout)),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  120 * time.Second,
		},
		sessions: sessions,
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until shutdown or error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return s.Serve(ln)
}

// Serve runs the server on an existing listener
func (s *Server) Serve(ln net.Listener) error {
	go s.sessions.Run(s.ctx)

	loggy.Info("starting HTTP server", "address", ln.Addr().String())

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server with a 30-second timeout.
func (s *Server) Stop() error {
	loggy.Info("shutting down HTTP server")

	s.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
