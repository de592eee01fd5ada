// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                    liveness probe
//	POST /v1/layout                  compute a layout for an inline gallery
//	GET  /v1/layout/{hash}           fetch a stored layout by gallery hash
//	GET  /v1/layout/{hash}/artifact  render a stored layout (format query param)
//
// The server is stateless: layouts and artifacts are cached through the
// shared Runner, and durable retrieval goes through the optional store.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/fernvale/mosaic/pkg/pipeline"
	"github.com/fernvale/mosaic/pkg/store"
)

// Config holds server collaborators and settings.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Store  *store.LayoutStore // optional; nil disables stored-layout routes
	Logger *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Defaults to 10s.
	ShutdownTimeout time.Duration
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	router chi.Router
	http   *http.Server
}

// New builds the server and its route table.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(cfg.Logger))
	r.Use(recoverMiddleware(cfg.Logger))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleComputeLayout)
		r.Get("/layout/{hash}", s.handleGetLayout)
		r.Get("/layout/{hash}/artifact", s.handleRenderLayout)
	})

	s.router = r
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("server listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.cfg.Logger.Info("server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
