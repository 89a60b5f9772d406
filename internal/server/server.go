// Package server exposes the placement pipeline over HTTP.
//
// # Endpoints
//
//	POST /api/v1/solve                    run the solver, store the result
//	POST /api/v1/check                    validate and score a placement
//	GET  /api/v1/placements               recent results, newest first
//	GET  /api/v1/placements/{id}          one stored result
//	GET  /api/v1/placements/{id}/render   rendered artifact (?format=svg)
//	GET  /healthz                         liveness probe
//
// Solved placements are stored under a UUID so they can be fetched and
// re-rendered later. Storage is pluggable through [Store]: the in-memory
// backend serves development and tests, the Mongo backend serves
// deployments. Rendering and solving share the pipeline [Runner], so the
// server gets placement and artifact caching for free.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/boardfit/pkg/pipeline"
)

// Default timeouts for the HTTP server.
const (
	// DefaultRequestTimeout bounds a single request, solve budget included.
	DefaultRequestTimeout = 30 * time.Second

	// shutdownTimeout bounds graceful shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server handles HTTP requests for the placement API.
type Server struct {
	Runner *pipeline.Runner
	Store  Store
	Logger *log.Logger
}

// New creates a server. Nil arguments fall back to a cache-less runner,
// an in-memory store, and the default logger.
func New(runner *pipeline.Runner, store Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{Runner: runner, Store: store, Logger: logger}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(DefaultRequestTimeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/solve", s.handleSolve)
		api.Post("/check", s.handleCheck)

		api.Route("/placements", func(pr chi.Router) {
			pr.Get("/", s.handleListPlacements)
			pr.Get("/{id}", s.handleGetPlacement)
			pr.Get("/{id}/render", s.handleRenderPlacement)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Close releases the store and the runner's cache.
func (s *Server) Close(ctx context.Context) error {
	if err := s.Store.Close(ctx); err != nil {
		return err
	}
	return s.Runner.Close()
}
