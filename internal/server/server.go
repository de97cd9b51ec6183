// Package server exposes the duckbridge operations over HTTP/JSON.
// Every error crosses the boundary as a JSON body with a message,
// never as a crash; a panicking handler is recovered by middleware.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/duckbridge/internal/db"
	"github.com/leapstack-labs/duckbridge/internal/history"
)

// Server hosts the boundary surface.
type Server struct {
	db      *db.DB
	history *history.Store
	addr    string
	logger  *slog.Logger
}

// Config holds configuration for the server.
type Config struct {
	DB      *db.DB
	History *history.Store
	Addr    string
	Logger  *slog.Logger
}

// New creates a server. History may be nil to disable recording.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		db:      cfg.DB,
		history: cfg.History,
		addr:    cfg.Addr,
		logger:  logger,
	}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/database/init", s.handleInit)
		r.Post("/import", s.handleImport)
		r.Post("/query", s.handleQuery)
		r.Get("/tables", s.handleTables)
		r.Get("/indexes", s.handleIndexes)
		r.Post("/indexes", s.handleCreateIndex)
	})

	return r
}

// Serve starts the server and blocks until the context is cancelled
// or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
