// Package server exposes radar analysis over HTTP.
//
// Analyses stream their progress as server-sent events: one "progress"
// frame per message, then a single "complete" frame carrying the matrix or
// an "error" frame. Saved radars are served as JSON.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/store"
)

// DefaultShutdownTimeout bounds the graceful shutdown of ListenAndServe.
const DefaultShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr       string      // Listen address (default: ":8080")
	AllowLocal bool        // Accept path= and file:// repositories
	Logger     *log.Logger // Request and error logging (default: log.Default())
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

// Server serves the radar API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	opts   Options
	router http.Handler
}

// New creates a server over runner. Radars are read from and saved to the
// runner's store; a runner without a store gets an in-memory one.
func New(runner *pipeline.Runner, opts Options) *Server {
	if runner.Store == nil {
		runner.Store = store.NewMemoryStore()
	}
	s := &Server{runner: runner, store: runner.Store, opts: opts.WithDefaults()}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("starting API server", "addr", s.opts.Addr, "allowLocal", s.opts.AllowLocal)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), DefaultShutdownTimeout)
	defer cancel()
	s.opts.Logger.Info("shutting down API server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
