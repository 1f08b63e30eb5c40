// Package server runs the web panel and its background maintenance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultShutdownTimeout = 10 * time.Second

// Pruner drops expired cache entries.
type Pruner interface {
	PruneCache(ctx context.Context) (int64, error)
}

// Config for the runner.
type Config struct {
	Listen string
	// PruneInterval is how often expired cache entries are removed.
	// Zero disables pruning.
	PruneInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Runner serves the panel and runs background jobs until stopped.
type Runner struct {
	handler http.Handler
	pruner  Pruner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner. pruner may be nil.
func NewRunner(handler http.Handler, pruner Pruner, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Runner{
		handler: handler,
		pruner:  pruner,
		config:  cfg,
		logger:  logger,
	}
}

// Run listens on the configured address. See Serve.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return r.Serve(ctx, ln)
}

// Serve blocks until ctx is canceled or the server fails, then shuts the
// server down gracefully. Cancellation is a clean stop and returns nil.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("web panel listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if r.pruner != nil && r.config.PruneInterval > 0 {
		g.Go(func() error {
			r.prune(gctx)
			ticker := time.NewTicker(r.config.PruneInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					r.prune(gctx)
				}
			}
		})
	}

	return g.Wait()
}

func (r *Runner) prune(ctx context.Context) {
	n, err := r.pruner.PruneCache(ctx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("cache prune failed", "error", err)
		}
		return
	}
	if n > 0 {
		r.logger.Debug("pruned expired cache entries", "count", n)
	}
}
