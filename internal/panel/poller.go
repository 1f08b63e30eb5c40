package panel

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is how often the task list is refreshed.
const DefaultPollInterval = 2 * time.Second

// PollerConfig tunes a Poller.
type PollerConfig struct {
	Interval time.Duration
	// Timeout bounds each refresh; zero leaves it to the refresh function.
	Timeout time.Duration
	// OverlapGuard drops a tick while the previous refresh is still
	// outstanding. Off, every tick refreshes and responses may land out
	// of order.
	OverlapGuard bool
}

// Poller refreshes immediately and then on every interval until stopped.
type Poller struct {
	refresh func(context.Context) error
	config  PollerConfig
	logger  *slog.Logger

	inFlight atomic.Bool
	skipped  atomic.Int64
	wg       sync.WaitGroup
}

// NewPoller creates a poller calling refresh, usually Controller.RefreshTasks.
func NewPoller(refresh func(context.Context) error, cfg PollerConfig, logger *slog.Logger) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		refresh: refresh,
		config:  cfg,
		logger:  logger,
	}
}

// Run blocks until ctx is canceled and all started refreshes have returned.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	p.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			p.wg.Wait()
			return nil
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// Skipped returns how many ticks were dropped by the overlap guard.
// It stays zero while the guard is off.
func (p *Poller) Skipped() int64 {
	return p.skipped.Load()
}

func (p *Poller) tick(ctx context.Context) {
	guarded := p.config.OverlapGuard
	if guarded && !p.inFlight.CompareAndSwap(false, true) {
		p.skipped.Add(1)
		p.logger.Debug("previous refresh still in flight, skipping tick")
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if guarded {
			defer p.inFlight.Store(false)
		}

		rctx := ctx
		if p.config.Timeout > 0 {
			var cancel context.CancelFunc
			rctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
			defer cancel()
		}
		// Errors are the refresh function's to report.
		_ = p.refresh(rctx)
	}()
}
