package worker

import (
	"context"
	"log/slog"
	"time"

	"leisure-booking-api/internal/pkg/config"
	"leisure-booking-api/internal/usecase/commands"
)

// Sweeper periodically reclaims expired holds. It is a safety net behind the
// live expiry checks in the availability resolver and checkout path, so a
// delayed run degrades nothing but tidiness.
type Sweeper struct {
	sweep    commands.SweepCommands
	interval time.Duration
	timeout  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(sweep commands.SweepCommands, cfg config.BookingConfig) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: cfg.SweepInterval,
		timeout:  cfg.SweepTimeout,
	}
}

func (s *Sweeper) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
	slog.Info("hold sweeper started", "interval", s.interval)
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reclaimed, err := s.sweep.SweepExpiredHolds(runCtx)
	if err != nil {
		slog.Error("hold sweep failed", "error", err)
		return
	}
	if reclaimed > 0 {
		slog.Info("reclaimed expired holds", "count", reclaimed)
	}
}

func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
