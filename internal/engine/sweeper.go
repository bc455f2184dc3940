package engine

import (
	"context"
	"log/slog"
	"time"
)

// Pruner is any state-holding structure the background sweep can bound.
type Pruner interface {
	Prune(now time.Time) int
}

// Sweeper prunes expired cooldown and filter state on a fixed interval,
// independent of event volume. At most one sweep runs at a time: a
// single goroutine drives the ticker, and each pruner takes its own
// lock before mutating, so an in-flight evaluation never loses an entry
// it is about to write.
type Sweeper struct {
	interval time.Duration
	pruners  []Pruner
}

// NewSweeper creates a sweeper over the given pruners.
func NewSweeper(interval time.Duration, pruners ...Pruner) *Sweeper {
	return &Sweeper{interval: interval, pruners: pruners}
}

// Run sweeps until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Background sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Background sweeper stopped")
			return
		case <-ticker.C:
			now := time.Now()
			removed := 0
			for _, p := range s.pruners {
				removed += p.Prune(now)
			}
			if removed > 0 {
				slog.Debug("Swept expired state", "removed", removed)
			}
		}
	}
}
