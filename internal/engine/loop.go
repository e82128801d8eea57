// The interval loop that drives scheduler ticks.
package engine

import (
	"context"
	"log/slog"
	"time"
)

// Loop drives the scheduler on a fixed cadence. The loop owns the timer
// only; tick serialization lives in the scheduler itself.
type Loop struct {
	Interval  time.Duration
	Scheduler *Scheduler
}

// Run blocks until ctx is cancelled. An in-flight tick is allowed to
// finish before Run returns; cancellation only stops the cadence.
func (l *Loop) Run(ctx context.Context) {
	interval := l.Interval
	if interval <= 0 {
		interval = time.Minute
	}

	slog.Info("simulation loop started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Ticks get an uncancelled context so shutdown never leaves a
	// half-finished faction merge behind.
	tickCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopped")
			return
		case <-ticker.C:
			l.Scheduler.Tick(tickCtx)
		}
	}
}
