package transactions

import (
	"context"
	"log/slog"
	"time"
)

// Janitor periodically deletes transactions older than MaxAge. Deleted
// rows fall outside the ledger invariant by definition; the job exists to
// keep the audit table bounded, not to rewrite balances.
type Janitor struct {
	engine   *Engine
	maxAge   time.Duration
	interval time.Duration
	log      *slog.Logger
}

func NewJanitor(engine *Engine, maxAge, interval time.Duration, log *slog.Logger) *Janitor {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Janitor{engine: engine, maxAge: maxAge, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	before := time.Now().UTC().Add(-j.maxAge)
	deleted, err := j.engine.DeleteOlderThan(ctx, before)
	if err != nil {
		j.log.LogAttrs(ctx, slog.LevelError, "retention_sweep_failed",
			slog.Time("before", before),
			slog.Any("err", err),
		)
		return
	}
	if deleted > 0 {
		j.log.LogAttrs(ctx, slog.LevelInfo, "retention_sweep",
			slog.Int64("deleted", deleted),
			slog.Time("before", before),
		)
	}
}
