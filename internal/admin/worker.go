package admin

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StatsWorker periodically recomputes the dashboard stats so the admin
// landing page never waits on the aggregate queries.
type StatsWorker struct {
	svc      *Service
	interval time.Duration
	logger   zerolog.Logger
}

func NewStatsWorker(svc *Service, interval time.Duration, logger zerolog.Logger) *StatsWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StatsWorker{
		svc:      svc,
		interval: interval,
		logger:   logger.With().Str("component", "stats_worker").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *StatsWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *StatsWorker) tick(ctx context.Context) {
	stats, err := w.svc.RefreshStats(ctx)
	if err != nil {
		w.logger.Warn().Err(err).Msg("stats refresh failed")
		return
	}
	w.logger.Debug().
		Int64("total_users", stats.TotalUsers).
		Int64("taken", stats.TakenCount).
		Msg("dashboard stats refreshed")
}
