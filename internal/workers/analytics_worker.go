package workers

import (
	"context"
	"time"

	"hwreview_backend/internal/logger"
	"hwreview_backend/internal/services"

	"gorm.io/gorm"
)

// AnalyticsWorker periodically recomputes the monthly aggregates from
// the raw view and click events so the admin dashboard stays fresh
// without recounting on every request.
type AnalyticsWorker struct {
	db        *gorm.DB
	analytics services.AnalyticsService
	interval  time.Duration
}

func NewAnalyticsWorker(db *gorm.DB, analytics services.AnalyticsService) *AnalyticsWorker {
	return &AnalyticsWorker{
		db:        db,
		analytics: analytics,
		interval:  time.Hour,
	}
}

func (w *AnalyticsWorker) Start(ctx context.Context) {
	go w.rollupLoop(ctx)
}

func (w *AnalyticsWorker) rollupLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.rollupCurrentMonth()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Analytics worker stopped")
			return
		case <-ticker.C:
			w.rollupCurrentMonth()
		}
	}
}

// rollupCurrentMonth also refreshes the previous month shortly after a
// month boundary, so events landing near midnight UTC are not lost.
func (w *AnalyticsWorker) rollupCurrentMonth() {
	now := time.Now().UTC()

	if _, err := w.analytics.RollupMonth(w.db, now.Year(), int(now.Month())); err != nil {
		logger.WithError(err).Error("Monthly analytics rollup failed",
			"year", now.Year(), "month", int(now.Month()))
	}

	if now.Day() == 1 {
		prev := now.AddDate(0, -1, 0)
		if _, err := w.analytics.RollupMonth(w.db, prev.Year(), int(prev.Month())); err != nil {
			logger.WithError(err).Error("Previous month rollup failed",
				"year", prev.Year(), "month", int(prev.Month()))
		}
	}
}
