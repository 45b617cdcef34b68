/*
scheduler.go - Calculation history retention

PURPOSE:
  Periodically deletes stored calculations older than the retention window
  so the history table does not grow without bound.

DESIGN:
  - A robfig/cron schedule (standard 5-field spec, default "0 3 * * *")
  - Each run deletes calculations created before now - RetentionDays
  - Panics inside a run are recovered and logged by the cron chain
  - RetentionDays = 0 disables the scheduler entirely

USAGE:
  scheduler, err := NewRetentionScheduler(store, 400, "0 3 * * *", logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - premium/store.go: DeleteCreatedBefore
  - config/config.go: RETENTION_DAYS, RETENTION_SCHEDULE
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/warp/shift-premium/premium"
)

// RetentionScheduler prunes old calculations on a cron schedule.
type RetentionScheduler struct {
	Store         premium.Store
	RetentionDays int
	Schedule      string
	Logger        *slog.Logger

	// Now is replaceable in tests.
	Now func() time.Time

	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	lastRun time.Time
}

// NewRetentionScheduler validates the schedule and creates a stopped
// scheduler.
func NewRetentionScheduler(store premium.Store, retentionDays int, schedule string, logger *slog.Logger) (*RetentionScheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	rs := &RetentionScheduler{
		Store:         store,
		RetentionDays: retentionDays,
		Schedule:      schedule,
		Logger:        logger,
		Now:           time.Now,
	}
	if !rs.Enabled() {
		return rs, nil
	}

	rs.cron = cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))),
	))
	id, err := rs.cron.AddFunc(schedule, rs.RunNow)
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	rs.entryID = id
	return rs, nil
}

// Enabled reports whether pruning is configured.
func (rs *RetentionScheduler) Enabled() bool {
	return rs.RetentionDays > 0
}

// Start begins the scheduler.
func (rs *RetentionScheduler) Start() {
	if !rs.Enabled() {
		rs.Logger.Info("retention scheduler disabled")
		return
	}
	rs.cron.Start()
	rs.Logger.Info("retention scheduler started",
		"schedule", rs.Schedule,
		"retention_days", rs.RetentionDays,
		"next_run", rs.NextRunTime(),
	)
}

// Stop stops the scheduler and waits for a running job to finish.
func (rs *RetentionScheduler) Stop() {
	if !rs.Enabled() {
		return
	}
	<-rs.cron.Stop().Done()
	rs.Logger.Info("retention scheduler stopped")
}

// RunNow deletes everything older than the retention window immediately.
func (rs *RetentionScheduler) RunNow() {
	if _, err := rs.Prune(context.Background()); err != nil {
		rs.Logger.Error("retention run failed", "error", err)
	}
}

// Prune deletes calculations created before now - RetentionDays and
// returns how many were removed.
func (rs *RetentionScheduler) Prune(ctx context.Context) (int64, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled() {
		return 0, nil
	}
	now := rs.Now()
	cutoff := now.AddDate(0, 0, -rs.RetentionDays)
	n, err := rs.Store.DeleteCreatedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune calculations before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	rs.lastRun = now
	rs.Logger.Info("retention run complete", "deleted", n, "cutoff", cutoff.Format(time.RFC3339))
	return n, nil
}

// LastRun returns when Prune last succeeded (zero if never).
func (rs *RetentionScheduler) LastRun() time.Time {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastRun
}

// NextRunTime returns the next scheduled run (zero if disabled or stopped).
func (rs *RetentionScheduler) NextRunTime() time.Time {
	if !rs.Enabled() {
		return time.Time{}
	}
	return rs.cron.Entry(rs.entryID).Next
}
