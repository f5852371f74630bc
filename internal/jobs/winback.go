package jobs

import (
	"context"
	"time"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/models"
	"github.com/barmentor/barmentor/internal/repository"
	"github.com/barmentor/barmentor/internal/scheduler"
)

// WinbackJob reschedules progress records overdue past the staleness
// cutoff. The session planner ignores those records so a learner returning
// after a long break is not buried in reviews; this scan makes the
// abandoned items due again in small batches instead of dropping them
// forever.
type WinbackJob struct {
	Progress  repository.ProgressRepository
	BatchSize int
}

func (j *WinbackJob) Name() string { return "winback-scan" }

func (j *WinbackJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()
	cutoff := now.Add(-scheduler.StaleWindow)

	stale, err := j.Progress.StaleBefore(ctx, cutoff, j.BatchSize)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		log.Debug("no stale progress records")
		return nil
	}

	for _, p := range stale {
		p.State = rescheduleStale(p.State, now)
		p.UpdatedAt = now
		if err := j.Progress.Upsert(ctx, p); err != nil {
			return err
		}
	}

	log.Info("rescheduled %d stale progress records", len(stale))
	return nil
}

// rescheduleStale makes an abandoned item due immediately and pulls its
// interval multiplier back toward the starting point, since whatever
// schedule it was on clearly lapsed.
func rescheduleStale(state models.ReviewState, now time.Time) models.ReviewState {
	if state.Stability > 1.0 {
		state.Stability = 1.0
	}
	state.DueAt = now
	return state
}
