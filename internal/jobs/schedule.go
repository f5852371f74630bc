package jobs

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/worker"
)

// Schedule wires periodic jobs onto a gocron scheduler, with execution
// delegated to the worker pool.
type Schedule struct {
	cron *gocron.Scheduler
	pool *worker.Pool
	log  *logger.Logger
}

// NewSchedule creates an empty schedule over the given pool.
func NewSchedule(pool *worker.Pool) *Schedule {
	return &Schedule{
		cron: gocron.NewScheduler(time.UTC),
		pool: pool,
		log:  logger.Default().WithPrefix("jobs"),
	}
}

// Every registers a job to be submitted to the pool on a fixed interval.
func (s *Schedule) Every(interval time.Duration, job worker.Job) error {
	_, err := s.cron.Every(interval).Do(func() {
		s.pool.Submit(job)
	})
	if err != nil {
		s.log.Error("failed to schedule job %s: %v", job.Name(), err)
	}
	return err
}

// Start begins dispatching scheduled jobs in the background.
func (s *Schedule) Start() {
	s.log.Info("starting job schedule")
	s.cron.StartAsync()
}

// Stop halts dispatching. In-flight jobs finish on the pool.
func (s *Schedule) Stop() {
	s.cron.Stop()
	s.log.Info("job schedule stopped")
}
