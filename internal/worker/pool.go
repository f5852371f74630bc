package worker

import (
	"context"
	"sync"
	"time"

	"github.com/barmentor/barmentor/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool runs submitted jobs on a fixed set of workers.
type Pool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	cancel  context.CancelFunc
	log     *logger.Logger
}

// NewPool creates a pool with the given worker count and queue size.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 32
	}
	return &Pool{
		jobs:    make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("worker-pool"),
	}
}

// Start launches the workers. They run until ctx is cancelled or Stop is
// called.
func (p *Pool) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.log.Info("starting worker pool with %d workers", p.workers)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func(id int) {
			defer p.wg.Done()
			workerLog := p.log.WithField("worker_id", id)

			for {
				select {
				case <-ctx.Done():
					workerLog.Debug("worker shutting down")
					return
				case job := <-p.jobs:
					if job == nil {
						return
					}
					jobLog := workerLog.WithField("job", job.Name())
					start := time.Now()
					jobCtx := logger.NewContext(ctx, jobLog)
					if err := job.Run(jobCtx); err != nil {
						jobLog.Error("job failed after %v: %v", time.Since(start), err)
					} else {
						jobLog.Info("job completed in %v", time.Since(start))
					}
				}
			}
		}(i + 1)
	}
}

// Stop cancels running jobs and waits for the workers to drain.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	close(p.jobs)
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}

// Submit enqueues a job, blocking when the queue is full.
func (p *Pool) Submit(job Job) {
	p.log.Debug("submitting job: %s", job.Name())
	p.jobs <- job
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.jobs)
}
