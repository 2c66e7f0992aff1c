package jobs

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Config configures a Queue.
type Config struct {
	Workers     int           // Number of concurrent workers
	Size        int           // Number of jobs that can wait before Publish blocks
	MaxAttempts int           // Attempts per job, including the first one
	BaseDelay   time.Duration // Delay before the first retry, doubled for each further one
	Retention   time.Duration // How long finished jobs stay visible
}

// Queue is an in-memory job queue. It is safe for concurrent use.
//
// Finished jobs are kept with their final status for the configured
// retention, so failed jobs stay visible instead of being dropped.
type Queue struct {
	config    Config
	jobChan   chan *RecurringJob
	closeChan chan struct{}
	wg        sync.WaitGroup
	inflight  sync.WaitGroup // publishers and retries that may still enqueue

	mu     sync.RWMutex
	closed bool
	jobs   map[string]*RecurringJob

	// OnFinish, when set, is called with every job that reached a final
	// status.
	OnFinish func(job RecurringJob)
}

// NewQueue creates a new in-memory job queue.
func NewQueue(config Config) *Queue {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BaseDelay <= 0 {
		config.BaseDelay = time.Second
	}
	if config.Retention <= 0 {
		config.Retention = 24 * time.Hour
	}

	return &Queue{
		config:    config,
		jobChan:   make(chan *RecurringJob, config.Size),
		closeChan: make(chan struct{}),
		jobs:      make(map[string]*RecurringJob),
	}
}

// Publish enqueues a job. It blocks while the queue is full.
func (q *Queue) Publish(ctx context.Context, job *RecurringJob) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}

	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.MaxAttempts == 0 {
		job.MaxAttempts = q.config.MaxAttempts
	}
	job.Status = StatusPending

	q.evict(time.Now().UTC())

	stored := *job
	q.jobs[stored.ID] = &stored
	q.inflight.Add(1)
	q.mu.Unlock()

	defer q.inflight.Done()
	return q.enqueue(ctx, &stored)
}

// evict removes finished jobs older than the retention. The caller must
// hold the write lock.
func (q *Queue) evict(now time.Time) {
	cutoff := now.Add(-q.config.Retention)
	for id, j := range q.jobs {
		finished := j.Status == StatusCompleted || j.Status == StatusFailed
		if finished && j.CompletedAt != nil && j.CompletedAt.Before(cutoff) {
			delete(q.jobs, id)
		}
	}
}

func (q *Queue) enqueue(ctx context.Context, job *RecurringJob) error {
	select {
	case q.jobChan <- job:
		return nil
	case <-ctx.Done():
		q.finish(job, StatusFailed, ctx.Err())
		return ctx.Err()
	case <-q.closeChan:
		q.finish(job, StatusFailed, ErrQueueClosed)
		return ErrQueueClosed
	}
}

// Start starts the workers. They run until ctx is cancelled or Stop is called.
func (q *Queue) Start(ctx context.Context, handler Handler) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, handler)
	}

	log.Debug().Int("workers", q.config.Workers).Int("size", q.config.Size).Msg("job queue started")
	return nil
}

func (q *Queue) worker(ctx context.Context, handler Handler) {
	defer q.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.closeChan:
			return
		case job := <-q.jobChan:
			q.process(ctx, job, handler)
		}
	}
}

// process executes a single attempt of a job and schedules the next
// attempt if it failed.
func (q *Queue) process(ctx context.Context, job *RecurringJob, handler Handler) {
	q.mu.Lock()
	now := time.Now().UTC()
	job.Status = StatusRunning
	job.StartedAt = &now
	job.Attempts++
	snapshot := *job
	q.mu.Unlock()

	err := handler(ctx, snapshot)
	if err == nil {
		q.finish(job, StatusCompleted, nil)
		return
	}

	logger := log.With().Str("job", snapshot.ID).Str("transaction", snapshot.TransactionID.String()).Int("attempt", snapshot.Attempts).Logger()

	if IsPermanent(err) || snapshot.Attempts >= snapshot.MaxAttempts {
		logger.Error().Err(err).Msg("job failed permanently")
		q.finish(job, StatusFailed, err)
		return
	}

	delay := Backoff(q.config.BaseDelay, snapshot.Attempts)
	logger.Warn().Err(err).Dur("delay", delay).Msg("job failed, retrying")

	q.mu.Lock()
	job.Status = StatusRetrying
	job.Error = err.Error()
	q.mu.Unlock()

	q.inflight.Add(1)
	go func() {
		defer q.inflight.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			q.mu.Lock()
			job.Status = StatusPending
			q.mu.Unlock()
			_ = q.enqueue(ctx, job)
		case <-ctx.Done():
			q.finish(job, StatusFailed, ctx.Err())
		case <-q.closeChan:
			q.finish(job, StatusFailed, ErrQueueClosed)
		}
	}()
}

func (q *Queue) finish(job *RecurringJob, status Status, err error) {
	q.mu.Lock()
	now := time.Now().UTC()
	job.Status = status
	job.CompletedAt = &now
	job.Error = ""
	if err != nil {
		job.Error = err.Error()
	}
	snapshot := *job
	q.mu.Unlock()

	if q.OnFinish != nil {
		q.OnFinish(snapshot)
	}
}

// Jobs returns a snapshot of all jobs, oldest first.
func (q *Queue) Jobs() []RecurringJob {
	q.mu.RLock()
	defer q.mu.RUnlock()

	jobs := make([]RecurringJob, 0, len(q.jobs))
	for _, j := range q.jobs {
		jobs = append(jobs, *j)
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID < jobs[j].ID
		}
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})

	return jobs
}

// Job returns the job with the given ID.
func (q *Queue) Job(id string) (RecurringJob, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	j, ok := q.jobs[id]
	if !ok {
		return RecurringJob{}, false
	}
	return *j, true
}

// Stop closes the queue and waits for running jobs to finish. Jobs that
// are still queued or waiting for a retry are marked as failed.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.closeChan)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		q.inflight.Wait()
		q.drain()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// drain fails all jobs left in the channel. Workers must have exited.
func (q *Queue) drain() {
	for {
		select {
		case job := <-q.jobChan:
			q.finish(job, StatusFailed, ErrQueueClosed)
		default:
			return
		}
	}
}

var _ Publisher = (*Queue)(nil)
