// Package jobs runs recurring transaction work items on a pool of
// workers and retries failed items with exponential backoff.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// Status represents the current status of a job.
type Status string

const (
	// StatusPending indicates the job is waiting to be processed.
	StatusPending Status = "pending"
	// StatusRunning indicates the job is currently being processed.
	StatusRunning Status = "running"
	// StatusCompleted indicates the job completed successfully.
	StatusCompleted Status = "completed"
	// StatusRetrying indicates the job failed and waits for its next attempt.
	StatusRetrying Status = "retrying"
	// StatusFailed indicates the job failed permanently.
	StatusFailed Status = "failed"
)

// RecurringJob generates the next instance of one recurring transaction.
type RecurringJob struct {
	ID            string     `json:"id" example:"6e1d2c9a-9a59-4f7b-8a8b-3c1f1bb3a8d2"`
	TransactionID uuid.UUID  `json:"transactionId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	OwnerID       string     `json:"ownerId" example:"user_2abc3def"`
	Status        Status     `json:"status" example:"completed"`
	CreatedAt     time.Time  `json:"createdAt" example:"2024-01-08T00:00:00Z"`
	StartedAt     *time.Time `json:"startedAt,omitempty" example:"2024-01-08T00:00:01Z"`
	CompletedAt   *time.Time `json:"completedAt,omitempty" example:"2024-01-08T00:00:02Z"`
	Error         string     `json:"error,omitempty" example:""`
	Attempts      int        `json:"attempts" example:"1"`
	MaxAttempts   int        `json:"maxAttempts" example:"3"`
}

// Handler processes a job. Returning an error schedules a retry unless
// the error is permanent or the job is out of attempts.
type Handler func(ctx context.Context, job RecurringJob) error

// Publisher enqueues jobs.
type Publisher interface {
	Publish(ctx context.Context, job *RecurringJob) error
}

var ErrQueueClosed = errors.New("queue is closed")

// MaxBackOff caps the delay between two attempts.
const MaxBackOff = time.Hour

// Permanent marks err as not retryable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *backoff.PermanentError
	return errors.As(err, &p)
}

// NewBackOff returns the retry policy for jobs and notifications: base,
// 2*base, 4*base and so on without jitter, capped at MaxBackOff.
func NewBackOff(base time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = base
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = MaxBackOff
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Backoff is the delay before the given attempt number, starting at 1.
func Backoff(base time.Duration, attempt int) time.Duration {
	policy := NewBackOff(base)

	delay := policy.NextBackOff()
	for i := 1; i < attempt; i++ {
		delay = policy.NextBackOff()
	}
	return delay
}

// Retry calls fn until it succeeds, returns a permanent error or has been
// called attempts times. A permanent error is returned unwrapped.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func(ctx context.Context) error) error {
	operation := func() error {
		return fn(ctx)
	}

	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(NewBackOff(base), uint64(attempts-1)), ctx)
	return backoff.Retry(operation, policy)
}
