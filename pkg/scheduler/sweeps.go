// Package scheduler contains the two periodic sweeps of the ledger and
// the loop that triggers them.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/notify"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Kind identifies a sweep.
type Kind string

const (
	KindRecurrence   Kind = "recurrence"
	KindBudgetAlerts Kind = "budget-alerts"
)

// Sweeps evaluates the ledger and dispatches or performs the resulting work.
type Sweeps struct {
	DB        *gorm.DB
	Poster    ledger.Poster
	Monitor   ledger.Monitor
	Notifier  notify.Notifier
	Publisher jobs.Publisher

	// Throttle limits recurring jobs per owner. Optional.
	Throttle *jobs.Throttle

	// Delivery of a single alert is attempted this often.
	NotifyAttempts int
	RetryBaseDelay time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// RecurrenceResult summarizes a recurrence sweep.
type RecurrenceResult struct {
	Due        int `json:"due" example:"3"`        // Recurring transactions that were due
	Dispatched int `json:"dispatched" example:"3"` // Jobs that were published
	Failed     int `json:"failed" example:"0"`     // Jobs that could not be published
}

// BudgetResult summarizes a budget alert sweep.
type BudgetResult struct {
	Evaluated int `json:"evaluated" example:"12"` // Budgets of owners with a default account
	Alerted   int `json:"alerted" example:"1"`    // Alerts delivered and recorded
	Failed    int `json:"failed" example:"0"`     // Budgets that could not be evaluated or alerted
}

func (s Sweeps) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RunRecurrenceSweep publishes one job for every recurring transaction that
// is due. It does not modify the ledger itself.
//
// A failure to publish a single job is counted and logged, only a failure
// to determine the due transactions is returned.
func (s Sweeps) RunRecurrenceSweep(ctx context.Context) (result RecurrenceResult, err error) {
	defer func() { observeSweep(KindRecurrence, err) }()

	now := s.now()

	candidates, err := ledger.DueCandidates(ctx, s.DB, now)
	if err != nil {
		return RecurrenceResult{}, fmt.Errorf("loading recurring transactions: %w", err)
	}

	owners := make(map[string]string, len(candidates))
	for _, c := range candidates {
		owners[c.ID.String()] = c.OwnerID
	}

	due := ledger.DueForProcessing(candidates, now)
	result.Due = len(due)

	for _, id := range due {
		job := &jobs.RecurringJob{
			TransactionID: id,
			OwnerID:       owners[id.String()],
		}

		if err := s.Publisher.Publish(ctx, job); err != nil {
			log.Error().Err(err).Str("transaction", id.String()).Msg("could not publish recurring job")
			result.Failed++
			continue
		}
		result.Dispatched++
	}

	log.Info().Int("due", result.Due).Int("dispatched", result.Dispatched).Int("failed", result.Failed).Msg("recurrence sweep finished")
	return result, nil
}

// ProcessJob generates the recurring instance for a job.
//
// Errors that will not go away on a retry are marked permanent.
func (s Sweeps) ProcessJob(ctx context.Context, job jobs.RecurringJob) error {
	if s.Throttle != nil {
		if err := s.Throttle.Wait(ctx, job.OwnerID); err != nil {
			return err
		}
	}

	instance, err := s.Poster.ProcessRecurring(ctx, job.OwnerID, job.TransactionID, s.now())
	if errors.Is(err, ledger.ErrInvalidInterval) || errors.Is(err, ledger.ErrValidation) {
		return jobs.Permanent(err)
	} else if err != nil {
		return err
	}

	logger := log.With().Str("job", job.ID).Str("transaction", job.TransactionID.String()).Logger()
	if instance == nil {
		logger.Debug().Msg("recurring transaction no longer due")
		return nil
	}

	logger.Info().Str("instance", instance.ID.String()).Msg("recurring transaction generated")
	return nil
}

// RunBudgetSweep evaluates every budget and alerts owners that have used
// at least 80% of it this month, at most once per calendar month.
//
// The alert is only recorded after it was delivered, so a failed delivery
// is attempted again by the next sweep.
func (s Sweeps) RunBudgetSweep(ctx context.Context) (result BudgetResult, err error) {
	defer func() { observeSweep(KindBudgetAlerts, err) }()

	asOf := s.now()

	candidates, err := s.Monitor.Candidates(ctx)
	if err != nil {
		return BudgetResult{}, fmt.Errorf("loading budgets: %w", err)
	}

	for _, c := range candidates {
		result.Evaluated++

		alerted, err := s.checkBudget(ctx, c, asOf)
		if err != nil {
			log.Error().Err(err).Str("budget", c.Budget.ID.String()).Msg("budget check failed")
			alertCount.WithLabelValues("failed").Inc()
			result.Failed++
			continue
		}

		if alerted {
			alertCount.WithLabelValues("sent").Inc()
			result.Alerted++
		} else {
			alertCount.WithLabelValues("skipped").Inc()
		}
	}

	log.Info().Int("evaluated", result.Evaluated).Int("alerted", result.Alerted).Int("failed", result.Failed).Msg("budget sweep finished")
	return result, nil
}

func (s Sweeps) checkBudget(ctx context.Context, c ledger.BudgetCandidate, asOf time.Time) (bool, error) {
	decision, err := s.Monitor.Evaluate(ctx, c.Budget, c.Account, asOf)
	if err != nil {
		return false, err
	}

	if !decision.ShouldAlert {
		return false, nil
	}

	message := notify.BudgetAlert(c.Email, notify.Data{
		UserName:      c.Name,
		AccountName:   decision.AccountName,
		PercentUsed:   decision.PercentUsed,
		BudgetAmount:  decision.BudgetAmount,
		TotalExpenses: decision.TotalExpenses,
	})

	attempts := s.NotifyAttempts
	if attempts < 1 {
		attempts = 1
	}

	err = jobs.Retry(ctx, attempts, s.RetryBaseDelay, func(ctx context.Context) error {
		return s.Notifier.Send(ctx, message)
	})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ledger.ErrNotification, err)
	}

	budget := c.Budget
	if err := s.Monitor.RecordAlert(ctx, &budget, asOf); err != nil {
		return false, err
	}

	return true, nil
}
