package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/models"
	"gorm.io/gorm"
)

// IsDue reports whether a new instance of the recurring transaction t
// needs to be generated at now.
//
// A transaction that has never been processed is always due.
func IsDue(t models.Transaction, now time.Time) bool {
	if !t.IsRecurring || t.Status != types.Completed {
		return false
	}

	if t.LastProcessedAt == nil {
		return true
	}

	return t.NextRecurringDate != nil && !t.NextRecurringDate.After(now)
}

// DueForProcessing returns the IDs of all transactions that are due at now,
// in the order they were passed in. It does not modify anything.
func DueForProcessing(transactions []models.Transaction, now time.Time) []uuid.UUID {
	due := make([]uuid.UUID, 0)
	for _, t := range transactions {
		if IsDue(t, now) {
			due = append(due, t.ID)
		}
	}

	return due
}

// NextRecurringDate computes the date at which the recurring transaction t
// is due again after being processed at now.
//
// The result is strictly after both now and the last time t was processed,
// so a clock that jumps backwards can never move the date back into the
// past and make an already processed occurrence due again.
func NextRecurringDate(t models.Transaction, now time.Time) (time.Time, error) {
	anchor := latest(now, t.LastProcessedAt)

	next, err := t.RecurringInterval.Next(anchor)
	if err != nil {
		return time.Time{}, err
	}

	return next, nil
}

// DueCandidates loads all recurring transactions that may be due at now.
// Callers still need to apply DueForProcessing, which is authoritative.
func DueCandidates(ctx context.Context, db *gorm.DB, now time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction

	err := db.WithContext(ctx).
		Where(&models.Transaction{IsRecurring: true, Status: types.Completed}).
		Where(db.Where("last_processed_at IS NULL").Or("next_recurring_date <= ?", now.UTC())).
		Order("created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, storageError(err)
	}

	return transactions, nil
}

func latest(now time.Time, other *time.Time) time.Time {
	if other != nil && other.After(now) {
		return *other
	}
	return now
}
