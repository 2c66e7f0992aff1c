package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single income or expense on an account.
//
// A recurring transaction additionally serves as the template for the
// instances generated from it, see ledger.Poster.ProcessRecurring.
type Transaction struct {
	DefaultModel
	OwnerID           string                  `json:"ownerId" gorm:"index" example:"user_2abc3def"`
	Owner             User                    `json:"-"`
	AccountID         uuid.UUID               `json:"accountId" gorm:"index" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	Account           Account                 `json:"-"`
	Type              types.TransactionType   `json:"type" example:"EXPENSE"`
	Amount            decimal.Decimal         `json:"amount" gorm:"type:TEXT" example:"14.03"`
	Date              time.Time               `json:"date" example:"2024-01-01T00:00:00Z"`
	Category          string                  `json:"category" example:"groceries"`
	Description       string                  `json:"description" example:"Weekly shopping"`
	ReceiptURL        string                  `json:"receiptUrl" example:"https://example.com/receipts/1.png"`
	IsRecurring       bool                    `json:"isRecurring" example:"true"`
	RecurringInterval types.Interval          `json:"recurringInterval" gorm:"type:TEXT" example:"WEEKLY"`
	LastProcessedAt   *time.Time              `json:"lastProcessedAt" example:"2024-01-08T00:00:00Z"`
	NextRecurringDate *time.Time              `json:"nextRecurringDate" gorm:"index" example:"2024-01-15T00:00:00Z"`
	Status            types.TransactionStatus `json:"status" example:"COMPLETED"`
}

// Signed is the effect of the transaction on its account balance.
func (t Transaction) Signed() decimal.Decimal {
	return t.Type.Signed(t.Amount)
}

// AfterFind enforces all times to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.Timestamps.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	t.LastProcessedAt = utc(t.LastProcessedAt)
	t.NextRecurringDate = utc(t.NextRecurringDate)
	return nil
}

// BeforeSave
//   - sets the timezone for all dates to UTC
//   - trims whitespace from string fields
//   - validates type, amount and status
//   - enforces that only recurring transactions carry recurrence data
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Description = strings.TrimSpace(t.Description)
	t.ReceiptURL = strings.TrimSpace(t.ReceiptURL)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}
	t.LastProcessedAt = utc(t.LastProcessedAt)
	t.NextRecurringDate = utc(t.NextRecurringDate)

	if !t.Type.Valid() {
		return types.ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.Category == "" {
		return ErrCategoryRequired
	}

	if t.Status == "" {
		t.Status = types.Completed
	}

	if !t.Status.Valid() {
		return types.ErrInvalidTransactionStatus
	}

	if !t.IsRecurring {
		t.RecurringInterval = ""
		t.NextRecurringDate = nil
		return nil
	}

	if !t.RecurringInterval.Valid() {
		return ErrIntervalRequired
	}

	return nil
}
