package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the monthly spending limit of a user. It is tracked against
// the user's default account.
type Budget struct {
	DefaultModel
	OwnerID       string          `json:"ownerId" gorm:"uniqueIndex" example:"user_2abc3def"`
	Owner         User            `json:"-"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:TEXT" example:"500"`
	LastAlertSent *time.Time      `json:"lastAlertSent" example:"2024-01-20T06:00:00Z"` // Time the last budget alert was delivered
}

func (b *Budget) AfterFind(tx *gorm.DB) (err error) {
	err = b.Timestamps.AfterFind(tx)
	b.LastAlertSent = utc(b.LastAlertSent)
	return
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	if !b.Amount.IsPositive() {
		return ErrBudgetAmount
	}

	b.LastAlertSent = utc(b.LastAlertSent)
	return nil
}
