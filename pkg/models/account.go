package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account is a bank account of a user.
//
// Balance is only ever changed together with the transactions that
// cause the change, see package ledger.
type Account struct {
	DefaultModel
	OwnerID        string            `json:"ownerId" gorm:"uniqueIndex:account_name_owner_id" example:"user_2abc3def"`
	Owner          User              `json:"-"`
	Name           string            `json:"name" gorm:"uniqueIndex:account_name_owner_id" example:"Checking"`
	Type           types.AccountType `json:"type" example:"CURRENT"`
	InitialBalance decimal.Decimal   `json:"initialBalance" gorm:"type:TEXT" example:"1000"`
	Balance        decimal.Decimal   `json:"balance" gorm:"type:TEXT" example:"734.12"`
	IsDefault      bool              `json:"isDefault" example:"true"`
}

// BeforeSave trims the name and validates the account type.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	if a.Type == "" {
		a.Type = types.Current
	}

	if !a.Type.Valid() {
		return types.ErrInvalidAccountType
	}

	return nil
}

// SignedSum sums the balance effect of all non-deleted transactions of the account.
//
// Amounts are added up as decimals here instead of with SUM() in the
// database, which would use floating point arithmetic in SQLite.
func (a Account) SignedSum(db *gorm.DB) (decimal.Decimal, error) {
	var transactions []Transaction
	err := db.
		Select("type", "amount").
		Where(&Transaction{AccountID: a.ID}).
		Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, t := range transactions {
		sum = sum.Add(t.Type.Signed(t.Amount))
	}

	return sum, nil
}

// ExpectedBalance is the balance the account must have according to its
// initial balance and its transactions.
func (a Account) ExpectedBalance(db *gorm.DB) (decimal.Decimal, error) {
	sum, err := a.SignedSum(db)
	if err != nil {
		return decimal.Zero, err
	}

	return a.InitialBalance.Add(sum), nil
}

// ClearDefault unsets the default flag on all accounts of the owner except keep.
// Pass uuid.Nil to clear all of them.
func ClearDefault(tx *gorm.DB, ownerID string, keep uuid.UUID) error {
	return tx.
		Session(&gorm.Session{SkipHooks: true}).
		Model(&Account{}).
		Where("owner_id = ? AND is_default = ? AND id <> ?", ownerID, true, keep).
		Update("is_default", false).Error
}
