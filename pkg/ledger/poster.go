package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Poster applies transactions to accounts. Every method runs in a single
// database transaction: the transaction rows and the account balances they
// affect are always written together or not at all.
type Poster struct {
	DB *gorm.DB
}

// TransactionInput is the data needed to post a new transaction.
type TransactionInput struct {
	AccountID         uuid.UUID               `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	Type              types.TransactionType   `json:"type" example:"EXPENSE"`
	Amount            decimal.Decimal         `json:"amount" example:"200"`
	Date              time.Time               `json:"date" example:"2024-01-01T00:00:00Z"`
	Category          string                  `json:"category" example:"groceries"`
	Description       string                  `json:"description" example:"Weekly shopping"`
	ReceiptURL        string                  `json:"receiptUrl" example:"https://example.com/receipts/1.png"`
	IsRecurring       bool                    `json:"isRecurring" example:"false"`
	RecurringInterval types.Interval          `json:"recurringInterval" example:"WEEKLY"`
	Status            types.TransactionStatus `json:"status" example:"COMPLETED"`
}

// AccountInput is the data needed to create a new account.
type AccountInput struct {
	Name           string            `json:"name" example:"Checking"`
	Type           types.AccountType `json:"type" example:"CURRENT"`
	InitialBalance decimal.Decimal   `json:"initialBalance" example:"1000"`
	IsDefault      bool              `json:"isDefault" example:"false"`
}

// BalanceCheck compares the stored balance of an account with the
// balance derived from its transactions.
type BalanceCheck struct {
	AccountID  uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	Recorded   decimal.Decimal `json:"recorded" example:"800"`
	Expected   decimal.Decimal `json:"expected" example:"800"`
	Consistent bool            `json:"consistent" example:"true"`
}

// Post creates a transaction and applies its signed amount to the balance
// of its account.
//
// For recurring transactions, the next recurring date is one interval
// after the transaction date.
func (p Poster) Post(ctx context.Context, ownerID string, in TransactionInput) (models.Transaction, error) {
	if !in.Type.Valid() {
		return models.Transaction{}, fmt.Errorf("%w: %w", ErrValidation, types.ErrInvalidTransactionType)
	}

	if in.Amount.IsNegative() {
		return models.Transaction{}, models.ErrNegativeAmount
	}

	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	transaction := models.Transaction{
		OwnerID:     ownerID,
		AccountID:   in.AccountID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date.UTC(),
		Category:    in.Category,
		Description: in.Description,
		ReceiptURL:  in.ReceiptURL,
		IsRecurring: in.IsRecurring,
		Status:      in.Status,
	}

	if in.IsRecurring {
		next, err := in.RecurringInterval.Next(transaction.Date)
		if err != nil {
			return models.Transaction{}, models.ErrIntervalRequired
		}

		transaction.RecurringInterval = in.RecurringInterval
		transaction.NextRecurringDate = &next
	}

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findAccount(tx, ownerID, in.AccountID); err != nil {
			return err
		}

		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		return applyDelta(tx, in.AccountID, transaction.Signed())
	})
	if err != nil {
		return models.Transaction{}, storageError(err)
	}

	return transaction, nil
}

// Delete soft-deletes the transactions and reverses their effect on the
// balances of their accounts.
//
// All transactions must belong to the owner. If any of them does not exist,
// nothing is deleted. Each affected account is updated exactly once with the
// net reversal of all its deleted transactions.
func (p Poster) Delete(ctx context.Context, ownerID string, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoTransactions
	}
	ids = distinct(ids)

	var deleted int
	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var transactions []models.Transaction
		err := tx.
			Where("id IN ? AND owner_id = ?", ids, ownerID).
			Find(&transactions).Error
		if err != nil {
			return err
		}

		if len(transactions) != len(ids) {
			return fmt.Errorf("%w transaction matching your query", ErrNotFound)
		}

		for _, delta := range reversals(transactions) {
			if err := applyDelta(tx, delta.accountID, delta.amount); err != nil {
				return err
			}
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Transaction{})
		if result.Error != nil {
			return result.Error
		}
		deleted = int(result.RowsAffected)

		return nil
	})
	if err != nil {
		return 0, storageError(err)
	}

	return deleted, nil
}

func distinct(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

// ProcessRecurring generates the next instance of a recurring transaction.
//
// The source is loaded and checked again inside the database transaction.
// If it no longer exists or is no longer due, for example because another
// worker already processed it, nothing happens and nil is returned.
func (p Poster) ProcessRecurring(ctx context.Context, ownerID string, sourceID uuid.UUID, now time.Time) (*models.Transaction, error) {
	var instance *models.Transaction

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source models.Transaction
		err := tx.Where(&models.Transaction{DefaultModel: models.DefaultModel{ID: sourceID}, OwnerID: ownerID}).First(&source).Error
		if errors.Is(err, ErrNotFound) {
			log.Debug().Str("transaction", sourceID.String()).Msg("recurring transaction does not exist anymore, skipping")
			return nil
		} else if err != nil {
			return err
		}

		if !IsDue(source, now) {
			log.Debug().Str("transaction", sourceID.String()).Msg("recurring transaction is not due, skipping")
			return nil
		}

		next, err := NextRecurringDate(source, now)
		if err != nil {
			return err
		}

		generated := models.Transaction{
			OwnerID:     source.OwnerID,
			AccountID:   source.AccountID,
			Type:        source.Type,
			Amount:      source.Amount,
			Date:        now.UTC(),
			Category:    source.Category,
			Description: fmt.Sprintf("%s (Recurring)", source.Description),
			Status:      types.Completed,
		}

		if err := tx.Create(&generated).Error; err != nil {
			return err
		}

		if err := applyDelta(tx, source.AccountID, generated.Signed()); err != nil {
			return err
		}

		processed := latest(now, source.LastProcessedAt).UTC()
		err = tx.Model(&source).Updates(map[string]any{
			"last_processed_at":   processed,
			"next_recurring_date": next.UTC(),
		}).Error
		if err != nil {
			return err
		}

		instance = &generated
		return nil
	})
	if err != nil {
		return nil, storageError(err)
	}

	return instance, nil
}

// CreateAccount creates an account for the owner.
//
// The first account of an owner always becomes the default account. When
// a new account is created as default, all other accounts lose the flag.
func (p Poster) CreateAccount(ctx context.Context, ownerID string, in AccountInput) (models.Account, error) {
	if in.InitialBalance.IsNegative() {
		return models.Account{}, ErrInitialBalanceNegative
	}

	account := models.Account{
		OwnerID:        ownerID,
		Name:           in.Name,
		Type:           in.Type,
		InitialBalance: in.InitialBalance,
		Balance:        in.InitialBalance,
		IsDefault:      in.IsDefault,
	}

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where(&models.Account{OwnerID: ownerID}).Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			account.IsDefault = true
		}

		if account.IsDefault {
			if err := models.ClearDefault(tx, ownerID, uuid.Nil); err != nil {
				return err
			}
		}

		return tx.Create(&account).Error
	})
	if err != nil {
		return models.Account{}, storageError(err)
	}

	return account, nil
}

// SetDefaultAccount makes the account the default account of its owner.
func (p Poster) SetDefaultAccount(ctx context.Context, ownerID string, accountID uuid.UUID) (models.Account, error) {
	var account models.Account

	err := p.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) (err error) {
		account, err = findAccount(tx, ownerID, accountID)
		if err != nil {
			return err
		}

		if err := models.ClearDefault(tx, ownerID, account.ID); err != nil {
			return err
		}

		account.IsDefault = true
		return tx.Model(&account).Update("is_default", true).Error
	})
	if err != nil {
		return models.Account{}, storageError(err)
	}

	return account, nil
}

// VerifyBalance checks that the balance of the account equals its initial
// balance plus the signed sum of its transactions.
func (p Poster) VerifyBalance(ctx context.Context, ownerID string, accountID uuid.UUID) (BalanceCheck, error) {
	db := p.DB.WithContext(ctx)

	account, err := findAccount(db, ownerID, accountID)
	if err != nil {
		return BalanceCheck{}, storageError(err)
	}

	expected, err := account.ExpectedBalance(db)
	if err != nil {
		return BalanceCheck{}, storageError(err)
	}

	return BalanceCheck{
		AccountID:  account.ID,
		Recorded:   account.Balance,
		Expected:   expected,
		Consistent: account.Balance.Equal(expected),
	}, nil
}

func findAccount(tx *gorm.DB, ownerID string, id uuid.UUID) (models.Account, error) {
	var account models.Account
	err := tx.Where(&models.Account{DefaultModel: models.DefaultModel{ID: id}, OwnerID: ownerID}).First(&account).Error
	return account, err
}

// applyDelta adds delta to the balance of the account. It must be called
// inside a database transaction.
func applyDelta(tx *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error {
	var account models.Account
	if err := tx.First(&account, "id = ?", accountID).Error; err != nil {
		return err
	}

	return tx.Model(&account).Update("balance", account.Balance.Add(delta)).Error
}

type accountDelta struct {
	accountID uuid.UUID
	amount    decimal.Decimal
}

// reversals returns the net amount by which the balance of each account
// changes when the transactions are removed. Accounts whose net change is
// zero are left out.
func reversals(transactions []models.Transaction) []accountDelta {
	sums := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range transactions {
		sums[t.AccountID] = sums[t.AccountID].Sub(t.Signed())
	}

	deltas := make([]accountDelta, 0, len(sums))
	for id, amount := range sums {
		if amount.IsZero() {
			continue
		}
		deltas = append(deltas, accountDelta{accountID: id, amount: amount})
	}

	// Stable order keeps lock acquisition and logs deterministic
	sort.Slice(deltas, func(i, j int) bool {
		return bytes.Compare(deltas[i].accountID[:], deltas[j].accountID[:]) < 0
	})

	return deltas
}
