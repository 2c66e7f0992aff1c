package types

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransactionType   = errors.New("transaction type must be INCOME or EXPENSE")
	ErrInvalidTransactionStatus = errors.New("transaction status must be PENDING, COMPLETED or FAILED")
	ErrInvalidAccountType       = errors.New("account type must be SAVINGS or CURRENT")
)

// TransactionType is the direction in which a transaction moves money.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// ParseTransactionType returns the TransactionType for s.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w, got %q", ErrInvalidTransactionType, s)
	}
	return t, nil
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Sign is +1 for income and -1 for expenses. It panics for unknown
// types, which model validation rejects before they are stored.
func (t TransactionType) Sign() int64 {
	switch t {
	case Income:
		return 1
	case Expense:
		return -1
	}
	panic(fmt.Sprintf("unknown transaction type %q", string(t)))
}

// Signed returns the amount with the sign of the transaction type applied,
// i.e. the effect a transaction of this type has on its account balance.
func (t TransactionType) Signed(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(t.Sign()))
}

// TransactionStatus is the processing state of a transaction.
type TransactionStatus string

const (
	Pending   TransactionStatus = "PENDING"
	Completed TransactionStatus = "COMPLETED"
	Failed    TransactionStatus = "FAILED"
)

// Valid reports whether s is a known status.
func (s TransactionStatus) Valid() bool {
	return s == Pending || s == Completed || s == Failed
}

// AccountType is the kind of a bank account.
type AccountType string

const (
	Savings AccountType = "SAVINGS"
	Current AccountType = "CURRENT"
)

// Valid reports whether a is a known account type.
func (a AccountType) Valid() bool {
	return a == Savings || a == Current
}
