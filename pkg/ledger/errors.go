// Package ledger implements everything that changes money: posting and
// deleting transactions, generating recurring transactions and watching
// budgets.
package ledger

import (
	"errors"
	"fmt"

	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/models"
)

var (
	ErrValidation      = models.ErrValidation
	ErrNotFound        = models.ErrResourceNotFound
	ErrInvalidInterval = types.ErrInvalidInterval

	// ErrStorage marks a failed storage transaction. Nothing of the
	// failed unit has been applied and it can be retried as a whole.
	ErrStorage = errors.New("storage transaction failed")

	// ErrNotification marks a failed alert delivery.
	ErrNotification = errors.New("notification failed")
)

var (
	ErrInitialBalanceNegative = fmt.Errorf("%w: the initial balance must not be negative", ErrValidation)
	ErrNoTransactions         = fmt.Errorf("%w: at least one transaction ID is required", ErrValidation)
	ErrNoDefaultAccount       = fmt.Errorf("%w default account for this user", ErrNotFound)
)

// storageError classifies err. Domain errors are returned unchanged,
// everything else is a storage failure.
func storageError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrStorage) ||
		errors.Is(err, types.ErrInvalidTransactionType) ||
		errors.Is(err, types.ErrInvalidTransactionStatus) ||
		errors.Is(err, types.ErrInvalidAccountType) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrStorage, err)
}
