package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPostExpense() {
	user := suite.createTestUser("user_post")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	transaction := suite.expense(user.ID, account, "200", date(2024, 1, 3))

	suite.assertDecimal("800", suite.balance(account))
	suite.Assert().Equal(types.Completed, transaction.Status)
	suite.Assert().False(transaction.IsRecurring)
	suite.Assert().Nil(transaction.NextRecurringDate)
}

func (suite *TestSuiteStandard) TestPostIncome() {
	user := suite.createTestUser("user_income")
	account := suite.createTestAccount(user.ID, "Checking", "0.1")

	suite.post(user.ID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Income,
		Amount:    amount("0.2"),
		Category:  "salary",
	})

	suite.assertDecimal("0.3", suite.balance(account))
}

func (suite *TestSuiteStandard) TestPostRecurringSetsNextDate() {
	user := suite.createTestUser("user_recurring")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	transaction := suite.post(user.ID, ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Expense,
		Amount:            amount("50"),
		Date:              date(2024, 1, 1),
		Category:          "bills",
		IsRecurring:       true,
		RecurringInterval: types.Weekly,
	})

	suite.Require().NotNil(transaction.NextRecurringDate)
	suite.Assert().Equal(date(2024, 1, 8), *transaction.NextRecurringDate)
	suite.Assert().Nil(transaction.LastProcessedAt)
}

func (suite *TestSuiteStandard) TestPostValidation() {
	user := suite.createTestUser("user_validation")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	tests := []struct {
		name string
		in   ledger.TransactionInput
	}{
		{"Negative amount", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: amount("-1"), Category: "food"}},
		{"Unknown type", ledger.TransactionInput{AccountID: account.ID, Type: "TRANSFER", Amount: amount("1"), Category: "food"}},
		{"Recurring without interval", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: amount("1"), Category: "food", IsRecurring: true}},
		{"Recurring with unknown interval", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: amount("1"), Category: "food", IsRecurring: true, RecurringInterval: "HOURLY"}},
		{"No category", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: amount("1")}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			_, err := suite.poster.Post(context.Background(), user.ID, tt.in)
			assert.ErrorIs(t, err, ledger.ErrValidation)
		})
	}

	// Nothing of the failed posts is applied
	suite.assertDecimal("1000", suite.balance(account))

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestPostForeignAccount() {
	owner := suite.createTestUser("user_owner")
	other := suite.createTestUser("user_other")
	account := suite.createTestAccount(owner.ID, "Checking", "1000")

	_, err := suite.poster.Post(context.Background(), other.ID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    amount("10"),
		Category:  "food",
	})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	suite.Assert().Contains(err.Error(), "there is no account matching your query")
	suite.assertDecimal("1000", suite.balance(account))
}

func (suite *TestSuiteStandard) TestPostDBError() {
	user := suite.createTestUser("user_closed")
	account := suite.createTestAccount(user.ID, "Checking", "1000")
	suite.CloseDB()

	_, err := suite.poster.Post(context.Background(), user.ID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    amount("10"),
		Category:  "food",
	})
	suite.Assert().ErrorIs(err, ledger.ErrStorage)
}

func (suite *TestSuiteStandard) TestDeleteNetsPerAccount() {
	user := suite.createTestUser("user_delete")
	a := suite.createTestAccount(user.ID, "A", "1000")
	b := suite.createTestAccount(user.ID, "B", "500")

	expenseA := suite.expense(user.ID, a, "50", date(2024, 1, 2))
	incomeA := suite.post(user.ID, ledger.TransactionInput{AccountID: a.ID, Type: types.Income, Amount: amount("20"), Category: "salary"})
	expenseB := suite.expense(user.ID, b, "30", date(2024, 1, 2))
	kept := suite.expense(user.ID, b, "5", date(2024, 1, 2))

	suite.assertDecimal("970", suite.balance(a))
	suite.assertDecimal("465", suite.balance(b))

	deleted, err := suite.poster.Delete(context.Background(), user.ID, []uuid.UUID{expenseA.ID, incomeA.ID, expenseB.ID})
	suite.Require().Nil(err)
	suite.Assert().Equal(3, deleted)

	// A: +50 for the deleted expense, -20 for the deleted income
	suite.assertDecimal("1000", suite.balance(a))
	suite.assertDecimal("495", suite.balance(b))

	var remaining []models.Transaction
	suite.Require().Nil(suite.db.Find(&remaining).Error)
	suite.Require().Len(remaining, 1)
	suite.Assert().Equal(kept.ID, remaining[0].ID)

	for _, account := range []models.Account{a, b} {
		check, err := suite.poster.VerifyBalance(context.Background(), user.ID, account.ID)
		suite.Require().Nil(err)
		suite.Assert().True(check.Consistent, "balance of %s is not consistent", account.Name)
	}
}

func (suite *TestSuiteStandard) TestDeleteUnknownTransactionChangesNothing() {
	user := suite.createTestUser("user_delete_unknown")
	account := suite.createTestAccount(user.ID, "Checking", "1000")
	transaction := suite.expense(user.ID, account, "50", date(2024, 1, 2))

	_, err := suite.poster.Delete(context.Background(), user.ID, []uuid.UUID{transaction.ID, uuid.New()})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	suite.assertDecimal("950", suite.balance(account))

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestDeleteForeignTransaction() {
	owner := suite.createTestUser("user_delete_owner")
	other := suite.createTestUser("user_delete_other")
	account := suite.createTestAccount(owner.ID, "Checking", "1000")
	transaction := suite.expense(owner.ID, account, "50", date(2024, 1, 2))

	_, err := suite.poster.Delete(context.Background(), other.ID, []uuid.UUID{transaction.ID})
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	suite.assertDecimal("950", suite.balance(account))
}

func (suite *TestSuiteStandard) TestDeleteEmpty() {
	_, err := suite.poster.Delete(context.Background(), "user", nil)
	suite.Assert().ErrorIs(err, ledger.ErrValidation)
}

func (suite *TestSuiteStandard) TestProcessRecurringWeekly() {
	user := suite.createTestUser("user_weekly")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	source := suite.post(user.ID, ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Expense,
		Amount:            amount("50"),
		Date:              date(2024, 1, 1),
		Category:          "bills",
		Description:       "Gym",
		IsRecurring:       true,
		RecurringInterval: types.Weekly,
	})
	suite.assertDecimal("950", suite.balance(account))

	now := date(2024, 1, 8)
	instance, err := suite.poster.ProcessRecurring(context.Background(), user.ID, source.ID, now)
	suite.Require().Nil(err)
	suite.Require().NotNil(instance)

	suite.Assert().Equal(types.Expense, instance.Type)
	suite.assertDecimal("50", instance.Amount)
	suite.Assert().Equal("bills", instance.Category)
	suite.Assert().Equal("Gym (Recurring)", instance.Description)
	suite.Assert().Equal(account.ID, instance.AccountID)
	suite.Assert().False(instance.IsRecurring)
	suite.Assert().Nil(instance.NextRecurringDate)
	suite.assertDecimal("900", suite.balance(account))

	var updated models.Transaction
	suite.Require().Nil(suite.db.First(&updated, "id = ?", source.ID).Error)
	suite.Require().NotNil(updated.LastProcessedAt)
	suite.Require().NotNil(updated.NextRecurringDate)
	suite.Assert().Equal(now, *updated.LastProcessedAt)
	suite.Assert().Equal(date(2024, 1, 15), *updated.NextRecurringDate)
}

// TestProcessRecurringTwice simulates a work item that is delivered twice.
func (suite *TestSuiteStandard) TestProcessRecurringTwice() {
	user := suite.createTestUser("user_twice")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	source := suite.post(user.ID, ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Income,
		Amount:            amount("100"),
		Date:              date(2024, 1, 1),
		Category:          "salary",
		IsRecurring:       true,
		RecurringInterval: types.Monthly,
	})

	now := date(2024, 2, 1)
	first, err := suite.poster.ProcessRecurring(context.Background(), user.ID, source.ID, now)
	suite.Require().Nil(err)
	suite.Require().NotNil(first)

	second, err := suite.poster.ProcessRecurring(context.Background(), user.ID, source.ID, now.Add(time.Hour))
	suite.Require().Nil(err)
	suite.Assert().Nil(second)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.Transaction{}).Where("is_recurring = ?", false).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
	suite.assertDecimal("1200", suite.balance(account))
}

func (suite *TestSuiteStandard) TestProcessRecurringDeletedSource() {
	user := suite.createTestUser("user_deleted_source")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	source := suite.post(user.ID, ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Expense,
		Amount:            amount("50"),
		Category:          "bills",
		IsRecurring:       true,
		RecurringInterval: types.Daily,
	})

	_, err := suite.poster.Delete(context.Background(), user.ID, []uuid.UUID{source.ID})
	suite.Require().Nil(err)

	instance, err := suite.poster.ProcessRecurring(context.Background(), user.ID, source.ID, time.Now())
	suite.Assert().Nil(err)
	suite.Assert().Nil(instance)
	suite.assertDecimal("1000", suite.balance(account))
}

func (suite *TestSuiteStandard) TestProcessRecurringInvalidInterval() {
	user := suite.createTestUser("user_invalid_interval")
	account := suite.createTestAccount(user.ID, "Checking", "1000")

	source := suite.post(user.ID, ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Expense,
		Amount:            amount("50"),
		Category:          "bills",
		IsRecurring:       true,
		RecurringInterval: types.Daily,
	})

	// Simulate a corrupted row, hooks would reject this
	suite.Require().Nil(suite.db.Exec("UPDATE transactions SET recurring_interval = ? WHERE id = ?", "HOURLY", source.ID).Error)

	_, err := suite.poster.ProcessRecurring(context.Background(), user.ID, source.ID, time.Now())
	suite.Assert().ErrorIs(err, ledger.ErrInvalidInterval)
	suite.assertDecimal("950", suite.balance(account))
}

func (suite *TestSuiteStandard) TestCreateAccountDefaults() {
	user := suite.createTestUser("user_accounts")

	first := suite.createTestAccount(user.ID, "First", "10")
	suite.Assert().True(first.IsDefault, "the first account must become the default account")
	suite.Assert().Equal(types.Current, first.Type)
	suite.assertDecimal("10", first.Balance)

	second := suite.createTestAccount(user.ID, "Second", "0")
	suite.Assert().False(second.IsDefault)

	third, err := suite.poster.CreateAccount(context.Background(), user.ID, ledger.AccountInput{Name: "Third", Type: types.Savings, IsDefault: true})
	suite.Require().Nil(err)
	suite.Assert().True(third.IsDefault)

	suite.assertSingleDefault(user.ID, third.ID)
}

func (suite *TestSuiteStandard) TestCreateAccountValidation() {
	user := suite.createTestUser("user_account_validation")

	_, err := suite.poster.CreateAccount(context.Background(), user.ID, ledger.AccountInput{Name: "Negative", InitialBalance: amount("-1")})
	suite.Assert().ErrorIs(err, ledger.ErrValidation)

	suite.createTestAccount(user.ID, "Checking", "0")
	_, err = suite.poster.CreateAccount(context.Background(), user.ID, ledger.AccountInput{Name: "Checking"})
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestSetDefaultAccount() {
	user := suite.createTestUser("user_set_default")
	first := suite.createTestAccount(user.ID, "First", "0")
	second := suite.createTestAccount(user.ID, "Second", "0")

	account, err := suite.poster.SetDefaultAccount(context.Background(), user.ID, second.ID)
	suite.Require().Nil(err)
	suite.Assert().True(account.IsDefault)
	suite.assertSingleDefault(user.ID, second.ID)

	// Setting it again is a no-op
	_, err = suite.poster.SetDefaultAccount(context.Background(), user.ID, second.ID)
	suite.Require().Nil(err)
	suite.assertSingleDefault(user.ID, second.ID)

	_, err = suite.poster.SetDefaultAccount(context.Background(), "someone else", first.ID)
	suite.Assert().ErrorIs(err, ledger.ErrNotFound)
	suite.assertSingleDefault(user.ID, second.ID)
}

func (suite *TestSuiteStandard) TestVerifyBalanceDetectsDrift() {
	user := suite.createTestUser("user_drift")
	account := suite.createTestAccount(user.ID, "Checking", "100")
	suite.expense(user.ID, account, "25.5", date(2024, 1, 2))

	check, err := suite.poster.VerifyBalance(context.Background(), user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().True(check.Consistent)
	suite.assertDecimal("74.5", check.Expected)

	suite.Require().Nil(suite.db.Exec("UPDATE accounts SET balance = ? WHERE id = ?", "80", account.ID).Error)

	check, err = suite.poster.VerifyBalance(context.Background(), user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().False(check.Consistent)
	suite.assertDecimal("80", check.Recorded)
	suite.assertDecimal("74.5", check.Expected)
}

func (suite *TestSuiteStandard) assertSingleDefault(ownerID string, id uuid.UUID) {
	var defaults []models.Account
	suite.Require().Nil(suite.db.Where(&models.Account{OwnerID: ownerID, IsDefault: true}).Find(&defaults).Error)
	suite.Require().Len(defaults, 1)
	suite.Assert().Equal(id, defaults[0].ID)
}

func (suite *TestSuiteStandard) TestBalanceKeepsAllDigits() {
	user := suite.createTestUser("user_precision")
	account := suite.createTestAccount(user.ID, "Checking", "123456789012.12345678")
	suite.assertDecimal("123456789012.12345678", suite.balance(account))

	suite.expense(user.ID, account, "0.00000001", date(2024, 1, 3))
	suite.assertDecimal("123456789012.12345677", suite.balance(account))

	var storage string
	suite.Require().Nil(suite.db.Raw("SELECT typeof(balance) FROM accounts WHERE id = ?", account.ID).Scan(&storage).Error)
	suite.Assert().Equal("text", storage)

	check, err := suite.poster.VerifyBalance(context.Background(), user.ID, account.ID)
	suite.Require().Nil(err)
	suite.Assert().True(check.Consistent, "recorded %s, expected %s", check.Recorded, check.Expected)
}

func (suite *TestSuiteStandard) TestDeleteRepeatedID() {
	user := suite.createTestUser("user_repeated")
	account := suite.createTestAccount(user.ID, "Checking", "1000")
	transaction := suite.expense(user.ID, account, "75", date(2024, 1, 2))

	deleted, err := suite.poster.Delete(context.Background(), user.ID, []uuid.UUID{transaction.ID, transaction.ID})
	suite.Require().Nil(err)
	suite.Assert().Equal(1, deleted)
	suite.assertDecimal("1000", suite.balance(account))
}
