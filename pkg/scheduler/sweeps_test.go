package scheduler_test

import (
	"context"
	"errors"
	"time"

	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/ledgerly/backend/pkg/notify"
	"github.com/ledgerly/backend/pkg/scheduler"
)

func (suite *TestSuiteStandard) TestRecurrenceSweepDispatchesDueTransactions() {
	account := suite.createOwner("user_sweep")
	weekly := suite.createRecurring(account, "50", date(2024, 1, 1), types.Weekly)

	// Processed already and not due until February
	monthly := suite.createRecurring(account, "10", date(2024, 1, 1), types.Monthly)
	_, err := suite.sweeps.Poster.ProcessRecurring(context.Background(), account.OwnerID, monthly.ID, date(2024, 1, 2))
	suite.Require().Nil(err)

	result, err := suite.sweeps.RunRecurrenceSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(scheduler.RecurrenceResult{Due: 1, Dispatched: 1}, result)

	published := suite.publisher.jobs()
	suite.Require().Len(published, 1)
	suite.Assert().Equal(weekly.ID, published[0].TransactionID)
	suite.Assert().Equal(account.OwnerID, published[0].OwnerID)

	// The sweep itself does not change the ledger
	var source models.Transaction
	suite.Require().Nil(suite.db.First(&source, "id = ?", weekly.ID).Error)
	suite.Assert().Nil(source.LastProcessedAt)
}

func (suite *TestSuiteStandard) TestRecurrenceSweepPublishFailure() {
	account := suite.createOwner("user_publish_failure")
	suite.createRecurring(account, "50", date(2024, 1, 1), types.Weekly)
	suite.publisher.err = jobs.ErrQueueClosed

	result, err := suite.sweeps.RunRecurrenceSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(scheduler.RecurrenceResult{Due: 1, Failed: 1}, result)
}

func (suite *TestSuiteStandard) TestRecurrenceSweepDBError() {
	suite.CloseDB()

	_, err := suite.sweeps.RunRecurrenceSweep(context.Background())
	suite.Assert().ErrorIs(err, ledger.ErrStorage)
}

// TestRecurrencePipeline runs the sweep with a real queue. The weekly
// transaction from January 1st must produce exactly one instance on
// January 8th and then be due again on January 15th.
func (suite *TestSuiteStandard) TestRecurrencePipeline() {
	account := suite.createOwner("user_pipeline")
	source := suite.createRecurring(account, "50", date(2024, 1, 1), types.Weekly)

	queue := jobs.NewQueue(jobs.Config{Workers: 2, Size: 10, MaxAttempts: 3, BaseDelay: time.Millisecond})
	suite.Require().Nil(queue.Start(context.Background(), suite.sweeps.ProcessJob))
	defer queue.Stop(context.Background())
	suite.sweeps.Publisher = queue

	// Publish the same transaction twice to simulate a duplicate delivery
	for i := 0; i < 2; i++ {
		_, err := suite.sweeps.RunRecurrenceSweep(context.Background())
		suite.Require().Nil(err)
	}

	suite.Require().Eventually(func() bool {
		for _, j := range queue.Jobs() {
			if j.Status != jobs.StatusCompleted {
				return false
			}
		}
		return len(queue.Jobs()) >= 1
	}, 2*time.Second, 5*time.Millisecond)

	var instances []models.Transaction
	suite.Require().Nil(suite.db.Where("is_recurring = ?", false).Find(&instances).Error)
	suite.Require().Len(instances, 1)
	suite.Assert().True(amount("50").Equal(instances[0].Amount))
	suite.Assert().Equal(types.Expense, instances[0].Type)
	suite.Assert().True(amount("900").Equal(suite.balance(account)))

	var updated models.Transaction
	suite.Require().Nil(suite.db.First(&updated, "id = ?", source.ID).Error)
	suite.Require().NotNil(updated.NextRecurringDate)
	suite.Assert().Equal(date(2024, 1, 15), *updated.NextRecurringDate)
}

func (suite *TestSuiteStandard) TestProcessJobInvalidIntervalIsPermanent() {
	account := suite.createOwner("user_invalid")
	source := suite.createRecurring(account, "50", date(2024, 1, 1), types.Daily)
	suite.Require().Nil(suite.db.Exec("UPDATE transactions SET recurring_interval = ? WHERE id = ?", "HOURLY", source.ID).Error)

	err := suite.sweeps.ProcessJob(context.Background(), jobs.RecurringJob{TransactionID: source.ID, OwnerID: account.OwnerID})
	suite.Assert().True(jobs.IsPermanent(err))
	suite.Assert().ErrorIs(err, ledger.ErrInvalidInterval)
}

func (suite *TestSuiteStandard) TestProcessJobStorageErrorIsRetryable() {
	account := suite.createOwner("user_storage")
	source := suite.createRecurring(account, "50", date(2024, 1, 1), types.Daily)
	suite.CloseDB()

	err := suite.sweeps.ProcessJob(context.Background(), jobs.RecurringJob{TransactionID: source.ID, OwnerID: account.OwnerID})
	suite.Assert().ErrorIs(err, ledger.ErrStorage)
	suite.Assert().False(jobs.IsPermanent(err))
}

func (suite *TestSuiteStandard) TestProcessJobThrottled() {
	account := suite.createOwner("user_throttled")
	source := suite.createRecurring(account, "50", date(2024, 1, 1), types.Daily)

	suite.sweeps.Throttle = jobs.NewThrottle(1, time.Hour)
	suite.Require().True(suite.sweeps.Throttle.Allow(account.OwnerID))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := suite.sweeps.ProcessJob(ctx, jobs.RecurringJob{TransactionID: source.ID, OwnerID: account.OwnerID})
	suite.Assert().NotNil(err)
	suite.Assert().True(amount("950").Equal(suite.balance(account)))
}

func (suite *TestSuiteStandard) TestBudgetSweepAlertsOncePerMonth() {
	account := suite.createOwner("user_budget")
	_, err := suite.sweeps.Monitor.SetBudget(context.Background(), account.OwnerID, amount("500"))
	suite.Require().Nil(err)

	_, err = suite.sweeps.Poster.Post(context.Background(), account.OwnerID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    amount("420"),
		Date:      date(2024, 1, 5),
		Category:  "groceries",
	})
	suite.Require().Nil(err)

	result, err := suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(scheduler.BudgetResult{Evaluated: 1, Alerted: 1}, result)

	suite.Require().Len(suite.notifier.sent, 1)
	m := suite.notifier.sent[0]
	suite.Assert().Equal("user_budget@example.com", m.To)
	suite.Assert().Equal("Budget Alert for Checking", m.Subject)
	suite.Assert().Equal(notify.KindBudgetAlert, m.Kind)
	suite.Assert().True(amount("84").Equal(m.Data.PercentUsed))

	var budget models.Budget
	suite.Require().Nil(suite.db.First(&budget, "owner_id = ?", account.OwnerID).Error)
	suite.Require().NotNil(budget.LastAlertSent)
	suite.Assert().Equal(suite.now, *budget.LastAlertSent)

	// Later in the same month, no second alert
	suite.now = date(2024, 1, 20)
	result, err = suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(scheduler.BudgetResult{Evaluated: 1}, result)
	suite.Assert().Len(suite.notifier.sent, 1)
}

func (suite *TestSuiteStandard) TestBudgetSweepDeliveryFailureIsNotRecorded() {
	account := suite.createOwner("user_delivery")
	_, err := suite.sweeps.Monitor.SetBudget(context.Background(), account.OwnerID, amount("100"))
	suite.Require().Nil(err)

	_, err = suite.sweeps.Poster.Post(context.Background(), account.OwnerID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    amount("90"),
		Date:      date(2024, 1, 5),
		Category:  "groceries",
	})
	suite.Require().Nil(err)

	// Fails more often than the sweep retries
	suite.notifier.failures = 2

	result, err := suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err, "a failed delivery must not fail the sweep")
	suite.Assert().Equal(scheduler.BudgetResult{Evaluated: 1, Failed: 1}, result)
	suite.Assert().Equal(2, suite.notifier.attempts)

	var budget models.Budget
	suite.Require().Nil(suite.db.First(&budget, "owner_id = ?", account.OwnerID).Error)
	suite.Assert().Nil(budget.LastAlertSent)

	// The next sweep delivers the alert
	result, err = suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(1, result.Alerted)
}

func (suite *TestSuiteStandard) TestBudgetSweepRetriesDelivery() {
	account := suite.createOwner("user_retry")
	_, err := suite.sweeps.Monitor.SetBudget(context.Background(), account.OwnerID, amount("100"))
	suite.Require().Nil(err)

	_, err = suite.sweeps.Poster.Post(context.Background(), account.OwnerID, ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    amount("100"),
		Date:      date(2024, 1, 5),
		Category:  "groceries",
	})
	suite.Require().Nil(err)
	suite.notifier.failures = 1

	result, err := suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(1, result.Alerted)
	suite.Assert().Equal(2, suite.notifier.attempts)
}

func (suite *TestSuiteStandard) TestBudgetSweepSkipsOwnersWithoutDefaultAccount() {
	user := models.User{ID: "user_no_account", Email: "no-account@example.com"}
	suite.Require().Nil(suite.db.Create(&user).Error)
	_, err := suite.sweeps.Monitor.SetBudget(context.Background(), user.ID, amount("100"))
	suite.Require().Nil(err)

	result, err := suite.sweeps.RunBudgetSweep(context.Background())
	suite.Require().Nil(err)
	suite.Assert().Equal(scheduler.BudgetResult{}, result)
}

func (suite *TestSuiteStandard) TestBudgetSweepDBError() {
	suite.CloseDB()

	_, err := suite.sweeps.RunBudgetSweep(context.Background())
	suite.Assert().NotNil(err)
	suite.Assert().True(errors.Is(err, ledger.ErrStorage))
}
