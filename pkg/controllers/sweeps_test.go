package controllers_test

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/controllers"
	"github.com/ledgerly/backend/pkg/jobs"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/scheduler"
	"github.com/ledgerly/backend/test"
	"github.com/shopspring/decimal"
)

type busySweeps struct{}

func (busySweeps) Run(context.Context, scheduler.Kind) (any, error) {
	return nil, scheduler.ErrSweepRunning
}

func (suite *TestSuiteStandard) TestRecurrenceSweep() {
	suite.createTestUser("user_1")
	account := suite.createTestAccount("user_1", "Checking", "1000")
	recurring := suite.createTestTransaction("user_1", ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Expense,
		Amount:            decimal.NewFromInt(30),
		Date:              date(2024, 1, 1),
		Category:          "entertainment",
		IsRecurring:       true,
		RecurringInterval: types.Weekly,
	})
	suite.expense("user_1", account.ID, "10", date(2024, 1, 2))

	r := suite.request("", http.MethodPost, test.BaseURL+"/v1/sweeps/recurrence", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result controllers.RecurrenceSweepResponse
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().Equal(scheduler.RecurrenceResult{Due: 1, Dispatched: 1}, *result.Data)

	r = suite.request("", http.MethodGet, test.BaseURL+"/v1/sweeps/jobs", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list controllers.JobListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.Assert().Equal(recurring.ID, list.Data[0].TransactionID)
	suite.Assert().Equal("user_1", list.Data[0].OwnerID)
	suite.Assert().Equal(jobs.StatusPending, list.Data[0].Status)

	r = suite.request("", http.MethodGet, test.BaseURL+"/v1/sweeps/jobs/"+list.Data[0].ID, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var job controllers.JobResponse
	test.DecodeResponse(suite.T(), &r, &job)
	suite.Assert().Equal(list.Data[0].ID, job.Data.ID)

	// Publishing does not change any balance, the worker does
	suite.assertDecimal("960", suite.balance(account.ID))
}

func (suite *TestSuiteStandard) TestJobsEmpty() {
	r := suite.request("", http.MethodGet, test.BaseURL+"/v1/sweeps/jobs", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{ "data": [] }`, r.Body.String())

	r = suite.request("", http.MethodGet, test.BaseURL+"/v1/sweeps/jobs/"+uuid.NewString(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBudgetAlertSweep() {
	suite.createTestUser("user_1")
	account := suite.createTestAccount("user_1", "Checking", "1000")
	suite.expense("user_1", account.ID, "420", date(2024, 1, 5))

	_, err := suite.controller.Monitor.SetBudget(context.Background(), "user_1", decimal.NewFromInt(500))
	suite.Require().Nil(err)

	// A user without a default account is skipped
	suite.createTestUser("user_2")
	_, err = suite.controller.Monitor.SetBudget(context.Background(), "user_2", decimal.NewFromInt(10))
	suite.Require().Nil(err)

	r := suite.request("", http.MethodPost, test.BaseURL+"/v1/sweeps/budget-alerts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result controllers.BudgetSweepResponse
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().Equal(scheduler.BudgetResult{Evaluated: 1, Alerted: 1}, *result.Data)

	// Only one alert per month
	r = suite.request("", http.MethodPost, test.BaseURL+"/v1/sweeps/budget-alerts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().Equal(scheduler.BudgetResult{Evaluated: 1, Alerted: 0}, *result.Data)
}

func (suite *TestSuiteStandard) TestSweepRunning() {
	suite.controller.Sweeps = busySweeps{}

	for _, path := range []string{"/v1/sweeps/recurrence", "/v1/sweeps/budget-alerts"} {
		r := suite.request("", http.MethodPost, test.BaseURL+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
		suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), "already running")
	}
}

func (suite *TestSuiteStandard) TestSweepDBError() {
	suite.closeDB()

	r := suite.request("", http.MethodPost, test.BaseURL+"/v1/sweeps/recurrence", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
