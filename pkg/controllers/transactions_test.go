package controllers_test

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/controllers"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionCreate() {
	suite.createTestUser("user_1")
	account := suite.createTestAccount("user_1", "Checking", "1000")

	r := suite.request("user_1", http.MethodPost, test.BaseURL+"/v1/transactions", ledger.TransactionInput{
		AccountID: account.ID,
		Type:      types.Expense,
		Amount:    decimal.NewFromInt(200),
		Date:      date(2024, 1, 15),
		Category:  "groceries",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var created controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &created)
	suite.Assert().Equal(types.Completed, created.Data.Status)
	suite.Assert().Equal("user_1", created.Data.OwnerID)
	suite.assertDecimal("800", suite.balance(account.ID))

	r = suite.request("user_1", http.MethodPost, test.BaseURL+"/v1/transactions", ledger.TransactionInput{
		AccountID:         account.ID,
		Type:              types.Income,
		Amount:            decimal.RequireFromString("50.25"),
		Date:              date(2024, 1, 31),
		Category:          "salary",
		IsRecurring:       true,
		RecurringInterval: types.Monthly,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &created)
	suite.Require().NotNil(created.Data.NextRecurringDate)
	suite.Assert().Equal(date(2024, 2, 29), *created.Data.NextRecurringDate)
	suite.assertDecimal("850.25", suite.balance(account.ID))
}

func (suite *TestSuiteStandard) TestTransactionCreateErrors() {
	suite.createTestUser("user_1")
	suite.createTestUser("user_2")
	account := suite.createTestAccount("user_1", "Checking", "1000")
	foreign := suite.createTestAccount("user_2", "Checking", "1000")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken body", `{ "amount": 12`, http.StatusBadRequest},
		{"Invalid type", ledger.TransactionInput{AccountID: account.ID, Type: "TRANSFER", Amount: decimal.NewFromInt(1), Category: "other"}, http.StatusBadRequest},
		{"Negative amount", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: decimal.NewFromInt(-1), Category: "other"}, http.StatusBadRequest},
		{"No category", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: decimal.NewFromInt(1)}, http.StatusBadRequest},
		{"Recurring without interval", ledger.TransactionInput{AccountID: account.ID, Type: types.Expense, Amount: decimal.NewFromInt(1), Category: "rent", IsRecurring: true}, http.StatusBadRequest},
		{"Unknown account", ledger.TransactionInput{AccountID: uuid.New(), Type: types.Expense, Amount: decimal.NewFromInt(1), Category: "other"}, http.StatusNotFound},
		{"Account of other owner", ledger.TransactionInput{AccountID: foreign.ID, Type: types.Expense, Amount: decimal.NewFromInt(1), Category: "other"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request("user_1", http.MethodPost, test.BaseURL+"/v1/transactions", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	// Nothing was applied
	suite.assertDecimal("1000", suite.balance(account.ID))
	suite.assertDecimal("1000", suite.balance(foreign.ID))
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	suite.createTestUser("user_1")
	suite.createTestUser("user_2")
	checking := suite.createTestAccount("user_1", "Checking", "1000")
	savings := suite.createTestAccount("user_1", "Savings", "1000")
	foreign := suite.createTestAccount("user_2", "Checking", "1000")

	suite.expense("user_1", checking.ID, "10", date(2024, 1, 1))
	suite.expense("user_1", checking.ID, "20", date(2024, 1, 10))
	suite.expense("user_1", savings.ID, "30", date(2024, 1, 15))
	suite.expense("user_2", foreign.ID, "40", date(2024, 1, 10))
	suite.createTestTransaction("user_1", ledger.TransactionInput{
		AccountID: checking.ID,
		Type:      types.Income,
		Amount:    decimal.NewFromInt(500),
		Date:      date(2024, 1, 5),
		Category:  "salary",
		Status:    types.Pending,
	})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 4, 4},
		{"Account", fmt.Sprintf("accountId=%s", checking.ID), 3, 3},
		{"Foreign account", fmt.Sprintf("accountId=%s", foreign.ID), 0, 0},
		{"Type", "type=INCOME", 1, 1},
		{"Category", "category=groceries", 3, 3},
		{"Status", "status=PENDING", 1, 1},
		{"Not recurring", "isRecurring=false", 4, 4},
		{"From date", "fromDate=2024-01-05", 3, 3},
		{"Until date", "untilDate=2024-01-10", 3, 3},
		{"Date range", "fromDate=2024-01-02&untilDate=2024-01-10", 2, 2},
		{"Limit", "limit=2", 2, 4},
		{"Offset", "offset=3", 1, 4},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request("user_1", http.MethodGet, fmt.Sprintf("%s/v1/transactions?%s", test.BaseURL, tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var list controllers.TransactionListResponse
			test.DecodeResponse(suite.T(), &r, &list)
			suite.Assert().Len(list.Data, tt.len, "Request ID: %s", r.Header().Get("x-request-id"))
			suite.Assert().Equal(tt.total, list.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetOrderAndPagination() {
	suite.createTestUser("user_1")
	account := suite.createTestAccount("user_1", "Checking", "1000")

	suite.expense("user_1", account.ID, "1", date(2024, 1, 1))
	suite.expense("user_1", account.ID, "3", date(2024, 1, 3))
	suite.expense("user_1", account.ID, "2", date(2024, 1, 2))

	r := suite.request("user_1", http.MethodGet, test.BaseURL+"/v1/transactions?offset=1&limit=1", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Data, 1)
	suite.assertDecimal("2", list.Data[0].Amount)
	suite.Assert().Equal(controllers.Pagination{Count: 1, Offset: 1, Limit: 1, Total: 3}, *list.Pagination)
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalidQuery() {
	for _, query := range []string{"accountId=nope", "fromDate=yesterday", "limit=many"} {
		r := suite.request("user_1", http.MethodGet, fmt.Sprintf("%s/v1/transactions?%s", test.BaseURL, query), "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	suite.createTestUser("user_1")
	suite.createTestUser("user_2")
	account := suite.createTestAccount("user_1", "Checking", "1000")
	transaction := suite.expense("user_1", account.ID, "12.5", date(2024, 1, 5))

	r := suite.request("user_1", http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", test.BaseURL, transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(transaction.ID, response.Data.ID)
	suite.assertDecimal("12.5", response.Data.Amount)
	suite.Assert().Equal(date(2024, 1, 5), response.Data.Date)

	r = suite.request("user_2", http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", test.BaseURL, transaction.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request("user_1", http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", test.BaseURL, uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request("user_1", http.MethodGet, test.BaseURL+"/v1/transactions/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionsDelete() {
	suite.createTestUser("user_1")
	checking := suite.createTestAccount("user_1", "Checking", "1000")
	savings := suite.createTestAccount("user_1", "Savings", "500")

	a := suite.expense("user_1", checking.ID, "200", date(2024, 1, 5))
	b := suite.expense("user_1", checking.ID, "100", date(2024, 1, 6))
	c := suite.createTestTransaction("user_1", ledger.TransactionInput{
		AccountID: savings.ID,
		Type:      types.Income,
		Amount:    decimal.NewFromInt(50),
		Date:      date(2024, 1, 7),
		Category:  "interest",
	})
	suite.assertDecimal("700", suite.balance(checking.ID))
	suite.assertDecimal("550", suite.balance(savings.ID))

	r := suite.request("user_1", http.MethodDelete, fmt.Sprintf("%s/v1/transactions?ids=%s,%s,%s", test.BaseURL, a.ID, b.ID, c.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.TransactionDeleteResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(3, response.Deleted)
	suite.assertDecimal("1000", suite.balance(checking.ID))
	suite.assertDecimal("500", suite.balance(savings.ID))

	r = suite.request("user_1", http.MethodGet, fmt.Sprintf("%s/v1/transactions/%s", test.BaseURL, a.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsDeleteAllOrNothing() {
	suite.createTestUser("user_1")
	suite.createTestUser("user_2")
	account := suite.createTestAccount("user_1", "Checking", "1000")
	foreignAccount := suite.createTestAccount("user_2", "Checking", "1000")

	own := suite.expense("user_1", account.ID, "200", date(2024, 1, 5))
	foreign := suite.expense("user_2", foreignAccount.ID, "300", date(2024, 1, 5))

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"Missing IDs", "", http.StatusBadRequest},
		{"Invalid ID", "ids=" + own.ID.String() + ",nope", http.StatusBadRequest},
		{"Unknown ID", fmt.Sprintf("ids=%s,%s", own.ID, uuid.New()), http.StatusNotFound},
		{"Foreign ID", fmt.Sprintf("ids=%s,%s", own.ID, foreign.ID), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request("user_1", http.MethodDelete, fmt.Sprintf("%s/v1/transactions?%s", test.BaseURL, tt.query), "")
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	suite.assertDecimal("800", suite.balance(account.ID))
	suite.assertDecimal("700", suite.balance(foreignAccount.ID))
}
