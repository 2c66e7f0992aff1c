package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
)

type AccountResponse struct {
	Data  *models.Account `json:"data"`                                                          // Data for the account
	Error *string         `json:"error,omitempty" example:"the account name must be unique"` // The error, if any occurred
}

type AccountListResponse struct {
	Data  []models.Account `json:"data"`                                                  // List of accounts
	Error *string          `json:"error,omitempty" example:"the X-User-ID header must be set"` // The error, if any occurred
}

// AccountDetail is an account with all of its transactions, newest first.
type AccountDetail struct {
	models.Account
	Transactions []models.Transaction `json:"transactions"`
}

type AccountDetailResponse struct {
	Data  *AccountDetail `json:"data"`                                                             // Data for the account
	Error *string        `json:"error,omitempty" example:"there is no account matching your query"` // The error, if any occurred
}

type BalanceCheckResponse struct {
	Data  *ledger.BalanceCheck `json:"data"`                                                             // Result of the balance check
	Error *string              `json:"error,omitempty" example:"there is no account matching your query"` // The error, if any occurred
}

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func (co Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsAccountList)
		r.GET("", co.GetAccounts)
		r.POST("", co.CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", co.OptionsAccountDetail)
		r.GET("/:id", co.GetAccount)
		r.OPTIONS("/:id/default", co.OptionsAccountDefault)
		r.PUT("/:id/default", co.SetDefaultAccount)
		r.OPTIONS("/:id/verify", co.OptionsAccountVerify)
		r.GET("/:id/verify", co.VerifyAccount)
	}
}

// OptionsAccountList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Router			/v1/accounts [options]
func (co Controller) OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsAccountDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id} [options]
func (co Controller) OptionsAccountDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsAccountDefault returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id}/default [options]
func (co Controller) OptionsAccountDefault(c *gin.Context) {
	httputil.OptionsPut(c)
}

// OptionsAccountVerify returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Accounts
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id}/verify [options]
func (co Controller) OptionsAccountVerify(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateAccount creates an account
//
//	@Summary		Create account
//	@Description	Creates a new account. The first account of a user always is the default account.
//	@Tags			Accounts
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	AccountResponse
//	@Failure		400		{object}	AccountResponse
//	@Failure		401		{object}	AccountResponse
//	@Failure		500		{object}	AccountResponse
//	@Param			account	body		ledger.AccountInput	true	"Account"
//	@Router			/v1/accounts [post]
func (co Controller) CreateAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var input ledger.AccountInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	account, err := co.Poster.CreateAccount(c, ownerID, input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: &account})
}

// GetAccounts returns all accounts of the user
//
//	@Summary		List accounts
//	@Description	Returns all accounts of the user, ordered by name
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	AccountListResponse
//	@Failure		401	{object}	AccountListResponse
//	@Failure		500	{object}	AccountListResponse
//	@Router			/v1/accounts [get]
func (co Controller) GetAccounts(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var accounts []models.Account
	err := co.DB.WithContext(c).
		Where(&models.Account{OwnerID: ownerID}).
		Order("name ASC").
		Find(&accounts).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountListResponse{Error: &e})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]models.Account, 0, len(accounts))
	data = append(data, accounts...)

	c.JSON(http.StatusOK, AccountListResponse{Data: data})
}

// GetAccount returns an account with its transactions
//
//	@Summary		Get account
//	@Description	Returns a specific account with all its transactions, newest first
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	AccountDetailResponse
//	@Failure		400	{object}	AccountDetailResponse
//	@Failure		401	{object}	AccountDetailResponse
//	@Failure		404	{object}	AccountDetailResponse
//	@Failure		500	{object}	AccountDetailResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id} [get]
func (co Controller) GetAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), AccountDetailResponse{Error: &e})
		return
	}

	db := co.DB.WithContext(c)

	var detail AccountDetail
	err := db.
		Where(&models.Account{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}, OwnerID: ownerID}).
		First(&detail.Account).Error
	if err == nil {
		err = db.
			Where(&models.Transaction{AccountID: detail.ID}).
			Order("date DESC, created_at DESC").
			Find(&detail.Transactions).Error
	}
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountDetailResponse{Error: &e})
		return
	}

	if detail.Transactions == nil {
		detail.Transactions = make([]models.Transaction, 0)
	}

	c.JSON(http.StatusOK, AccountDetailResponse{Data: &detail})
}

// SetDefaultAccount makes an account the default account
//
//	@Summary		Set default account
//	@Description	Makes the account the default account of the user. Budgets are tracked against the default account.
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	AccountResponse
//	@Failure		400	{object}	AccountResponse
//	@Failure		401	{object}	AccountResponse
//	@Failure		404	{object}	AccountResponse
//	@Failure		500	{object}	AccountResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id}/default [put]
func (co Controller) SetDefaultAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	account, err := co.Poster.SetDefaultAccount(c, ownerID, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), AccountResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: &account})
}

// VerifyAccount checks the balance of an account
//
//	@Summary		Verify account balance
//	@Description	Recomputes the balance from the initial balance and all transactions and compares it to the recorded balance
//	@Tags			Accounts
//	@Produce		json
//	@Success		200	{object}	BalanceCheckResponse
//	@Failure		400	{object}	BalanceCheckResponse
//	@Failure		401	{object}	BalanceCheckResponse
//	@Failure		404	{object}	BalanceCheckResponse
//	@Failure		500	{object}	BalanceCheckResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/accounts/{id}/verify [get]
func (co Controller) VerifyAccount(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceCheckResponse{Error: &e})
		return
	}

	check, err := co.Poster.VerifyBalance(c, ownerID, uri.ID.UUID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BalanceCheckResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BalanceCheckResponse{Data: &check})
}
