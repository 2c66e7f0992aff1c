package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/internal/uuid"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"golang.org/x/exp/slices"
)

type TransactionResponse struct {
	Data  *models.Transaction `json:"data"`                                                    // Data for the transaction
	Error *string             `json:"error,omitempty" example:"the amount must not be negative"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data       []models.Transaction `json:"data"`                                                      // List of transactions
	Error      *string              `json:"error,omitempty" example:"the X-User-ID header must be set"` // The error, if any occurred
	Pagination *Pagination          `json:"pagination,omitempty"`                                      // Pagination information
}

type TransactionDeleteResponse struct {
	Deleted int     `json:"deleted" example:"2"`                                                          // Number of deleted transactions
	Error   *string `json:"error,omitempty" example:"there is no transaction matching your query"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	AccountID   uuid.UUID               `form:"accountId"`                                                         // By ID of the account
	Type        types.TransactionType   `form:"type"`                                                              // By type
	Category    string                  `form:"category"`                                                          // By category
	Status      types.TransactionStatus `form:"status"`                                                            // By status
	IsRecurring bool                    `form:"isRecurring"`                                                       // Is the transaction recurring?
	FromDate    time.Time               `form:"fromDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Transactions at and after this date
	UntilDate   time.Time               `form:"untilDate" filterField:"false" time_format:"2006-01-02" time_utc:"1"` // Transactions before and at this date
	Offset      uint                    `form:"offset" filterField:"false"`                                        // The offset of the first transaction returned
	Limit       int                     `form:"limit" filterField:"false"`                                         // Maximum number of transactions to return
}

func (f TransactionQueryFilter) model(ownerID string) models.Transaction {
	return models.Transaction{
		OwnerID:     ownerID,
		AccountID:   f.AccountID.UUID,
		Type:        f.Type,
		Category:    f.Category,
		Status:      f.Status,
		IsRecurring: f.IsRecurring,
	}
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransaction)
		r.DELETE("", co.DeleteTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
	}
}

// OptionsTransactionList returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/v1/transactions [options]
func (co Controller) OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPostDelete(c)
}

// OptionsTransactionDetail returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	httputil.OptionsGet(c)
}

// CreateTransaction creates a transaction and updates the account balance
//
//	@Summary		Create transaction
//	@Description	Creates a transaction and applies it to the balance of its account. Recurring transactions are repeated by the recurrence sweep.
//	@Tags			Transactions
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	TransactionResponse
//	@Failure		400			{object}	TransactionResponse
//	@Failure		401			{object}	TransactionResponse
//	@Failure		404			{object}	TransactionResponse
//	@Failure		500			{object}	TransactionResponse
//	@Param			transaction	body		ledger.TransactionInput	true	"Transaction"
//	@Router			/v1/transactions [post]
func (co Controller) CreateTransaction(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var input ledger.TransactionInput
	if err := httputil.BindData(c, &input); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	transaction, err := co.Poster.Post(c, ownerID, input)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: &transaction})
}

// GetTransactions returns transactions of the user
//
//	@Summary		List transactions
//	@Description	Returns transactions of the user, newest first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200			{object}	TransactionListResponse
//	@Failure		400			{object}	TransactionListResponse
//	@Failure		401			{object}	TransactionListResponse
//	@Failure		500			{object}	TransactionListResponse
//	@Param			accountId	query		string	false	"Filter by account ID"
//	@Param			type		query		string	false	"Filter by type"
//	@Param			category	query		string	false	"Filter by category"
//	@Param			status		query		string	false	"Filter by status"
//	@Param			isRecurring	query		bool	false	"Is the transaction recurring?"
//	@Param			fromDate	query		string	false	"Transactions at and after this date, format 2006-01-02"
//	@Param			untilDate	query		string	false	"Transactions before and at this date, format 2006-01-02"
//	@Param			offset		query		uint	false	"The offset of the first transaction returned. Defaults to 0."
//	@Param			limit		query		int		false	"Maximum number of transactions to return. Defaults to 50."
//	@Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var filter TransactionQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{Error: &e})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	queryFields = append(queryFields, "OwnerID")

	q := co.DB.WithContext(c).
		Order("date DESC, created_at DESC").
		Where(filter.model(ownerID), queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", filter.UntilDate.AddDate(0, 0, 1))
	}

	q = q.Offset(int(filter.Offset))

	// Default to 50 transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	var count int64
	err = q.Model(&models.Transaction{}).Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &e})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]models.Transaction, 0, len(transactions))
	data = append(data, transactions...)

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetTransaction returns a specific transaction
//
//	@Summary		Get transaction
//	@Description	Returns a specific transaction
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionResponse
//	@Failure		400	{object}	TransactionResponse
//	@Failure		401	{object}	TransactionResponse
//	@Failure		404	{object}	TransactionResponse
//	@Failure		500	{object}	TransactionResponse
//	@Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
//	@Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	var transaction models.Transaction
	err := co.DB.WithContext(c).
		Where(&models.Transaction{DefaultModel: models.DefaultModel{ID: uri.ID.UUID}, OwnerID: ownerID}).
		First(&transaction).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &transaction})
}

// DeleteTransactions deletes transactions
//
//	@Summary		Delete transactions
//	@Description	Deletes all listed transactions and reverses their effect on the account balances. If any of the transactions does not exist, nothing is deleted.
//	@Tags			Transactions
//	@Produce		json
//	@Success		200	{object}	TransactionDeleteResponse
//	@Failure		400	{object}	TransactionDeleteResponse
//	@Failure		401	{object}	TransactionDeleteResponse
//	@Failure		404	{object}	TransactionDeleteResponse
//	@Failure		500	{object}	TransactionDeleteResponse
//	@Param			ids	query		string	true	"Comma separated list of transaction IDs"
//	@Router			/v1/transactions [delete]
func (co Controller) DeleteTransactions(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var query QueryIDs
	if err := c.ShouldBindQuery(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TransactionDeleteResponse{Error: &e})
		return
	}

	deleted, err := co.Poster.Delete(c, ownerID, query.IDs)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionDeleteResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TransactionDeleteResponse{Deleted: deleted})
}
