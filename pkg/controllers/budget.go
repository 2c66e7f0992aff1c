package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/httputil"
	"github.com/ledgerly/backend/pkg/ledger"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/shopspring/decimal"
)

type BudgetEditable struct {
	Amount decimal.Decimal `json:"amount" example:"500"` // Monthly spending limit
}

type BudgetResponse struct {
	Data  *models.Budget `json:"data"`                                                      // Data for the budget
	Error *string        `json:"error,omitempty" example:"the budget amount must be positive"` // The error, if any occurred
}

type BudgetStatusResponse struct {
	Data  *ledger.BudgetStatus `json:"data"`                                                                 // Budget usage of the month
	Error *string              `json:"error,omitempty" example:"there is no default account for this user"` // The error, if any occurred
}

type QueryMonth struct {
	Month string `form:"month" example:"2024-01"` // Year and month
}

// RegisterBudgetRoutes registers the routes for the budget with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsBudget)
	r.GET("", co.GetBudget)
	r.PUT("", co.SetBudget)
}

// OptionsBudget returns the allowed HTTP verbs
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budget
//	@Success		204
//	@Router			/v1/budget [options]
func (co Controller) OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPut(c)
}

// GetBudget returns the budget usage
//
//	@Summary		Get budget status
//	@Description	Returns the budget of the user and the expenses on the default account for a month
//	@Tags			Budget
//	@Produce		json
//	@Success		200		{object}	BudgetStatusResponse
//	@Failure		400		{object}	BudgetStatusResponse
//	@Failure		401		{object}	BudgetStatusResponse
//	@Failure		404		{object}	BudgetStatusResponse
//	@Failure		500		{object}	BudgetStatusResponse
//	@Param			month	query		string	false	"Year and month, format 2006-01. Defaults to the current month."
//	@Router			/v1/budget [get]
func (co Controller) GetBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, BudgetStatusResponse{Error: &e})
		return
	}

	asOf := co.now()
	if query.Month != "" {
		month, err := types.ParseMonth(query.Month)
		if err != nil {
			e := err.Error()
			c.JSON(http.StatusBadRequest, BudgetStatusResponse{Error: &e})
			return
		}

		// Past months are reported in full
		if !month.Contains(asOf) {
			asOf = month.End()
		}
	}

	budgetStatus, err := co.Monitor.Status(c, ownerID, asOf)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetStatusResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetStatusResponse{Data: &budgetStatus})
}

// SetBudget creates or updates the budget
//
//	@Summary		Set budget
//	@Description	Sets the monthly spending limit of the user
//	@Tags			Budget
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	BudgetResponse
//	@Failure		401		{object}	BudgetResponse
//	@Failure		500		{object}	BudgetResponse
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/budget [put]
func (co Controller) SetBudget(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}

	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	budget, err := co.Monitor.SetBudget(c, ownerID, editable.Amount)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &budget})
}
