package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/internal/types"
	"github.com/ledgerly/backend/pkg/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AlertThreshold is the percentage of the budget at which users are alerted.
var AlertThreshold = decimal.NewFromInt(80)

// Monitor evaluates budgets against the expenses of the month.
type Monitor struct {
	DB *gorm.DB
}

// AlertDecision is the result of evaluating a budget at a point in time.
type AlertDecision struct {
	ShouldAlert   bool            `json:"shouldAlert" example:"true"`
	PercentUsed   decimal.Decimal `json:"percentUsed" example:"84"`
	BudgetAmount  decimal.Decimal `json:"budgetAmount" example:"500"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"420"`
	AccountName   string          `json:"accountName" example:"Checking"`
}

// BudgetStatus is the budget of a user together with the expenses of the
// current month on the default account.
type BudgetStatus struct {
	Budget        *models.Budget  `json:"budget"`
	AccountID     uuid.UUID       `json:"accountId" example:"fd81dc45-a3a2-468e-a6fa-b2618f30aa45"`
	Month         types.Month     `json:"month" swaggertype:"string" example:"2024-01"`
	TotalExpenses decimal.Decimal `json:"totalExpenses" example:"420"`
	Remaining     decimal.Decimal `json:"remaining" example:"80"`
	PercentUsed   decimal.Decimal `json:"percentUsed" example:"84"`
}

// BudgetCandidate is a budget whose owner has a default account.
type BudgetCandidate struct {
	Budget  models.Budget
	Account models.Account
	Email   string
	Name    string
}

// MonthToDateExpenses sums all expenses on the account in the calendar
// month (UTC) that contains asOf, including the whole of its last day.
func (m Monitor) MonthToDateExpenses(ctx context.Context, accountID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	month := types.MonthOf(asOf)

	var amounts []decimal.Decimal
	err := m.DB.WithContext(ctx).
		Model(&models.Transaction{}).
		Where(&models.Transaction{AccountID: accountID, Type: types.Expense}).
		Where("transactions.date >= date(?) AND transactions.date < date(?)", month.Start(), month.AddDate(0, 1).Start()).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, storageError(err)
	}

	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}

	return sum, nil
}

// Evaluate decides whether the owner of the budget needs to be alerted at asOf.
func (m Monitor) Evaluate(ctx context.Context, budget models.Budget, account models.Account, asOf time.Time) (AlertDecision, error) {
	expenses, err := m.MonthToDateExpenses(ctx, account.ID, asOf)
	if err != nil {
		return AlertDecision{}, err
	}

	percent := PercentUsed(expenses, budget.Amount)

	return AlertDecision{
		ShouldAlert:   ShouldAlert(percent, budget.LastAlertSent, asOf),
		PercentUsed:   percent,
		BudgetAmount:  budget.Amount,
		TotalExpenses: expenses,
		AccountName:   account.Name,
	}, nil
}

// PercentUsed is expenses as a percentage of amount. It is zero for
// budgets without a positive amount.
func PercentUsed(expenses, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}

	return expenses.Div(amount).Mul(decimal.NewFromInt(100))
}

// ShouldAlert reports whether an alert is due: the threshold is reached
// and no alert has been sent in the calendar month (UTC) of asOf yet.
func ShouldAlert(percentUsed decimal.Decimal, lastAlertSent *time.Time, asOf time.Time) bool {
	if percentUsed.LessThan(AlertThreshold) {
		return false
	}

	return lastAlertSent == nil || !types.MonthOf(asOf).Contains(*lastAlertSent)
}

// RecordAlert stores that an alert for the budget was delivered at asOf.
func (m Monitor) RecordAlert(ctx context.Context, budget *models.Budget, asOf time.Time) error {
	sent := asOf.UTC()

	err := m.DB.WithContext(ctx).Model(budget).Update("last_alert_sent", sent).Error
	if err != nil {
		return storageError(err)
	}

	budget.LastAlertSent = &sent
	return nil
}

// Candidates returns every budget whose owner has a default account.
// Budgets of owners without one cannot be evaluated and are skipped.
func (m Monitor) Candidates(ctx context.Context) ([]BudgetCandidate, error) {
	db := m.DB.WithContext(ctx)

	var budgets []models.Budget
	if err := db.Preload("Owner").Order("created_at ASC").Find(&budgets).Error; err != nil {
		return nil, storageError(err)
	}

	candidates := make([]BudgetCandidate, 0, len(budgets))
	for _, b := range budgets {
		var accounts []models.Account
		err := db.Where(&models.Account{OwnerID: b.OwnerID, IsDefault: true}).Limit(1).Find(&accounts).Error
		if err != nil {
			return nil, storageError(err)
		}

		if len(accounts) == 0 {
			continue
		}

		candidates = append(candidates, BudgetCandidate{
			Budget:  b,
			Account: accounts[0],
			Email:   b.Owner.Email,
			Name:    b.Owner.Name,
		})
	}

	return candidates, nil
}

// SetBudget creates the budget of the owner or updates its amount.
func (m Monitor) SetBudget(ctx context.Context, ownerID string, amount decimal.Decimal) (models.Budget, error) {
	if !amount.IsPositive() {
		return models.Budget{}, models.ErrBudgetAmount
	}

	var budget models.Budget
	err := m.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var budgets []models.Budget
		if err := tx.Where(&models.Budget{OwnerID: ownerID}).Limit(1).Find(&budgets).Error; err != nil {
			return err
		}

		if len(budgets) == 0 {
			budget = models.Budget{OwnerID: ownerID, Amount: amount}
			return tx.Create(&budget).Error
		}

		budget = budgets[0]
		budget.Amount = amount
		return tx.Model(&budget).Update("amount", amount).Error
	})
	if err != nil {
		return models.Budget{}, storageError(err)
	}

	return budget, nil
}

// Status returns the budget of the owner and how much of it is used in the
// month of asOf. Without a budget, only the expenses are reported.
func (m Monitor) Status(ctx context.Context, ownerID string, asOf time.Time) (BudgetStatus, error) {
	db := m.DB.WithContext(ctx)
	status := BudgetStatus{Month: types.MonthOf(asOf)}

	var accounts []models.Account
	if err := db.Where(&models.Account{OwnerID: ownerID, IsDefault: true}).Limit(1).Find(&accounts).Error; err != nil {
		return BudgetStatus{}, storageError(err)
	}
	if len(accounts) == 0 {
		return BudgetStatus{}, ErrNoDefaultAccount
	}
	status.AccountID = accounts[0].ID

	expenses, err := m.MonthToDateExpenses(ctx, status.AccountID, asOf)
	if err != nil {
		return BudgetStatus{}, err
	}
	status.TotalExpenses = expenses

	var budgets []models.Budget
	if err := db.Where(&models.Budget{OwnerID: ownerID}).Limit(1).Find(&budgets).Error; err != nil {
		return BudgetStatus{}, storageError(err)
	}

	if len(budgets) > 0 {
		status.Budget = &budgets[0]
		status.Remaining = budgets[0].Amount.Sub(expenses)
		status.PercentUsed = PercentUsed(expenses, budgets[0].Amount)
	}

	return status, nil
}
