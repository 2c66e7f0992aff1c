package models_test

import (
	"time"

	"github.com/ledgerly/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetAmountMustBePositive() {
	user := suite.createTestUser("budget")

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		err := suite.db.Create(&models.Budget{OwnerID: user.ID, Amount: amount}).Error
		suite.Assert().ErrorIs(err, models.ErrBudgetAmount)
	}
}

func (suite *TestSuiteStandard) TestBudgetOnePerOwner() {
	user := suite.createTestUser("budget")

	suite.Require().Nil(suite.db.Create(&models.Budget{OwnerID: user.ID, Amount: decimal.NewFromInt(500)}).Error)

	err := suite.db.Create(&models.Budget{OwnerID: user.ID, Amount: decimal.NewFromInt(600)}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetExists)
}

func (suite *TestSuiteStandard) TestBudgetLastAlertSentUTC() {
	user := suite.createTestUser("budget")
	tz := time.FixedZone("UTC-5", -5*60*60)
	sent := time.Date(2024, 1, 31, 22, 0, 0, 0, tz)

	budget := models.Budget{OwnerID: user.ID, Amount: decimal.NewFromInt(500), LastAlertSent: &sent}
	suite.Require().Nil(suite.db.Create(&budget).Error)

	var stored models.Budget
	suite.Require().Nil(suite.db.First(&stored, budget.ID).Error)
	suite.Require().NotNil(stored.LastAlertSent)
	suite.Assert().Equal(time.UTC, stored.LastAlertSent.Location())
	suite.Assert().Equal(time.February, stored.LastAlertSent.Month())
}
