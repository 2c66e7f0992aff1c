package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerly/backend/pkg/models"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestModelTimeUTC() {
	tz, _ := time.LoadLocation("Europe/Berlin")

	model := models.DefaultModel{
		Timestamps: models.Timestamps{
			CreatedAt: time.Date(2000, 1, 2, 3, 4, 5, 6, tz),
			UpdatedAt: time.Date(2001, 2, 3, 4, 5, 6, 7, tz),
			DeletedAt: &gorm.DeletedAt{Time: time.Now().In(tz)},
		},
	}

	err := model.AfterFind(suite.db)
	if err != nil {
		suite.Assert().Fail("model.AfterFind failed")
	}

	suite.Assert().Equal(time.UTC, model.CreatedAt.Location(), "Timezone for model is not UTC")
	suite.Assert().Equal(time.UTC, model.UpdatedAt.Location(), "Timezone for model is not UTC")
	suite.Assert().Equal(time.UTC, model.DeletedAt.Time.Location(), "Timezone for model is not UTC")
}

func (suite *TestSuiteStandard) TestModelKeepsExistingID() {
	id := uuid.New()
	model := models.DefaultModel{ID: id}

	suite.Require().Nil(model.BeforeCreate(suite.db))
	suite.Assert().Equal(id, model.ID)

	model = models.DefaultModel{}
	suite.Require().Nil(model.BeforeCreate(suite.db))
	suite.Assert().NotEqual(uuid.Nil, model.ID)
}
