package test

import (
	"testing"

	"github.com/ledgerly/backend/pkg/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Database returns a migrated in-memory database that is closed when the test ends.
func Database(t *testing.T) *gorm.DB {
	db, err := models.Connect(":memory:")
	require.Nil(t, err, "Database initialization failed")
	require.Nil(t, models.Migrate(db), "Database migration failed")

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CloseDB closes the database connection, e.g. to test error handling.
func CloseDB(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.Nil(t, err)
	require.Nil(t, sqlDB.Close())
}
