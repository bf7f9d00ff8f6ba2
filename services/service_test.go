package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-backend/config"
	"clinic-backend/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A fresh pool connection would see a fresh empty in-memory database,
	// so pin everything to a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestMailer() *utils.Mailer {
	// Unconfigured mailers log instead of dialing SMTP.
	return &utils.Mailer{}
}

func testSiteConfig() config.SiteConfig {
	return config.SiteConfig{
		SiteName:    "Test Clinic",
		BaseURL:     "http://localhost:8080",
		AdminEmails: []string{"staff@example.com"},
	}
}
