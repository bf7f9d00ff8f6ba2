package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
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

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Tests run from the package directory.
	r.LoadHTMLGlob("../templates/*.html")
	return r
}

func newTestMailer() *utils.Mailer {
	return &utils.Mailer{}
}

func testSiteConfig() config.SiteConfig {
	return config.SiteConfig{
		SiteName:    "Test Clinic",
		BaseURL:     "http://localhost:8080",
		AdminEmails: []string{"staff@example.com"},
	}
}
