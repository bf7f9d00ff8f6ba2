package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-backend/models"
	"clinic-backend/services"
)

func rightsRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := testSiteConfig()
	ctl := NewRightsRequestController(services.NewRightsRequestService(db, newTestMailer(), cfg), cfg)

	r := newTestRouter()
	r.GET("/data-subject-rights", ctl.ShowForm)
	r.POST("/data-subject-rights", ctl.Submit)
	return r, db
}

func validRightsForm() url.Values {
	return url.Values{
		"request_type":    {models.RequestTypeAccess},
		"full_name":       {"Anna Kowalska"},
		"email":           {"anna@example.com"},
		"identification":  {"Former patient, visits in 2024"},
		"privacy_consent": {"on"},
	}
}

func requestCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.DataSubjectRightsRequest{}).Count(&count).Error)
	return count
}

func TestRightsSubmitShowsTrackingNumber(t *testing.T) {
	r, db := rightsRouter(t)

	w := postForm(r, "/data-subject-rights", validRightsForm())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), requestCount(t, db))

	var request models.DataSubjectRightsRequest
	require.NoError(t, db.First(&request).Error)
	assert.Contains(t, w.Body.String(), request.TrackingNumber)
}

func TestRightsSubmitRejectsUnknownType(t *testing.T) {
	r, db := rightsRouter(t)

	form := validRightsForm()
	form.Set("request_type", "everything")
	w := postForm(r, "/data-subject-rights", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Select the type of your request.")
	assert.Equal(t, int64(0), requestCount(t, db))
}

func TestRightsSubmitHoneypot(t *testing.T) {
	r, db := rightsRouter(t)

	form := validRightsForm()
	form.Set("hp_field", "filled by a bot")
	w := postForm(r, "/data-subject-rights", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid submission.")
	assert.Equal(t, int64(0), requestCount(t, db))
}

func TestRightsSubmitRequiresConsent(t *testing.T) {
	r, db := rightsRouter(t)

	form := validRightsForm()
	form.Del("privacy_consent")
	w := postForm(r, "/data-subject-rights", form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Consent to data processing is required.")
	assert.Equal(t, int64(0), requestCount(t, db))
}
