package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-backend/models"
	"clinic-backend/services"
)

type adminFixture struct {
	router   *gin.Engine
	db       *gorm.DB
	accounts *services.AccountService
	requests *services.RightsRequestService
	blog     *services.BlogService
}

func adminRouter(t *testing.T) adminFixture {
	t.Helper()
	db := newTestDB(t)
	cfg := testSiteConfig()

	accounts := services.NewAccountService(db, "admin-test-secret")
	appointments := services.NewAppointmentService(db, newTestMailer(), cfg)
	requests := services.NewRightsRequestService(db, newTestMailer(), cfg)
	blog := services.NewBlogService(db)
	staff := services.NewStaffService(db)
	consents := services.NewConsentLogService(db)

	ctl := NewAdminController(accounts, appointments, requests, blog, staff, consents)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	// The JWT middleware has its own tests; handlers are mounted bare here.
	r.POST("/api/admin/login", ctl.Login)
	r.GET("/api/admin/appointments", ctl.ListAppointments)
	r.GET("/api/admin/rights-requests", ctl.ListRightsRequests)
	r.PATCH("/api/admin/rights-requests/:id/status", ctl.UpdateRightsRequestStatus)
	r.POST("/api/admin/posts", ctl.CreatePost)
	r.PUT("/api/admin/posts/:id", ctl.UpdatePost)
	r.POST("/api/admin/posts/:id/publish", ctl.PublishPost)
	r.POST("/api/admin/categories", ctl.CreateCategory)
	r.DELETE("/api/admin/categories/:id", ctl.DeleteCategory)
	r.POST("/api/admin/staff", ctl.CreateStaffMember)
	r.GET("/api/admin/cookie-consents", ctl.ListCookieConsents)

	return adminFixture{router: r, db: db, accounts: accounts, requests: requests, blog: blog}
}

func jsonRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLogin(t *testing.T) {
	fx := adminRouter(t)
	_, err := fx.accounts.Create("Anna Kowalska", "anna", "correct horse")
	require.NoError(t, err)

	w := jsonRequest(fx.router, http.MethodPost, "/api/admin/login", `{"username":"anna","password":"correct horse"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data["token"])
	assert.Equal(t, "anna", resp.Data["username"])

	w = jsonRequest(fx.router, http.MethodPost, "/api/admin/login", `{"username":"anna","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = jsonRequest(fx.router, http.MethodPost, "/api/admin/login", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRightsRequestStatusEndpoint(t *testing.T) {
	fx := adminRouter(t)

	request, err := fx.requests.Create(services.RightsRequestInput{
		RequestType:    models.RequestTypeAccess,
		FullName:       "Anna Kowalska",
		Email:          "anna@example.com",
		Identification: "Former patient",
	})
	require.NoError(t, err)

	path := fmt.Sprintf("/api/admin/rights-requests/%d/status", request.ID)

	// pending cannot jump straight to completed.
	w := jsonRequest(fx.router, http.MethodPatch, path, `{"status":"completed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = jsonRequest(fx.router, http.MethodPatch, path, `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"in_progress"`)

	w = jsonRequest(fx.router, http.MethodPatch, "/api/admin/rights-requests/9999/status", `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = jsonRequest(fx.router, http.MethodPatch, "/api/admin/rights-requests/abc/status", `{"status":"in_progress"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminPostLifecycle(t *testing.T) {
	fx := adminRouter(t)

	w := jsonRequest(fx.router, http.MethodPost, "/api/admin/posts", `{"title":"Nowy wpis","excerpt":"Zajawka"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Data models.BlogPost `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	created := createResp.Data
	assert.Equal(t, models.PostStatusDraft, created.Status)
	assert.Equal(t, "nowy-wpis", created.Slug)

	w = jsonRequest(fx.router, http.MethodPost, fmt.Sprintf("/api/admin/posts/%d/publish", created.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	published, err := fx.blog.GetPostByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	w = jsonRequest(fx.router, http.MethodPost, "/api/admin/posts", `{"title":"Zły status","status":"archived"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = jsonRequest(fx.router, http.MethodPost, "/api/admin/posts", `{"excerpt":"bez tytułu"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminCategoryDeleteDetachesPosts(t *testing.T) {
	fx := adminRouter(t)

	w := jsonRequest(fx.router, http.MethodPost, "/api/admin/categories", `{"name":"Psychoedukacja"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var categoryResp struct {
		Data models.BlogCategory `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categoryResp))
	category := categoryResp.Data

	post := models.BlogPost{Title: "W kategorii", CategoryID: &category.ID}
	require.NoError(t, fx.blog.CreatePost(&post))

	w = jsonRequest(fx.router, http.MethodDelete, fmt.Sprintf("/api/admin/categories/%d", category.ID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	reloaded, err := fx.blog.GetPostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
}

func TestAdminStaffDefaultsToActive(t *testing.T) {
	fx := adminRouter(t)

	w := jsonRequest(fx.router, http.MethodPost, "/api/admin/staff", `{"first_name":"Anna","last_name":"Kowalska"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var memberResp struct {
		Data models.StaffMember `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &memberResp))
	assert.True(t, memberResp.Data.IsActive)
}

func TestAdminCookieConsentListing(t *testing.T) {
	fx := adminRouter(t)

	consents := services.NewConsentLogService(fx.db)
	_, err := consents.Record(services.ConsentRecord{Analytics: true, SessionKey: "aaa"})
	require.NoError(t, err)
	_, err = consents.Record(services.ConsentRecord{Analytics: false, SessionKey: "bbb"})
	require.NoError(t, err)

	w := jsonRequest(fx.router, http.MethodGet, "/api/admin/cookie-consents?analytics=true", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []models.CookieConsent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, "aaa", listResp.Data[0].SessionKey)
}
