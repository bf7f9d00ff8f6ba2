package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-backend/models"
	"clinic-backend/services"
	"clinic-backend/utils"
)

// AdminController is the staff console API. Every route except Login sits
// behind the JWT middleware. Consent-audit rows are list-only here: there
// is no create, update or delete handler for them, and the underlying
// service has no mutating method either.
type AdminController struct {
	Accounts     *services.AccountService
	Appointments *services.AppointmentService
	Requests     *services.RightsRequestService
	Blog         *services.BlogService
	Staff        *services.StaffService
	ConsentLogs  *services.ConsentLogService
}

func NewAdminController(
	accounts *services.AccountService,
	appointments *services.AppointmentService,
	requests *services.RightsRequestService,
	blog *services.BlogService,
	staff *services.StaffService,
	consentLogs *services.ConsentLogService,
) *AdminController {
	return &AdminController{
		Accounts:     accounts,
		Appointments: appointments,
		Requests:     requests,
		Blog:         blog,
		Staff:        staff,
		ConsentLogs:  consentLogs,
	}
}

// ---- auth ----

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (ctl *AdminController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	token, account, err := ctl.Accounts.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":     token,
		"full_name": account.FullName,
		"username":  account.Username,
	})
}

// ---- appointments (list-only) ----

func (ctl *AdminController) ListAppointments(c *gin.Context) {
	filter := services.AppointmentFilter{Search: c.Query("search")}
	if raw := c.Query("marketing_consent"); raw != "" {
		v := raw == "true" || raw == "1"
		filter.MarketingConsent = &v
	}

	appointments, err := ctl.Appointments.List(filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load appointments")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appointments)
}

// ---- rights requests ----

func (ctl *AdminController) ListRightsRequests(c *gin.Context) {
	requests, err := ctl.Requests.List(services.RightsRequestFilter{
		RequestType: c.Query("request_type"),
		Status:      c.Query("status"),
		Search:      c.Query("search"),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load requests")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, requests)
}

type statusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctl *AdminController) UpdateRightsRequestStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	request, err := ctl.Requests.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.JSONError(c, http.StatusNotFound, "request not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.JSONError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update status")
		}
		return
	}
	utils.JSONSuccess(c, http.StatusOK, request)
}

// ---- blog posts ----

type postPayload struct {
	Title           string  `json:"title" binding:"required"`
	Slug            string  `json:"slug"`
	MetaDescription string  `json:"meta_description"`
	MetaKeywords    string  `json:"meta_keywords"`
	Excerpt         string  `json:"excerpt"`
	Content         string  `json:"content"`
	FeaturedImage   *string `json:"featured_image"`
	CategoryID      *uint   `json:"category_id"`
	Status          string  `json:"status"`
	ReadTime        uint    `json:"read_time"`
}

func (p *postPayload) apply(post *models.BlogPost) {
	post.Title = p.Title
	post.Slug = p.Slug
	post.MetaDescription = p.MetaDescription
	post.MetaKeywords = p.MetaKeywords
	post.Excerpt = p.Excerpt
	post.Content = p.Content
	post.FeaturedImage = p.FeaturedImage
	post.CategoryID = p.CategoryID
	if p.Status != "" {
		post.Status = p.Status
	}
	if p.ReadTime > 0 {
		post.ReadTime = p.ReadTime
	}
}

func validPostStatus(status string) bool {
	return status == "" || status == models.PostStatusDraft || status == models.PostStatusPublished
}

func (ctl *AdminController) ListPosts(c *gin.Context) {
	posts, err := ctl.Blog.ListAllPosts()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load posts")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, posts)
}

func (ctl *AdminController) CreatePost(c *gin.Context) {
	var payload postPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if !validPostStatus(payload.Status) {
		utils.JSONError(c, http.StatusBadRequest, "invalid status")
		return
	}

	var post models.BlogPost
	payload.apply(&post)
	if err := ctl.Blog.CreatePost(&post); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create post")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, post)
}

func (ctl *AdminController) UpdatePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload postPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if !validPostStatus(payload.Status) {
		utils.JSONError(c, http.StatusBadRequest, "invalid status")
		return
	}

	post, err := ctl.Blog.GetPostByID(id)
	if err != nil {
		ctl.jsonNotFoundOr500(c, err, "post not found")
		return
	}

	payload.apply(post)
	if err := ctl.Blog.SavePost(post); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

func (ctl *AdminController) DeletePost(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Blog.DeletePost(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "post deleted"})
}

func (ctl *AdminController) PublishPost(c *gin.Context) {
	ctl.setPostStatus(c, models.PostStatusPublished)
}

func (ctl *AdminController) UnpublishPost(c *gin.Context) {
	ctl.setPostStatus(c, models.PostStatusDraft)
}

func (ctl *AdminController) setPostStatus(c *gin.Context, status string) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	post, err := ctl.Blog.SetPostStatus(id, status)
	if err != nil {
		ctl.jsonNotFoundOr500(c, err, "post not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, post)
}

// ---- blog categories ----

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (ctl *AdminController) ListCategories(c *gin.Context) {
	categories, err := ctl.Blog.Categories()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load categories")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, categories)
}

func (ctl *AdminController) CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	category := models.BlogCategory{
		Name:        strings.TrimSpace(payload.Name),
		Slug:        payload.Slug,
		Description: payload.Description,
	}
	if err := ctl.Blog.CreateCategory(&category); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create category")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, category)
}

func (ctl *AdminController) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Blog.DeleteCategory(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete category")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "category deleted"})
}

// ---- staff members ----

type staffPayload struct {
	FirstName       string  `json:"first_name" binding:"required"`
	LastName        string  `json:"last_name" binding:"required"`
	Title           string  `json:"title"`
	Specialization  string  `json:"specialization"`
	Bio             string  `json:"bio"`
	Education       string  `json:"education"`
	ExperienceYears uint    `json:"experience_years"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Photo           *string `json:"photo"`
	IsActive        *bool   `json:"is_active"`
	DisplayOrder    uint    `json:"display_order"`
}

func (p *staffPayload) apply(member *models.StaffMember) {
	member.FirstName = p.FirstName
	member.LastName = p.LastName
	member.Title = p.Title
	member.Specialization = p.Specialization
	member.Bio = p.Bio
	member.Education = p.Education
	member.ExperienceYears = p.ExperienceYears
	member.Email = p.Email
	member.Phone = p.Phone
	member.Photo = p.Photo
	member.DisplayOrder = p.DisplayOrder
	if p.IsActive != nil {
		member.IsActive = *p.IsActive
	} else {
		member.IsActive = true
	}
}

func (ctl *AdminController) ListStaff(c *gin.Context) {
	members, err := ctl.Staff.ListAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load staff")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, members)
}

func (ctl *AdminController) CreateStaffMember(c *gin.Context) {
	var payload staffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	var member models.StaffMember
	payload.apply(&member)
	if err := ctl.Staff.Create(&member); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create staff member")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, member)
}

func (ctl *AdminController) UpdateStaffMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var payload staffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	member, err := ctl.Staff.GetByID(id)
	if err != nil {
		ctl.jsonNotFoundOr500(c, err, "staff member not found")
		return
	}

	payload.apply(member)
	if err := ctl.Staff.Save(member); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update staff member")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, member)
}

func (ctl *AdminController) DeleteStaffMember(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := ctl.Staff.Delete(id); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete staff member")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "staff member deleted"})
}

// ---- consent audit rows (read-only) ----

func (ctl *AdminController) ListCookieConsents(c *gin.Context) {
	filter := services.ConsentLogFilter{Search: c.Query("search")}
	if raw := c.Query("analytics"); raw != "" {
		v := raw == "true" || raw == "1"
		filter.Analytics = &v
	}

	consents, err := ctl.ConsentLogs.List(filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load consent logs")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, consents)
}

// ---- helpers ----

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func (ctl *AdminController) jsonNotFoundOr500(c *gin.Context, err error, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.JSONError(c, http.StatusNotFound, msg)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "something went wrong")
}
