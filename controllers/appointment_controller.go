package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/config"
	"clinic-backend/services"
)

type AppointmentController struct {
	Service *services.AppointmentService
	Cfg     config.SiteConfig
}

func NewAppointmentController(service *services.AppointmentService, cfg config.SiteConfig) *AppointmentController {
	return &AppointmentController{Service: service, Cfg: cfg}
}

type appointmentForm struct {
	Name          string `form:"name"`
	Phone         string `form:"phone"`
	Email         string `form:"email"`
	PreferredDate string `form:"preferred_date"`
	Message       string `form:"message"`

	// Honeypot: hidden in the template, empty for humans.
	HPField string `form:"hp_field"`

	DataProcessingConsent string `form:"data_processing_consent"`
	MarketingConsent      string `form:"marketing_consent"`
}

func (f *appointmentForm) validate() []string {
	var errs []string

	if strings.TrimSpace(f.HPField) != "" {
		return []string{errInvalidSubmission}
	}
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "Name is required.")
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs = append(errs, "Phone is required.")
	}
	if strings.TrimSpace(f.Email) != "" && !isValidEmail(f.Email) {
		errs = append(errs, "Enter a valid email address.")
	}
	if !isChecked(f.DataProcessingConsent) {
		errs = append(errs, errConsentRequired)
	}
	return errs
}

// ShowForm handles GET /book: the form lives on the home page.
func (ctl *AppointmentController) ShowForm(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// Book handles POST /book. On validation failure the home page is
// re-rendered with the errors; on success the lead is stored, the
// notification emails are attempted, and the visitor lands on /thanks no
// matter what the mail server thinks.
func (ctl *AppointmentController) Book(c *gin.Context) {
	var form appointmentForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.render(c, form, []string{errInvalidSubmission})
		return
	}

	if errs := form.validate(); len(errs) > 0 {
		ctl.render(c, form, errs)
		return
	}

	_, err := ctl.Service.Create(services.AppointmentInput{
		Name:             form.Name,
		Phone:            form.Phone,
		Email:            form.Email,
		PreferredDate:    form.PreferredDate,
		Message:          form.Message,
		MarketingConsent: isChecked(form.MarketingConsent),
	})
	if err != nil {
		ctl.render(c, form, []string{"Something went wrong. Please try again."})
		return
	}

	c.Redirect(http.StatusSeeOther, "/thanks")
}

func (ctl *AppointmentController) render(c *gin.Context, form appointmentForm, errs []string) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"SiteName": ctl.Cfg.SiteName,
		"Form":     form,
		"Errors":   errs,
	})
}
