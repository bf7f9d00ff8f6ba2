package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/config"
	"clinic-backend/models"
	"clinic-backend/services"
)

// requestTypeOption feeds the form's select box.
type requestTypeOption struct {
	Value string
	Label string
}

var requestTypeOptions = []requestTypeOption{
	{models.RequestTypeAccess, models.RequestTypeLabel(models.RequestTypeAccess)},
	{models.RequestTypeRectification, models.RequestTypeLabel(models.RequestTypeRectification)},
	{models.RequestTypeErasure, models.RequestTypeLabel(models.RequestTypeErasure)},
	{models.RequestTypePortability, models.RequestTypeLabel(models.RequestTypePortability)},
	{models.RequestTypeRestriction, models.RequestTypeLabel(models.RequestTypeRestriction)},
	{models.RequestTypeObjection, models.RequestTypeLabel(models.RequestTypeObjection)},
}

type RightsRequestController struct {
	Service *services.RightsRequestService
	Cfg     config.SiteConfig
}

func NewRightsRequestController(service *services.RightsRequestService, cfg config.SiteConfig) *RightsRequestController {
	return &RightsRequestController{Service: service, Cfg: cfg}
}

type rightsRequestForm struct {
	RequestType    string `form:"request_type"`
	FullName       string `form:"full_name"`
	Email          string `form:"email"`
	Phone          string `form:"phone"`
	Identification string `form:"identification"`
	Details        string `form:"details"`

	HPField string `form:"hp_field"`

	PrivacyConsent string `form:"privacy_consent"`
}

func (f *rightsRequestForm) validate() []string {
	var errs []string

	if strings.TrimSpace(f.HPField) != "" {
		return []string{errInvalidSubmission}
	}
	if !models.IsValidRequestType(f.RequestType) {
		errs = append(errs, "Select the type of your request.")
	}
	if strings.TrimSpace(f.FullName) == "" {
		errs = append(errs, "Full name is required.")
	}
	if !isValidEmail(f.Email) {
		errs = append(errs, "Enter a valid email address.")
	}
	if strings.TrimSpace(f.Identification) == "" {
		errs = append(errs, "Identification details are required.")
	}
	if !isChecked(f.PrivacyConsent) {
		errs = append(errs, errConsentRequired)
	}
	return errs
}

// ShowForm handles GET /data-subject-rights.
func (ctl *RightsRequestController) ShowForm(c *gin.Context) {
	ctl.render(c, rightsRequestForm{}, nil)
}

// Submit handles POST /data-subject-rights. A successful submission
// re-renders the page with the tracking number; the emails are best effort
// and never change the outcome.
func (ctl *RightsRequestController) Submit(c *gin.Context) {
	var form rightsRequestForm
	if err := c.ShouldBind(&form); err != nil {
		ctl.render(c, form, []string{errInvalidSubmission})
		return
	}

	if errs := form.validate(); len(errs) > 0 {
		ctl.render(c, form, errs)
		return
	}

	request, err := ctl.Service.Create(services.RightsRequestInput{
		RequestType:    form.RequestType,
		FullName:       form.FullName,
		Email:          form.Email,
		Phone:          form.Phone,
		Identification: form.Identification,
		Details:        form.Details,
	})
	if err != nil {
		ctl.render(c, form, []string{"Something went wrong. Please try again."})
		return
	}

	c.HTML(http.StatusOK, "data_subject_rights.html", gin.H{
		"SiteName":       ctl.Cfg.SiteName,
		"RequestTypes":   requestTypeOptions,
		"Success":        true,
		"TrackingNumber": request.TrackingNumber,
	})
}

func (ctl *RightsRequestController) render(c *gin.Context, form rightsRequestForm, errs []string) {
	c.HTML(http.StatusOK, "data_subject_rights.html", gin.H{
		"SiteName":     ctl.Cfg.SiteName,
		"RequestTypes": requestTypeOptions,
		"Form":         form,
		"Errors":       errs,
	})
}
