package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"clinic-backend/config"
	"clinic-backend/models"
	"clinic-backend/utils"
)

// ErrInvalidTransition is returned when a status change is not allowed by
// the request lifecycle (pending -> in_progress -> completed, with
// rejection possible from the two non-terminal states).
var ErrInvalidTransition = errors.New("invalid status transition")

const trackingNumberAttempts = 10

var allowedTransitions = map[string][]string{
	models.RequestStatusPending:    {models.RequestStatusInProgress, models.RequestStatusRejected},
	models.RequestStatusInProgress: {models.RequestStatusCompleted, models.RequestStatusRejected},
}

// RightsRequestService handles GDPR rights-request intake and the staff
// lifecycle transitions.
type RightsRequestService struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
	Cfg    config.SiteConfig
}

func NewRightsRequestService(db *gorm.DB, mailer *utils.Mailer, cfg config.SiteConfig) *RightsRequestService {
	return &RightsRequestService{DB: db, Mailer: mailer, Cfg: cfg}
}

// RightsRequestInput is a validated public submission.
type RightsRequestInput struct {
	RequestType    string
	FullName       string
	Email          string
	Phone          string
	Identification string
	Details        string
}

// Create persists the request with a unique tracking number and sends the
// best-effort confirmation and staff-alert emails.
func (s *RightsRequestService) Create(in RightsRequestInput) (*models.DataSubjectRightsRequest, error) {
	tracking, err := s.uniqueTrackingNumber()
	if err != nil {
		return nil, err
	}

	request := models.DataSubjectRightsRequest{
		RequestType:        in.RequestType,
		FullName:           strings.TrimSpace(in.FullName),
		Email:              strings.TrimSpace(in.Email),
		Identification:     strings.TrimSpace(in.Identification),
		PrivacyConsent:     true,
		PrivacyConsentDate: time.Now(),
		Status:             models.RequestStatusPending,
		TrackingNumber:     tracking,
	}
	if phone := strings.TrimSpace(in.Phone); phone != "" {
		request.Phone = &phone
	}
	if details := strings.TrimSpace(in.Details); details != "" {
		request.Details = &details
	}

	if err := s.DB.Create(&request).Error; err != nil {
		return nil, err
	}

	s.sendRequesterConfirmation(&request)
	s.sendStaffAlert(&request)

	return &request, nil
}

// uniqueTrackingNumber generates a candidate and regenerates on collision.
func (s *RightsRequestService) uniqueTrackingNumber() (string, error) {
	for i := 0; i < trackingNumberAttempts; i++ {
		candidate, err := models.NewTrackingNumber()
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.DB.Model(&models.DataSubjectRightsRequest{}).
			Where("tracking_number = ?", candidate).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
	}
	return "", errors.New("could not generate a unique tracking number")
}

// RightsRequestFilter narrows the console listing.
type RightsRequestFilter struct {
	RequestType string
	Status      string
	Search      string
}

// List returns requests newest first.
func (s *RightsRequestService) List(f RightsRequestFilter) ([]models.DataSubjectRightsRequest, error) {
	q := s.DB.Model(&models.DataSubjectRightsRequest{}).Order("created_at DESC")
	if f.RequestType != "" {
		q = q.Where("request_type = ?", f.RequestType)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(tracking_number) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern)
	}

	var requests []models.DataSubjectRightsRequest
	err := q.Find(&requests).Error
	return requests, err
}

// UpdateStatus applies a staff status transition, rejecting moves the
// lifecycle does not allow.
func (s *RightsRequestService) UpdateStatus(id uint, next string) (*models.DataSubjectRightsRequest, error) {
	var request models.DataSubjectRightsRequest
	if err := s.DB.First(&request, id).Error; err != nil {
		return nil, err
	}

	if !transitionAllowed(request.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.DB.Model(&request).Update("status", next).Error; err != nil {
		return nil, err
	}
	request.Status = next
	return &request, nil
}

func transitionAllowed(current, next string) bool {
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func (s *RightsRequestService) sendRequesterConfirmation(r *models.DataSubjectRightsRequest) {
	subject := fmt.Sprintf("GDPR request received - %s", r.TrackingNumber)
	body := fmt.Sprintf(`Dear %s,

We confirm receipt of your request concerning your rights under the GDPR.

Reference number: %s
Request type: %s
Submitted: %s

In accordance with the GDPR we will respond within 30 days of receiving
your request.

If you have any questions, please contact us by email or phone.

Kind regards,
%s
`,
		r.FullName,
		r.TrackingNumber,
		models.RequestTypeLabel(r.RequestType),
		r.CreatedAt.Format("02.01.2006 15:04"),
		s.Cfg.SiteName,
	)

	s.Mailer.SendQuietly(subject, body, []string{r.Email})
}

func (s *RightsRequestService) sendStaffAlert(r *models.DataSubjectRightsRequest) {
	phone := "Not provided"
	if r.Phone != nil {
		phone = *r.Phone
	}

	subject := fmt.Sprintf("New GDPR request - %s", r.TrackingNumber)
	body := fmt.Sprintf(`A new GDPR rights request has been received:

Number: %s
Type: %s
Name: %s
Email: %s
Phone: %s

Details in the staff console.
`,
		r.TrackingNumber,
		models.RequestTypeLabel(r.RequestType),
		r.FullName,
		r.Email,
		phone,
	)

	s.Mailer.SendQuietly(subject, body, s.Cfg.AdminEmails)
}
