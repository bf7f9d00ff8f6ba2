package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"clinic-backend/config"
	"clinic-backend/models"
	"clinic-backend/utils"
)

// AppointmentService persists booking leads and sends the two best-effort
// notification emails.
type AppointmentService struct {
	DB     *gorm.DB
	Mailer *utils.Mailer
	Cfg    config.SiteConfig
}

func NewAppointmentService(db *gorm.DB, mailer *utils.Mailer, cfg config.SiteConfig) *AppointmentService {
	return &AppointmentService{DB: db, Mailer: mailer, Cfg: cfg}
}

// AppointmentInput is a validated submission. The controller has already
// rejected honeypot hits and missing data-processing consent, so by the
// time this runs that consent is true by construction.
type AppointmentInput struct {
	Name             string
	Phone            string
	Email            string
	PreferredDate    string
	Message          string
	MarketingConsent bool
}

// Create persists the lead with consent timestamps and fires the customer
// confirmation (when an email was supplied) plus the staff alert. Email
// failures never surface to the caller.
func (s *AppointmentService) Create(in AppointmentInput) (*models.Appointment, error) {
	now := time.Now()

	appointment := models.Appointment{
		Name:          strings.TrimSpace(in.Name),
		Phone:         strings.TrimSpace(in.Phone),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		Message:       strings.TrimSpace(in.Message),

		DataProcessingConsent:     true,
		DataProcessingConsentDate: now,
		MarketingConsent:          in.MarketingConsent,
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		appointment.Email = &email
	}
	if in.MarketingConsent {
		appointment.MarketingConsentDate = &now
	}

	if err := s.DB.Create(&appointment).Error; err != nil {
		return nil, err
	}

	s.sendCustomerConfirmation(&appointment)
	s.sendStaffAlert(&appointment)

	return &appointment, nil
}

// AppointmentFilter narrows the console listing.
type AppointmentFilter struct {
	Search           string
	MarketingConsent *bool
}

// List returns appointments newest first for the staff console.
func (s *AppointmentService) List(f AppointmentFilter) ([]models.Appointment, error) {
	q := s.DB.Model(&models.Appointment{}).Order("created_at DESC")
	if f.MarketingConsent != nil {
		q = q.Where("marketing_consent = ?", *f.MarketingConsent)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", pattern, pattern, pattern)
	}

	var appointments []models.Appointment
	err := q.Find(&appointments).Error
	return appointments, err
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}

func (s *AppointmentService) sendCustomerConfirmation(a *models.Appointment) {
	if a.Email == nil {
		return
	}

	subject := fmt.Sprintf("Appointment request received - %s", s.Cfg.SiteName)
	body := fmt.Sprintf(`Dear %s,

Thank you for requesting an appointment with %s.

Your request:
- Name: %s
- Phone: %s
- Email: %s
- Preferred time: %s
- Message: %s

We will contact you within 24 hours to confirm the exact time of your visit.

Kind regards,
%s
`,
		a.Name, s.Cfg.SiteName,
		a.Name, a.Phone, *a.Email,
		orNotProvided(a.PreferredDate), orNotProvided(a.Message),
		s.Cfg.SiteName,
	)

	s.Mailer.SendQuietly(subject, body, []string{*a.Email})
}

func (s *AppointmentService) sendStaffAlert(a *models.Appointment) {
	email := "Not provided"
	if a.Email != nil {
		email = *a.Email
	}
	yesNo := func(b bool) string {
		if b {
			return "YES"
		}
		return "NO"
	}

	subject := fmt.Sprintf("New appointment request - %s", a.Name)
	body := fmt.Sprintf(`NEW APPOINTMENT REQUEST:

Name: %s
Phone: %s
Email: %s
Preferred time: %s
Submitted: %s

Message:
%s

GDPR consents:
- Data processing: %s
- Marketing: %s

Contact the client within 24 hours.
`,
		a.Name, a.Phone, email,
		orNotProvided(a.PreferredDate),
		a.CreatedAt.Format("02.01.2006 15:04"),
		orNotProvided(a.Message),
		yesNo(a.DataProcessingConsent), yesNo(a.MarketingConsent),
	)

	s.Mailer.SendQuietly(subject, body, s.Cfg.AdminEmails)
}
