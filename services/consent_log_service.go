package services

import (
	"gorm.io/gorm"

	"clinic-backend/models"
	"clinic-backend/utils"
)

// ConsentLogService records cookie-consent decisions. The audit trail is
// append-only at this boundary: the service exposes no update or delete,
// so neither the public endpoint nor the staff console can mutate a row.
type ConsentLogService struct {
	DB *gorm.DB
}

func NewConsentLogService(db *gorm.DB) *ConsentLogService {
	return &ConsentLogService{DB: db}
}

// ConsentRecord is one decision as derived from the request context.
type ConsentRecord struct {
	Analytics  bool
	IPAddress  string
	SessionKey string
	UserAgent  string
}

// Record inserts one audit row. Repeated calls insert repeated rows; there
// is deliberately no dedup or upsert.
func (s *ConsentLogService) Record(rec ConsentRecord) (*models.CookieConsent, error) {
	consent := models.CookieConsent{
		AnalyticsConsent: rec.Analytics,
		SessionKey:       rec.SessionKey,
		UserAgent:        utils.TruncateRunes(rec.UserAgent, models.UserAgentMaxLength),
	}
	if rec.IPAddress != "" {
		ip := rec.IPAddress
		consent.IPAddress = &ip
	}

	if err := s.DB.Create(&consent).Error; err != nil {
		return nil, err
	}
	return &consent, nil
}

// ConsentLogFilter narrows the console listing.
type ConsentLogFilter struct {
	Analytics *bool
	Search    string
}

// List returns audit rows newest first.
func (s *ConsentLogService) List(f ConsentLogFilter) ([]models.CookieConsent, error) {
	q := s.DB.Model(&models.CookieConsent{}).Order("consented_at DESC")
	if f.Analytics != nil {
		q = q.Where("analytics_consent = ?", *f.Analytics)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("ip_address LIKE ? OR session_key LIKE ?", pattern, pattern)
	}

	var consents []models.CookieConsent
	err := q.Find(&consents).Error
	return consents, err
}
