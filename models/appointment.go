package models

import "time"

// Appointment is a booking lead captured by the public form. Rows are
// insert-only: the application never updates or deletes them.
type Appointment struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:120" json:"name"`
	Email         *string   `gorm:"size:254" json:"email,omitempty"`
	Phone         string    `gorm:"size:30" json:"phone"`
	PreferredDate string    `gorm:"size:100" json:"preferred_date,omitempty"`
	Message       string    `gorm:"type:text" json:"message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`

	DataProcessingConsent     bool       `json:"data_processing_consent"`
	DataProcessingConsentDate time.Time  `json:"data_processing_consent_date"`
	MarketingConsent          bool       `json:"marketing_consent"`
	MarketingConsentDate      *time.Time `json:"marketing_consent_date,omitempty"`
}
