package models

import "time"

// UserAgentMaxLength bounds the stored user-agent string.
const UserAgentMaxLength = 500

// CookieConsent is one immutable audit row recording a visitor's analytics
// cookie decision. The application only ever inserts these; there is no
// update or delete path anywhere, including the staff console.
type CookieConsent struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	AnalyticsConsent bool      `json:"analytics_consent"`
	IPAddress        *string   `gorm:"size:45" json:"ip_address,omitempty"`
	SessionKey       string    `gorm:"size:40;index" json:"session_key,omitempty"`
	UserAgent        string    `gorm:"size:500" json:"user_agent,omitempty"`
	ConsentedAt      time.Time `gorm:"autoCreateTime;index" json:"consented_at"`
}
