package models

import (
	"time"

	"gorm.io/gorm"

	"clinic-backend/utils"
)

// Tracking numbers look like DSR7K2M9QPX: the fixed prefix plus eight
// characters from the A-Z0-9 alphabet.
const (
	TrackingNumberPrefix = "DSR"
	trackingCodeLength   = 8
)

// NewTrackingNumber generates one candidate tracking number. Callers that
// need a guaranteed-unique value must check the store and regenerate on
// conflict.
func NewTrackingNumber() (string, error) {
	code, err := utils.RandomCode(trackingCodeLength)
	if err != nil {
		return "", err
	}
	return TrackingNumberPrefix + code, nil
}

// Request kinds a data subject can exercise.
const (
	RequestTypeAccess        = "access"
	RequestTypeRectification = "rectification"
	RequestTypeErasure       = "erasure"
	RequestTypePortability   = "portability"
	RequestTypeRestriction   = "restriction"
	RequestTypeObjection     = "objection"
)

// Lifecycle statuses for a rights request. Transitions are made by staff
// through the console, never by the public intake.
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusRejected   = "rejected"
)

var requestTypeLabels = map[string]string{
	RequestTypeAccess:        "Access to personal data",
	RequestTypeRectification: "Rectification of personal data",
	RequestTypeErasure:       "Erasure of personal data",
	RequestTypePortability:   "Data portability",
	RequestTypeRestriction:   "Restriction of processing",
	RequestTypeObjection:     "Objection to processing",
}

// RequestTypeLabel returns the human-readable name for a request kind,
// falling back to the raw value for unknown kinds.
func RequestTypeLabel(requestType string) string {
	if label, ok := requestTypeLabels[requestType]; ok {
		return label
	}
	return requestType
}

// IsValidRequestType reports whether the given kind is one of the six
// supported data-subject rights.
func IsValidRequestType(requestType string) bool {
	_, ok := requestTypeLabels[requestType]
	return ok
}

// DataSubjectRightsRequest is one GDPR exercise-of-rights case.
type DataSubjectRightsRequest struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RequestType    string    `gorm:"size:20;index" json:"request_type"`
	FullName       string    `gorm:"size:120" json:"full_name"`
	Email          string    `gorm:"size:254" json:"email"`
	Phone          *string   `gorm:"size:30" json:"phone,omitempty"`
	Identification string    `gorm:"type:text" json:"identification"`
	Details        *string   `gorm:"type:text" json:"details,omitempty"`

	PrivacyConsent     bool      `json:"privacy_consent"`
	PrivacyConsentDate time.Time `json:"privacy_consent_date"`

	Status         string    `gorm:"size:20;default:pending;index" json:"status"`
	TrackingNumber string    `gorm:"uniqueIndex;size:20" json:"tracking_number"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BeforeCreate assigns a tracking number when none was set. The service
// layer normally assigns one through a collision-checked loop; this hook is
// the backstop so a request can never be persisted without one.
func (r *DataSubjectRightsRequest) BeforeCreate(tx *gorm.DB) error {
	if r.TrackingNumber == "" {
		code, err := NewTrackingNumber()
		if err != nil {
			return err
		}
		r.TrackingNumber = code
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	return nil
}
