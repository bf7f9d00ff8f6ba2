package models

import "time"

// StaffMember is a team profile shown on the about page.
type StaffMember struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	FirstName      string `gorm:"size:100" json:"first_name"`
	LastName       string `gorm:"size:100" json:"last_name"`
	Title          string `gorm:"size:200" json:"title"`
	Specialization string `gorm:"size:300" json:"specialization"`

	Bio             string `gorm:"type:text" json:"bio"`
	Education       string `gorm:"type:text" json:"education,omitempty"`
	ExperienceYears uint   `gorm:"default:0" json:"experience_years"`

	Email *string `gorm:"size:254" json:"email,omitempty"`
	Phone *string `gorm:"size:20" json:"phone,omitempty"`
	Photo *string `gorm:"size:500" json:"photo,omitempty"`

	IsActive     bool `gorm:"default:true;index" json:"is_active"`
	DisplayOrder uint `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m StaffMember) FullName() string {
	return m.FirstName + " " + m.LastName
}
