package models

import "time"

// StaffAccount is a console login. Password holds the bcrypt hash and is
// never serialized.
type StaffAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Username  string    `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string    `gorm:"size:255" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
