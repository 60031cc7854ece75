package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "courseapi/internal/errors"
)

// User represents a registered account that can own courses.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"firstName" gorm:"size:255;not null"`
	LastName     string    `json:"lastName" gorm:"size:255;not null"`
	EmailAddress string    `json:"emailAddress" gorm:"uniqueIndex;size:255;not null"`
	Password     string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	// Relations
	Courses []Course `json:"courses,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate rejects rows that would violate the required columns.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	var msgs []string
	if strings.TrimSpace(u.FirstName) == "" {
		msgs = append(msgs, `Please provide a value for "firstName"`)
	}
	if strings.TrimSpace(u.LastName) == "" {
		msgs = append(msgs, `Please provide a value for "lastName"`)
	}
	if strings.TrimSpace(u.EmailAddress) == "" {
		msgs = append(msgs, `Please provide a value for "emailAddress"`)
	}
	if u.Password == "" {
		msgs = append(msgs, `Please provide a value for "password"`)
	}
	return apperrors.NewValidationError(msgs)
}
