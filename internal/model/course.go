package model

import (
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "courseapi/internal/errors"
)

// Course represents a course owned by exactly one user.
type Course struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"size:255;not null"`
	Description     string    `json:"description" gorm:"type:text;not null"`
	EstimatedTime   string    `json:"estimatedTime,omitempty" gorm:"size:255"`
	MaterialsNeeded string    `json:"materialsNeeded,omitempty" gorm:"type:text"`
	UserID          uint      `json:"userId" gorm:"not null;index"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`

	// Relations
	User User `json:"user" gorm:"foreignKey:UserID"`
}

// BeforeCreate rejects rows that would violate the required columns.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	var msgs []string
	if strings.TrimSpace(c.Title) == "" {
		msgs = append(msgs, `Please provide a value for "title"`)
	}
	if strings.TrimSpace(c.Description) == "" {
		msgs = append(msgs, `Please provide a value for "description"`)
	}
	if c.UserID == 0 {
		msgs = append(msgs, `Please provide a value for "userId"`)
	}
	return apperrors.NewValidationError(msgs)
}

// CourseChanges is a partial update. Nil fields are left untouched.
type CourseChanges struct {
	Title           *string
	Description     *string
	EstimatedTime   *string
	MaterialsNeeded *string
}

// IsEmpty reports whether no field was supplied.
func (c CourseChanges) IsEmpty() bool {
	return len(c.Columns()) == 0
}

// Columns returns the supplied fields keyed by column name.
func (c CourseChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.EstimatedTime != nil {
		cols["estimated_time"] = *c.EstimatedTime
	}
	if c.MaterialsNeeded != nil {
		cols["materials_needed"] = *c.MaterialsNeeded
	}
	return cols
}
