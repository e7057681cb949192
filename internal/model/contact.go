package model

import (
	"time"

	"gorm.io/gorm"
)

// Contact is a third party addressed or mentioned by generated content.
type Contact struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FullName  string         `json:"full_name" gorm:"not null"`
	Company   *string        `json:"company,omitempty"`
	JobTitle  *string        `json:"job_title,omitempty"`
	Email     *string        `json:"email,omitempty"`
	Notes     *string        `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
