package model

import (
	"time"

	"gorm.io/gorm"
)

// MailTemplate is a reusable generation preset. Contacts linked here are
// auto-mentioned when the template is picked in the composer.
type MailTemplate struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	Title             string         `json:"title" gorm:"not null"`
	ContentType       string         `json:"content_type" gorm:"not null;default:'mail_client'"`
	Context           *string        `json:"context,omitempty" gorm:"type:text"`
	MentionedContacts []Contact      `json:"mentioned_contacts,omitempty" gorm:"many2many:template_mentioned_contacts"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}
