package model

import (
	"time"

	"gorm.io/gorm"
)

// MailGeneration is the immutable record of one saved generation.
// PromptFinal keeps a rendered description of the inputs for audit; the
// row is never updated after creation.
type MailGeneration struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	GeneratedBy *uint          `json:"generated_by,omitempty" gorm:"index"`
	TemplateID  *uint          `json:"template_id,omitempty" gorm:"index"`
	Template    *MailTemplate  `json:"template,omitempty" gorm:"foreignKey:TemplateID"`
	ContactID   *uint          `json:"contact_id,omitempty" gorm:"index"`
	Contact     *Contact       `json:"contact,omitempty" gorm:"foreignKey:ContactID"`
	ContentType string         `json:"content_type" gorm:"not null;default:'mail_client'"`
	PromptFinal string         `json:"prompt_final" gorm:"type:text"`
	Result      string         `json:"result" gorm:"type:text;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
