package model

import (
	"time"

	"gorm.io/gorm"
)

// Formation is an onboarding course owned by a pole. Deleting one cascades
// to its steps, their documents, its quiz and all enrollment state; the
// cascade is driven explicitly by the repository inside a transaction.
type Formation struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Title       string         `json:"title" gorm:"not null"`
	Description *string        `json:"description,omitempty" gorm:"type:text"`
	Pole        string         `json:"pole" gorm:"not null;index"`
	Steps       []Step         `json:"steps,omitempty" gorm:"foreignKey:FormationID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Step is one ordered unit of a formation. OrderIndex is unique within
// the formation; the two requirement flags gate step completion.
type Step struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	FormationID  uint           `json:"formation_id" gorm:"not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  *string        `json:"description,omitempty" gorm:"type:text"`
	VideoURL     *string        `json:"video_url,omitempty"`
	OrderIndex   int            `json:"order_index" gorm:"not null"`
	RequiresFile bool           `json:"requires_file" gorm:"not null;default:false"`
	RequiresText bool           `json:"requires_text" gorm:"not null;default:false"`
	Documents    []StepDocument `json:"documents,omitempty" gorm:"foreignKey:StepID"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// StepDocument is a downloadable reference file attached by the author,
// not submitted by the learner.
type StepDocument struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StepID      uint      `json:"step_id" gorm:"not null;index"`
	FileName    string    `json:"file_name" gorm:"not null"`
	StoragePath string    `json:"storage_path" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
