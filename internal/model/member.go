package model

import (
	"time"

	"gorm.io/gorm"
)

// Member roles and poles mirror the closed enumerations used across the
// back office. Labels for display live in the prompt composer.
const (
	RoleNormal      = "normal"
	RoleResponsable = "responsable"
	RolePresidence  = "presidence"
)

type Member struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	FullName  string         `json:"full_name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Role      string         `json:"role" gorm:"not null;default:'normal'"` // "normal", "responsable", "presidence"
	Pole      string         `json:"pole" gorm:"not null"`                  // "secretariat", "tresorerie", ...
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
