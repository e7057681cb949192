package model

import (
	"time"
)

// Enrollment binds one member to one formation, at most once per pair.
// It anchors all progress, submission and quiz-attempt rows.
type Enrollment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	FormationID uint      `json:"formation_id" gorm:"not null;uniqueIndex:idx_enrollment_member"`
	MemberID    uint      `json:"member_id" gorm:"not null;uniqueIndex:idx_enrollment_member"`
	CreatedAt   time.Time `json:"created_at"`
}

// StepProgress is the per (enrollment, step) completion record. Created on
// first completion, updated in place afterwards, never deleted while the
// enrollment exists.
type StepProgress struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	EnrollmentID uint       `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_progress_step"`
	StepID       uint       `json:"step_id" gorm:"not null;uniqueIndex:idx_progress_step"`
	Completed    bool       `json:"completed" gorm:"not null;default:false"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	TextAnswer   *string    `json:"text_answer,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StepSubmission is one uploaded evidence file. Rows accumulate; none are
// ever replaced or removed by the learner.
type StepSubmission struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;index"`
	StepID       uint      `json:"step_id" gorm:"not null;index"`
	FileName     string    `json:"file_name" gorm:"not null"`
	StoragePath  string    `json:"storage_path" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
