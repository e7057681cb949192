package model

import (
	"time"
)

// Quiz is the optional terminal check of a formation, at most one each.
type Quiz struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	FormationID uint           `json:"formation_id" gorm:"not null;uniqueIndex"`
	Questions   []QuizQuestion `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type QuizQuestion struct {
	ID         uint         `gorm:"primarykey" json:"id"`
	QuizID     uint         `json:"quiz_id" gorm:"not null;index"`
	Prompt     string       `json:"prompt" gorm:"type:text;not null"`
	OrderIndex int          `json:"order_index" gorm:"not null"`
	Choices    []QuizChoice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
	CreatedAt  time.Time    `json:"created_at"`
}

// QuizChoice: 2 to 4 per question, exactly one with IsCorrect set.
type QuizChoice struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Label      string    `json:"label" gorm:"not null"`
	OrderIndex int       `json:"order_index" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// QuizAttempt is immutable once created; at most one per (quiz, enrollment).
type QuizAttempt struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	QuizID       uint         `json:"quiz_id" gorm:"not null;uniqueIndex:idx_attempt_enrollment"`
	EnrollmentID uint         `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_attempt_enrollment"`
	Score        int          `json:"score" gorm:"not null"`
	Total        int          `json:"total" gorm:"not null"`
	Answers      []QuizAnswer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
	CreatedAt    time.Time    `json:"created_at"`
}

// QuizAnswer snapshots the (question, chosen choice) pair at attempt time.
type QuizAnswer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;index"`
	QuestionID uint      `json:"question_id" gorm:"not null"`
	ChoiceID   uint      `json:"choice_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}
