package dto

import "time"

// --- Quiz authoring ---

type QuizChoiceDefinitionDTO struct {
	Label     string `json:"label" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestionDefinitionDTO struct {
	Prompt  string                    `json:"prompt" binding:"required"`
	Choices []QuizChoiceDefinitionDTO `json:"choices" binding:"required,min=2,max=4,dive"`
}

// QuizDefinitionDTO replaces the whole quiz of a formation in one save.
type QuizDefinitionDTO struct {
	Questions []QuizQuestionDefinitionDTO `json:"questions" binding:"required,min=1,dive"`
}

// --- Quiz taking ---

type QuizChoiceDTO struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type QuizQuestionDTO struct {
	ID      uint            `json:"id"`
	Prompt  string          `json:"prompt"`
	Choices []QuizChoiceDTO `json:"choices"`
}

type QuizDTO struct {
	ID            uint              `json:"id"`
	FormationID   uint              `json:"formation_id"`
	Questions     []QuizQuestionDTO `json:"questions"`
	Eligible      bool              `json:"eligible"`
	AlreadyTaken  bool              `json:"already_taken"`
	QuestionCount int               `json:"question_count"`
}

type QuizAnswerSubmissionDTO struct {
	QuestionID uint `json:"question_id" binding:"required"`
	ChoiceID   uint `json:"choice_id" binding:"required"`
}

type SubmitQuizRequest struct {
	MemberID uint                      `json:"member_id" binding:"required"`
	Answers  []QuizAnswerSubmissionDTO `json:"answers"`
}

// --- Attempt review ---

type QuizAnswerReviewDTO struct {
	QuestionID      uint   `json:"question_id"`
	Prompt          string `json:"prompt"`
	ChosenChoiceID  uint   `json:"chosen_choice_id"`
	ChosenLabel     string `json:"chosen_label"`
	CorrectChoiceID uint   `json:"correct_choice_id"`
	CorrectLabel    string `json:"correct_label"`
	Correct         bool   `json:"correct"`
}

type QuizAttemptDTO struct {
	ID           uint                  `json:"id"`
	QuizID       uint                  `json:"quiz_id"`
	EnrollmentID uint                  `json:"enrollment_id"`
	Score        int                   `json:"score"`
	Total        int                   `json:"total"`
	Answers      []QuizAnswerReviewDTO `json:"answers,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}
