package dto

import "time"

// --- Formations (authoring) ---

// StepDefinitionDTO describes one step when creating or editing a
// formation. A nil ID means a new step; existing IDs are updated in
// place and steps absent from the list are removed.
type StepDefinitionDTO struct {
	ID           *uint   `json:"id,omitempty"`
	Title        string  `json:"title" binding:"required"`
	Description  *string `json:"description,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
	RequiresFile bool    `json:"requires_file"`
	RequiresText bool    `json:"requires_text"`
}

type FormationRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description *string             `json:"description,omitempty"`
	Pole        string              `json:"pole" binding:"required"`
	Steps       []StepDefinitionDTO `json:"steps" binding:"dive"`
}

type StepDocumentDTO struct {
	ID       uint   `json:"id"`
	FileName string `json:"file_name"`
	// URL is a time-limited signed download link, present on detail reads.
	URL string `json:"url,omitempty"`
}

type StepResponseDTO struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  *string           `json:"description,omitempty"`
	VideoURL     *string           `json:"video_url,omitempty"`
	OrderIndex   int               `json:"order_index"`
	RequiresFile bool              `json:"requires_file"`
	RequiresText bool              `json:"requires_text"`
	Documents    []StepDocumentDTO `json:"documents,omitempty"`
}

type FormationResponseDTO struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Pole        string            `json:"pole"`
	Steps       []StepResponseDTO `json:"steps,omitempty"`
	HasQuiz     bool              `json:"has_quiz"`
	CreatedAt   time.Time         `json:"created_at"`
}

type FormationSummaryDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Pole        string    `json:"pole"`
	StepCount   int       `json:"step_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Progress (learner view) ---

// Step access states derived per (enrollment, step) pair.
const (
	StepStateLocked    = "locked"
	StepStateUnlocked  = "unlocked"
	StepStateCompleted = "completed"
)

type SubmissionDTO struct {
	ID        uint      `json:"id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type StepProgressDTO struct {
	Step        StepResponseDTO `json:"step"`
	State       string          `json:"state"` // locked | unlocked | completed
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	TextAnswer  *string         `json:"text_answer,omitempty"`
	Submissions []SubmissionDTO `json:"submissions,omitempty"`
}

type FormationProgressDTO struct {
	FormationID       uint              `json:"formation_id"`
	Enrolled          bool              `json:"enrolled"`
	EnrollmentID      *uint             `json:"enrollment_id,omitempty"`
	Steps             []StepProgressDTO `json:"steps"`
	CompletedCount    int               `json:"completed_count"`
	TotalSteps        int               `json:"total_steps"`
	FormationComplete bool              `json:"formation_complete"`
	QuizAvailable     bool              `json:"quiz_available"`
	QuizAttempted     bool              `json:"quiz_attempted"`
}

type EnrollmentResponseDTO struct {
	ID          uint      `json:"id"`
	FormationID uint      `json:"formation_id"`
	MemberID    uint      `json:"member_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CompleteStepRequest struct {
	MemberID   uint    `json:"member_id" binding:"required"`
	TextAnswer *string `json:"text_answer,omitempty"`
}
