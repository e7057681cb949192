package dto

import "time"

// Message is one role-tagged turn of a generation transcript.
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ContactSnapshotDTO is the rendered snapshot of a contact as embedded in
// a generation request; transcripts never hold live references.
type ContactSnapshotDTO struct {
	ID       uint    `json:"id,omitempty"`
	FullName string  `json:"full_name" binding:"required"`
	Company  *string `json:"company,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
	Email    *string `json:"email,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type TemplateSnapshotDTO struct {
	ID      uint    `json:"id,omitempty"`
	Title   string  `json:"title" binding:"required"`
	Context *string `json:"context,omitempty"`
}

type OffreSnapshotDTO struct {
	ID          uint    `json:"id,omitempty"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
}

type SenderDTO struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Pole     string `json:"pole"`
}

// GenerateMailRequest covers both bodies accepted by the generation
// endpoint: an initial form (contact/contacts + template + ...) or a
// refinement (messages + refinement). The controller dispatches on the
// presence of messages.
type GenerateMailRequest struct {
	Contact           *ContactSnapshotDTO  `json:"contact,omitempty"`
	Contacts          []ContactSnapshotDTO `json:"contacts,omitempty"`
	ContentType       string               `json:"contentType,omitempty"`
	Template          *TemplateSnapshotDTO `json:"template,omitempty"`
	Offres            []OffreSnapshotDTO   `json:"offres"`
	Context           string               `json:"context"`
	MentionedContacts []ContactSnapshotDTO `json:"mentionedContacts,omitempty"`
	Sender            *SenderDTO           `json:"sender,omitempty"`

	Messages   []Message `json:"messages,omitempty"`
	Refinement string    `json:"refinement,omitempty"`
}

// GenerateMailResponse returns the latest assistant text plus the full
// transcript so the caller can drive further refinement turns.
type GenerateMailResponse struct {
	Mail     string    `json:"mail"`
	Messages []Message `json:"messages"`
}

// SaveGenerationRequest persists one completed generation.
type SaveGenerationRequest struct {
	GeneratedBy *uint  `json:"generated_by,omitempty"`
	TemplateID  *uint  `json:"template_id,omitempty"`
	ContactID   *uint  `json:"contact_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	PromptFinal string `json:"prompt_final,omitempty"`
	Result      string `json:"result" binding:"required"`
}

type GenerationResponseDTO struct {
	ID           uint      `json:"id"`
	GeneratedBy  *uint     `json:"generated_by,omitempty"`
	TemplateID   *uint     `json:"template_id,omitempty"`
	TemplateName string    `json:"template_name,omitempty"`
	ContactID    *uint     `json:"contact_id,omitempty"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContentType  string    `json:"content_type"`
	PromptFinal  string    `json:"prompt_final,omitempty"`
	Result       string    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}
