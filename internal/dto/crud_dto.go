package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// --- Members ---

type MemberRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role,omitempty" binding:"omitempty,oneof=normal responsable presidence"`
	Pole     string `json:"pole" binding:"required"`
}

type MemberResponseDTO struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Pole      string    `json:"pole"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Contacts ---

type ContactRequest struct {
	FullName string  `json:"full_name" binding:"required"`
	Company  *string `json:"company,omitempty"`
	JobTitle *string `json:"job_title,omitempty"`
	Email    *string `json:"email,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

type ContactResponseDTO struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"full_name"`
	Company   *string   `json:"company,omitempty"`
	JobTitle  *string   `json:"job_title,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Templates ---

type TemplateRequest struct {
	Title               string  `json:"title" binding:"required"`
	ContentType         string  `json:"content_type,omitempty"`
	Context             *string `json:"context,omitempty"`
	MentionedContactIDs []uint  `json:"mentioned_contact_ids,omitempty"`
}

type TemplateResponseDTO struct {
	ID                uint                 `json:"id"`
	Title             string               `json:"title"`
	ContentType       string               `json:"content_type"`
	Context           *string              `json:"context,omitempty"`
	MentionedContacts []ContactResponseDTO `json:"mentioned_contacts,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

// --- Offres ---

type OffreRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
}

type OffreResponseDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
