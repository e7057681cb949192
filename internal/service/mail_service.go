package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

const genericGenerationError = "Erreur lors de la génération du mail."

// MailService owns the transcript lifecycle: one initial generation, zero
// or more refinement turns, optional persistence of the final result.
type MailService interface {
	StartGeneration(ctx context.Context, req dto.GenerateMailRequest) (*dto.GenerateMailResponse, error)
	Refine(ctx context.Context, messages []dto.Message, refinement string) (*dto.GenerateMailResponse, error)
	Persist(req dto.SaveGenerationRequest) (*dto.GenerationResponseDTO, error)
	History(memberID *uint) ([]dto.GenerationResponseDTO, error)
	DeleteGeneration(id uint) error
}

type mailService struct {
	completion     CompletionService
	generationRepo repository.GenerationRepository
}

func NewMailService(completion CompletionService, generationRepo repository.GenerationRepository) MailService {
	return &mailService{completion: completion, generationRepo: generationRepo}
}

// normalizeRecipients collapses the legacy contact/contacts dual shape
// into one recipient list, decided once at the boundary.
func normalizeRecipients(req dto.GenerateMailRequest) []RecipientInfo {
	snapshots := req.Contacts
	if len(snapshots) == 0 && req.Contact != nil {
		snapshots = []dto.ContactSnapshotDTO{*req.Contact}
	}
	recipients := make([]RecipientInfo, 0, len(snapshots))
	for _, c := range snapshots {
		recipients = append(recipients, RecipientInfo{
			FullName: c.FullName,
			Company:  c.Company,
			JobTitle: c.JobTitle,
			Email:    c.Email,
			Notes:    c.Notes,
		})
	}
	return recipients
}

func (s *mailService) StartGeneration(ctx context.Context, req dto.GenerateMailRequest) (*dto.GenerateMailResponse, error) {
	contentType := ParseContentType(req.ContentType)
	recipients := normalizeRecipients(req)

	isPost := contentType == ContentLinkedinPost
	if req.Template == nil || (!isPost && len(recipients) == 0) {
		return nil, NewValidationError("Contact et template sont requis.")
	}

	input := PromptInput{
		ContentType: contentType,
		Recipients:  recipients,
		Template:    TemplateInfo{Title: req.Template.Title, Context: req.Template.Context},
		Context:     req.Context,
	}
	for _, o := range req.Offres {
		input.Offres = append(input.Offres, OffreInfo{Title: o.Title, Description: o.Description})
	}
	for _, m := range req.MentionedContacts {
		input.Mentioned = append(input.Mentioned, RecipientInfo{
			FullName: m.FullName,
			Company:  m.Company,
			JobTitle: m.JobTitle,
			Email:    m.Email,
		})
	}
	if req.Sender != nil {
		input.Sender = &SenderInfo{FullName: req.Sender.FullName, Role: req.Sender.Role, Pole: req.Sender.Pole}
	}

	messages := []dto.Message{{Role: "user", Content: ComposePrompt(input)}}

	result, err := s.completion.Complete(ctx, SystemPrompt, messages)
	if err != nil {
		return nil, asGenerationError(err)
	}

	messages = append(messages, dto.Message{Role: "assistant", Content: result})
	return &dto.GenerateMailResponse{Mail: result, Messages: messages}, nil
}

func (s *mailService) Refine(ctx context.Context, messages []dto.Message, refinement string) (*dto.GenerateMailResponse, error) {
	if strings.TrimSpace(refinement) == "" {
		return nil, NewValidationError("Message de raffinement manquant.")
	}

	// Work on a copy so a failed round trip leaves the caller's
	// transcript untouched.
	updated := make([]dto.Message, len(messages), len(messages)+2)
	copy(updated, messages)
	updated = append(updated, dto.Message{Role: "user", Content: refinement})

	result, err := s.completion.Complete(ctx, SystemPrompt, updated)
	if err != nil {
		return nil, asGenerationError(err)
	}

	updated = append(updated, dto.Message{Role: "assistant", Content: result})
	return &dto.GenerateMailResponse{Mail: result, Messages: updated}, nil
}

// asGenerationError surfaces the upstream message when the completion
// API reported one and collapses transport failures into the generic
// fallback. Never retried.
func asGenerationError(err error) error {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return &GenerationError{Message: upstream.Message, Err: err}
	}
	log.Error().Err(err).Msg("Generation failed")
	return &GenerationError{Message: genericGenerationError, Err: err}
}

func (s *mailService) Persist(req dto.SaveGenerationRequest) (*dto.GenerationResponseDTO, error) {
	generation := model.MailGeneration{
		GeneratedBy: req.GeneratedBy,
		TemplateID:  req.TemplateID,
		ContactID:   req.ContactID,
		ContentType: ParseContentType(req.ContentType).String(),
		PromptFinal: req.PromptFinal,
		Result:      req.Result,
	}
	if err := s.generationRepo.Create(&generation); err != nil {
		log.Error().Err(err).Msg("Failed to persist generation")
		return nil, fmt.Errorf("database error saving generation: %w", err)
	}
	return generationToDTO(&generation), nil
}

func (s *mailService) History(memberID *uint) ([]dto.GenerationResponseDTO, error) {
	generations, err := s.generationRepo.FindAllByMember(memberID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch generation history")
		return nil, fmt.Errorf("error fetching generation history: %w", err)
	}
	dtos := make([]dto.GenerationResponseDTO, 0, len(generations))
	for i := range generations {
		dtos = append(dtos, *generationToDTO(&generations[i]))
	}
	return dtos, nil
}

func (s *mailService) DeleteGeneration(id uint) error {
	return s.generationRepo.Delete(id)
}

func generationToDTO(generation *model.MailGeneration) *dto.GenerationResponseDTO {
	var resp dto.GenerationResponseDTO
	copier.Copy(&resp, generation)
	if generation.Template != nil {
		resp.TemplateName = generation.Template.Title
	}
	if generation.Contact != nil {
		resp.ContactName = generation.Contact.FullName
	}
	return &resp
}
