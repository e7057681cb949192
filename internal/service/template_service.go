package service

import (
	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type TemplateService interface {
	Create(req dto.TemplateRequest) (*dto.TemplateResponseDTO, error)
	GetByID(id uint) (*dto.TemplateResponseDTO, error)
	GetAll() ([]dto.TemplateResponseDTO, error)
	Update(id uint, req dto.TemplateRequest) (*dto.TemplateResponseDTO, error)
	Delete(id uint) error
}

type templateService struct {
	templateRepo repository.TemplateRepository
	contactRepo  repository.ContactRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository, contactRepo repository.ContactRepository) TemplateService {
	return &templateService{templateRepo: templateRepo, contactRepo: contactRepo}
}

func (s *templateService) Create(req dto.TemplateRequest) (*dto.TemplateResponseDTO, error) {
	mentioned, err := s.contactRepo.FindByIDs(req.MentionedContactIDs)
	if err != nil {
		return nil, err
	}
	template := model.MailTemplate{
		Title:             req.Title,
		ContentType:       ParseContentType(req.ContentType).String(),
		Context:           req.Context,
		MentionedContacts: mentioned,
	}
	if err := s.templateRepo.Create(&template); err != nil {
		log.Error().Err(err).Msg("Failed to create template")
		return nil, err
	}
	return templateToDTO(&template), nil
}

func (s *templateService) GetByID(id uint) (*dto.TemplateResponseDTO, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return templateToDTO(template), nil
}

func (s *templateService) GetAll() ([]dto.TemplateResponseDTO, error) {
	templates, err := s.templateRepo.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.TemplateResponseDTO, 0, len(templates))
	for i := range templates {
		dtos = append(dtos, *templateToDTO(&templates[i]))
	}
	return dtos, nil
}

func (s *templateService) Update(id uint, req dto.TemplateRequest) (*dto.TemplateResponseDTO, error) {
	template, err := s.templateRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	template.Title = req.Title
	template.ContentType = ParseContentType(req.ContentType).String()
	template.Context = req.Context
	if err := s.templateRepo.Update(template); err != nil {
		log.Error().Err(err).Uint("template_id", id).Msg("Failed to update template")
		return nil, err
	}
	mentioned, err := s.contactRepo.FindByIDs(req.MentionedContactIDs)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.ReplaceMentionedContacts(template, mentioned); err != nil {
		log.Error().Err(err).Uint("template_id", id).Msg("Failed to replace mentioned contacts")
		return nil, err
	}
	template.MentionedContacts = mentioned
	return templateToDTO(template), nil
}

func (s *templateService) Delete(id uint) error {
	if _, err := s.templateRepo.FindByID(id); err != nil {
		return err
	}
	return s.templateRepo.Delete(id)
}

func templateToDTO(template *model.MailTemplate) *dto.TemplateResponseDTO {
	var resp dto.TemplateResponseDTO
	copier.Copy(&resp, template)
	return &resp
}
