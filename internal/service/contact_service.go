package service

import (
	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type ContactService interface {
	Create(req dto.ContactRequest) (*dto.ContactResponseDTO, error)
	GetByID(id uint) (*dto.ContactResponseDTO, error)
	GetAll() ([]dto.ContactResponseDTO, error)
	Update(id uint, req dto.ContactRequest) (*dto.ContactResponseDTO, error)
	Delete(id uint) error
}

type contactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

func (s *contactService) Create(req dto.ContactRequest) (*dto.ContactResponseDTO, error) {
	contact := model.Contact{
		FullName: req.FullName,
		Company:  req.Company,
		JobTitle: req.JobTitle,
		Email:    req.Email,
		Notes:    req.Notes,
	}
	if err := s.contactRepo.Create(&contact); err != nil {
		log.Error().Err(err).Msg("Failed to create contact")
		return nil, err
	}
	return contactToDTO(&contact), nil
}

func (s *contactService) GetByID(id uint) (*dto.ContactResponseDTO, error) {
	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return contactToDTO(contact), nil
}

func (s *contactService) GetAll() ([]dto.ContactResponseDTO, error) {
	contacts, err := s.contactRepo.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.ContactResponseDTO, 0, len(contacts))
	for i := range contacts {
		dtos = append(dtos, *contactToDTO(&contacts[i]))
	}
	return dtos, nil
}

func (s *contactService) Update(id uint, req dto.ContactRequest) (*dto.ContactResponseDTO, error) {
	contact, err := s.contactRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	contact.FullName = req.FullName
	contact.Company = req.Company
	contact.JobTitle = req.JobTitle
	contact.Email = req.Email
	contact.Notes = req.Notes
	if err := s.contactRepo.Update(contact); err != nil {
		log.Error().Err(err).Uint("contact_id", id).Msg("Failed to update contact")
		return nil, err
	}
	return contactToDTO(contact), nil
}

func (s *contactService) Delete(id uint) error {
	if _, err := s.contactRepo.FindByID(id); err != nil {
		return err
	}
	return s.contactRepo.Delete(id)
}

func contactToDTO(contact *model.Contact) *dto.ContactResponseDTO {
	var resp dto.ContactResponseDTO
	copier.Copy(&resp, contact)
	return &resp
}
