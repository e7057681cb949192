package service

import (
	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type OffreService interface {
	Create(req dto.OffreRequest) (*dto.OffreResponseDTO, error)
	GetByID(id uint) (*dto.OffreResponseDTO, error)
	GetAll() ([]dto.OffreResponseDTO, error)
	Update(id uint, req dto.OffreRequest) (*dto.OffreResponseDTO, error)
	Delete(id uint) error
}

type offreService struct {
	offreRepo repository.OffreRepository
}

func NewOffreService(offreRepo repository.OffreRepository) OffreService {
	return &offreService{offreRepo: offreRepo}
}

func (s *offreService) Create(req dto.OffreRequest) (*dto.OffreResponseDTO, error) {
	offre := model.Offre{Title: req.Title, Description: req.Description}
	if err := s.offreRepo.Create(&offre); err != nil {
		log.Error().Err(err).Msg("Failed to create offre")
		return nil, err
	}
	return offreToDTO(&offre), nil
}

func (s *offreService) GetByID(id uint) (*dto.OffreResponseDTO, error) {
	offre, err := s.offreRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return offreToDTO(offre), nil
}

func (s *offreService) GetAll() ([]dto.OffreResponseDTO, error) {
	offres, err := s.offreRepo.FindAll()
	if err != nil {
		return nil, err
	}
	dtos := make([]dto.OffreResponseDTO, 0, len(offres))
	for i := range offres {
		dtos = append(dtos, *offreToDTO(&offres[i]))
	}
	return dtos, nil
}

func (s *offreService) Update(id uint, req dto.OffreRequest) (*dto.OffreResponseDTO, error) {
	offre, err := s.offreRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	offre.Title = req.Title
	offre.Description = req.Description
	if err := s.offreRepo.Update(offre); err != nil {
		log.Error().Err(err).Uint("offre_id", id).Msg("Failed to update offre")
		return nil, err
	}
	return offreToDTO(offre), nil
}

func (s *offreService) Delete(id uint) error {
	if _, err := s.offreRepo.FindByID(id); err != nil {
		return err
	}
	return s.offreRepo.Delete(id)
}

func offreToDTO(offre *model.Offre) *dto.OffreResponseDTO {
	var resp dto.OffreResponseDTO
	copier.Copy(&resp, offre)
	return &resp
}
