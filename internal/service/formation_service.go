package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/capisen/backoffice/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// downloadTTL bounds how long a signed document or submission link stays
// redeemable.
const downloadTTL = 15 * time.Minute

type FormationService interface {
	Create(req dto.FormationRequest) (*dto.FormationResponseDTO, error)
	GetByID(id uint) (*dto.FormationResponseDTO, error)
	GetAll(pole *string) ([]dto.FormationSummaryDTO, error)
	Update(id uint, req dto.FormationRequest) (*dto.FormationResponseDTO, error)
	Delete(id uint) error
	AddStepDocument(stepID uint, fileName string, r io.Reader) (*dto.StepDocumentDTO, error)
}

type formationService struct {
	formationRepo repository.FormationRepository
	quizRepo      repository.QuizRepository
	store         storage.Store
}

func NewFormationService(formationRepo repository.FormationRepository, quizRepo repository.QuizRepository, store storage.Store) FormationService {
	return &formationService{formationRepo: formationRepo, quizRepo: quizRepo, store: store}
}

func (s *formationService) Create(req dto.FormationRequest) (*dto.FormationResponseDTO, error) {
	formation := model.Formation{
		Title:       req.Title,
		Description: req.Description,
		Pole:        req.Pole,
		Steps:       stepsFromDefinitions(req.Steps),
	}
	if err := s.formationRepo.Create(&formation); err != nil {
		log.Error().Err(err).Msg("Failed to create formation")
		return nil, err
	}
	return s.formationToDTO(&formation), nil
}

func (s *formationService) GetByID(id uint) (*dto.FormationResponseDTO, error) {
	formation, err := s.formationRepo.FindByIDWithSteps(id)
	if err != nil {
		return nil, err
	}
	return s.formationToDTO(formation), nil
}

func (s *formationService) GetAll(pole *string) ([]dto.FormationSummaryDTO, error) {
	rows, err := s.formationRepo.FindAllByPole(pole)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.FormationSummaryDTO, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.FormationSummaryDTO{
			ID:          row.ID,
			Title:       row.Title,
			Description: row.Description,
			Pole:        row.Pole,
			StepCount:   row.StepCount,
			CreatedAt:   row.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *formationService) Update(id uint, req dto.FormationRequest) (*dto.FormationResponseDTO, error) {
	formation, err := s.formationRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	formation.Title = req.Title
	formation.Description = req.Description
	formation.Pole = req.Pole

	steps := stepsFromDefinitions(req.Steps)
	if err := s.formationRepo.UpdateWithSteps(formation, steps); err != nil {
		log.Error().Err(err).Uint("formation_id", id).Msg("Failed to update formation")
		return nil, err
	}
	return s.GetByID(id)
}

func (s *formationService) Delete(id uint) error {
	if _, err := s.formationRepo.FindByID(id); err != nil {
		return err
	}
	return s.formationRepo.Delete(id)
}

func (s *formationService) AddStepDocument(stepID uint, fileName string, r io.Reader) (*dto.StepDocumentDTO, error) {
	step, err := s.formationRepo.FindStepByID(stepID)
	if err != nil {
		return nil, err
	}
	safeName := filepath.Base(fileName)
	key := fmt.Sprintf("documents/%d/%s_%s", step.ID, uuid.NewString(), safeName)
	if err := s.store.Save(key, r); err != nil {
		log.Error().Err(err).Uint("step_id", stepID).Msg("Failed to store step document")
		return nil, err
	}
	doc := model.StepDocument{StepID: step.ID, FileName: safeName, StoragePath: key}
	if err := s.formationRepo.CreateDocument(&doc); err != nil {
		return nil, err
	}
	return s.documentToDTO(&doc), nil
}

// stepsFromDefinitions maps authoring DTOs onto models, assigning
// OrderIndex from list position so ordering is always dense.
func stepsFromDefinitions(defs []dto.StepDefinitionDTO) []model.Step {
	steps := make([]model.Step, 0, len(defs))
	for i, def := range defs {
		step := model.Step{
			Title:        def.Title,
			Description:  def.Description,
			VideoURL:     def.VideoURL,
			OrderIndex:   i,
			RequiresFile: def.RequiresFile,
			RequiresText: def.RequiresText,
		}
		if def.ID != nil {
			step.ID = *def.ID
		}
		steps = append(steps, step)
	}
	return steps
}

func (s *formationService) formationToDTO(formation *model.Formation) *dto.FormationResponseDTO {
	resp := dto.FormationResponseDTO{
		ID:          formation.ID,
		Title:       formation.Title,
		Description: formation.Description,
		Pole:        formation.Pole,
		CreatedAt:   formation.CreatedAt,
	}
	for i := range formation.Steps {
		resp.Steps = append(resp.Steps, *s.stepToDTO(&formation.Steps[i]))
	}
	if _, err := s.quizRepo.FindByFormationID(formation.ID); err == nil {
		resp.HasQuiz = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Uint("formation_id", formation.ID).Msg("Failed to look up quiz")
	}
	return &resp
}

func (s *formationService) stepToDTO(step *model.Step) *dto.StepResponseDTO {
	resp := dto.StepResponseDTO{
		ID:           step.ID,
		Title:        step.Title,
		Description:  step.Description,
		VideoURL:     step.VideoURL,
		OrderIndex:   step.OrderIndex,
		RequiresFile: step.RequiresFile,
		RequiresText: step.RequiresText,
	}
	for i := range step.Documents {
		resp.Documents = append(resp.Documents, *s.documentToDTO(&step.Documents[i]))
	}
	return &resp
}

func (s *formationService) documentToDTO(doc *model.StepDocument) *dto.StepDocumentDTO {
	resp := dto.StepDocumentDTO{ID: doc.ID, FileName: doc.FileName}
	url, err := s.store.SignedURL(doc.StoragePath, doc.FileName, downloadTTL)
	if err != nil {
		log.Warn().Err(err).Uint("document_id", doc.ID).Msg("Failed to sign document URL")
	} else {
		resp.URL = url
	}
	return &resp
}
