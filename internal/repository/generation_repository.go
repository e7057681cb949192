package repository

import (
	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type GenerationRepository interface {
	Create(generation *model.MailGeneration) error
	FindByID(id uint) (*model.MailGeneration, error)
	FindAllByMember(memberID *uint) ([]model.MailGeneration, error)
	Delete(id uint) error
}

type generationRepository struct {
	db *gorm.DB
}

func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepository{db: db}
}

func (r *generationRepository) Create(generation *model.MailGeneration) error {
	return r.db.Create(generation).Error
}

func (r *generationRepository) FindByID(id uint) (*model.MailGeneration, error) {
	var generation model.MailGeneration
	err := r.db.Preload("Template").Preload("Contact").First(&generation, id).Error
	if err != nil {
		return nil, err
	}
	return &generation, nil
}

func (r *generationRepository) FindAllByMember(memberID *uint) ([]model.MailGeneration, error) {
	var generations []model.MailGeneration
	query := r.db.Preload("Template").Preload("Contact")
	if memberID != nil {
		query = query.Where("generated_by = ?", *memberID)
	}
	err := query.Order("created_at DESC").Find(&generations).Error
	return generations, err
}

func (r *generationRepository) Delete(id uint) error {
	return r.db.Delete(&model.MailGeneration{}, id).Error
}
