package repository

import (
	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type OffreRepository interface {
	Create(offre *model.Offre) error
	FindByID(id uint) (*model.Offre, error)
	FindAll() ([]model.Offre, error)
	Update(offre *model.Offre) error
	Delete(id uint) error
}

type offreRepository struct {
	db *gorm.DB
}

func NewOffreRepository(db *gorm.DB) OffreRepository {
	return &offreRepository{db: db}
}

func (r *offreRepository) Create(offre *model.Offre) error {
	return r.db.Create(offre).Error
}

func (r *offreRepository) FindByID(id uint) (*model.Offre, error) {
	var offre model.Offre
	if err := r.db.First(&offre, id).Error; err != nil {
		return nil, err
	}
	return &offre, nil
}

func (r *offreRepository) FindAll() ([]model.Offre, error) {
	var offres []model.Offre
	err := r.db.Order("title ASC").Find(&offres).Error
	return offres, err
}

func (r *offreRepository) Update(offre *model.Offre) error {
	return r.db.Save(offre).Error
}

func (r *offreRepository) Delete(id uint) error {
	return r.db.Delete(&model.Offre{}, id).Error
}
