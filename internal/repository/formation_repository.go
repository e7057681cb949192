package repository

import (
	"errors"

	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type FormationRepository interface {
	Create(formation *model.Formation) error
	FindByID(id uint) (*model.Formation, error)
	FindByIDWithSteps(id uint) (*model.Formation, error)
	FindAllByPole(pole *string) ([]struct {
		model.Formation
		StepCount int
	}, error)
	Update(formation *model.Formation) error
	// UpdateWithSteps saves the formation and reconciles its steps against
	// the given list in one transaction: steps with IDs are updated in
	// place, steps without one are created, and persisted steps absent
	// from the list are removed together with their documents, progress
	// and submissions.
	UpdateWithSteps(formation *model.Formation, steps []model.Step) error
	// Delete removes the formation and everything anchored to it: steps,
	// their documents, the quiz tree, enrollments, progress, submissions
	// and attempts. Runs in one transaction.
	Delete(id uint) error

	FindStepByID(id uint) (*model.Step, error)
	FindStepsByFormationID(formationID uint) ([]model.Step, error)
	CreateDocument(doc *model.StepDocument) error
}

type formationRepository struct {
	db *gorm.DB
}

func NewFormationRepository(db *gorm.DB) FormationRepository {
	return &formationRepository{db: db}
}

func (r *formationRepository) Create(formation *model.Formation) error {
	return r.db.Create(formation).Error
}

func (r *formationRepository) FindByID(id uint) (*model.Formation, error) {
	var formation model.Formation
	err := r.db.First(&formation, id).Error
	if err != nil {
		return nil, err
	}
	return &formation, nil
}

func (r *formationRepository) FindByIDWithSteps(id uint) (*model.Formation, error) {
	var formation model.Formation
	err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("steps.order_index ASC")
		}).
		Preload("Steps.Documents").
		First(&formation, id).Error
	if err != nil {
		return nil, err
	}
	return &formation, nil
}

func (r *formationRepository) FindAllByPole(pole *string) ([]struct {
	model.Formation
	StepCount int
}, error) {
	var results []struct {
		model.Formation
		StepCount int
	}
	query := r.db.Model(&model.Formation{}).
		Select("formations.*, (SELECT COUNT(*) FROM steps WHERE steps.formation_id = formations.id AND steps.deleted_at IS NULL) as step_count").
		Where("formations.deleted_at IS NULL")
	if pole != nil {
		query = query.Where("formations.pole = ?", *pole)
	}
	err := query.Order("formations.created_at DESC").Scan(&results).Error
	return results, err
}

func (r *formationRepository) Update(formation *model.Formation) error {
	return r.db.Save(formation).Error
}

func (r *formationRepository) UpdateWithSteps(formation *model.Formation, steps []model.Step) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps").Save(formation).Error; err != nil {
			return err
		}
		var existingIDs []uint
		if err := tx.Model(&model.Step{}).Where("formation_id = ?", formation.ID).Pluck("id", &existingIDs).Error; err != nil {
			return err
		}
		kept := make(map[uint]bool, len(steps))
		for i := range steps {
			steps[i].FormationID = formation.ID
			if steps[i].ID != 0 {
				kept[steps[i].ID] = true
				err := tx.Model(&model.Step{}).Where("id = ? AND formation_id = ?", steps[i].ID, formation.ID).
					Select("Title", "Description", "VideoURL", "OrderIndex", "RequiresFile", "RequiresText").
					Updates(steps[i]).Error
				if err != nil {
					return err
				}
				continue
			}
			if err := tx.Omit("Documents").Create(&steps[i]).Error; err != nil {
				return err
			}
		}
		var removed []uint
		for _, stepID := range existingIDs {
			if !kept[stepID] {
				removed = append(removed, stepID)
			}
		}
		if len(removed) > 0 {
			if err := tx.Where("step_id IN ?", removed).Delete(&model.StepDocument{}).Error; err != nil {
				return err
			}
			if err := tx.Where("step_id IN ?", removed).Delete(&model.StepProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("step_id IN ?", removed).Delete(&model.StepSubmission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removed).Delete(&model.Step{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *formationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stepIDs []uint
		if err := tx.Model(&model.Step{}).Where("formation_id = ?", id).Pluck("id", &stepIDs).Error; err != nil {
			return err
		}
		var enrollmentIDs []uint
		if err := tx.Model(&model.Enrollment{}).Where("formation_id = ?", id).Pluck("id", &enrollmentIDs).Error; err != nil {
			return err
		}

		if len(stepIDs) > 0 {
			if err := tx.Where("step_id IN ?", stepIDs).Delete(&model.StepDocument{}).Error; err != nil {
				return err
			}
		}
		if len(enrollmentIDs) > 0 {
			if err := tx.Where("enrollment_id IN ?", enrollmentIDs).Delete(&model.StepProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("enrollment_id IN ?", enrollmentIDs).Delete(&model.StepSubmission{}).Error; err != nil {
				return err
			}
		}

		var quiz model.Quiz
		if err := tx.Where("formation_id = ?", id).First(&quiz).Error; err == nil {
			var questionIDs []uint
			if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			var attemptIDs []uint
			if err := tx.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &attemptIDs).Error; err != nil {
				return err
			}
			if len(attemptIDs) > 0 {
				if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizAttempt{}).Error; err != nil {
					return err
				}
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizChoice{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&quiz).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Where("formation_id = ?", id).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("formation_id = ?", id).Delete(&model.Step{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Formation{}, id).Error
	})
}

func (r *formationRepository) FindStepByID(id uint) (*model.Step, error) {
	var step model.Step
	if err := r.db.Preload("Documents").First(&step, id).Error; err != nil {
		return nil, err
	}
	return &step, nil
}

func (r *formationRepository) FindStepsByFormationID(formationID uint) ([]model.Step, error) {
	var steps []model.Step
	err := r.db.Where("formation_id = ?", formationID).Order("order_index ASC").Preload("Documents").Find(&steps).Error
	return steps, err
}

func (r *formationRepository) CreateDocument(doc *model.StepDocument) error {
	return r.db.Create(doc).Error
}
