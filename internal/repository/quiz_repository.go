package repository

import (
	"errors"

	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type QuizRepository interface {
	FindByFormationID(formationID uint) (*model.Quiz, error)
	FindByFormationIDWithQuestions(formationID uint) (*model.Quiz, error)
	// ReplaceDefinition swaps the whole question set of a formation's quiz
	// in one transaction, creating the quiz row on first save.
	ReplaceDefinition(formationID uint, questions []model.QuizQuestion) (*model.Quiz, error)
	CountAttempts(quizID uint) (int64, error)
	FindAttempt(quizID, enrollmentID uint) (*model.QuizAttempt, error)
	CreateAttempt(attempt *model.QuizAttempt) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) FindByFormationID(formationID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Where("formation_id = ?", formationID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByFormationIDWithQuestions(formationID uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.order_index ASC")
		}).
		Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_choices.order_index ASC")
		}).
		Where("formation_id = ?", formationID).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ReplaceDefinition(formationID uint, questions []model.QuizQuestion) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("formation_id = ?", formationID).First(&quiz).Error
		switch {
		case err == nil:
			var questionIDs []uint
			if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
				return err
			}
			if len(questionIDs) > 0 {
				if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizChoice{}).Error; err != nil {
					return err
				}
				if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
					return err
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			quiz = model.Quiz{FormationID: formationID}
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
		default:
			return err
		}

		for i := range questions {
			questions[i].QuizID = quiz.ID
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		quiz.Questions = questions
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) CountAttempts(quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizAttempt{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

func (r *quizRepository) FindAttempt(quizID, enrollmentID uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.db.Preload("Answers").Where("quiz_id = ? AND enrollment_id = ?", quizID, enrollmentID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *quizRepository) CreateAttempt(attempt *model.QuizAttempt) error {
	// Attempt and its answers are written atomically.
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(attempt).Error
	})
}
