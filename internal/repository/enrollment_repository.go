package repository

import (
	"github.com/capisen/backoffice/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(enrollment *model.Enrollment) error
	FindByFormationAndMember(formationID, memberID uint) (*model.Enrollment, error)
	FindProgress(enrollmentID uint) ([]model.StepProgress, error)
	FindProgressForStep(enrollmentID, stepID uint) (*model.StepProgress, error)
	SaveProgress(progress *model.StepProgress) error
	FindSubmissions(enrollmentID uint) ([]model.StepSubmission, error)
	FindSubmissionsForStep(enrollmentID, stepID uint) ([]model.StepSubmission, error)
	CreateSubmission(submission *model.StepSubmission) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) FindByFormationAndMember(formationID, memberID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("formation_id = ? AND member_id = ?", formationID, memberID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) FindProgress(enrollmentID uint) ([]model.StepProgress, error) {
	var progress []model.StepProgress
	err := r.db.Where("enrollment_id = ?", enrollmentID).Find(&progress).Error
	return progress, err
}

func (r *enrollmentRepository) FindProgressForStep(enrollmentID, stepID uint) (*model.StepProgress, error) {
	var progress model.StepProgress
	err := r.db.Where("enrollment_id = ? AND step_id = ?", enrollmentID, stepID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *enrollmentRepository) SaveProgress(progress *model.StepProgress) error {
	return r.db.Save(progress).Error
}

func (r *enrollmentRepository) FindSubmissions(enrollmentID uint) ([]model.StepSubmission, error) {
	var submissions []model.StepSubmission
	err := r.db.Where("enrollment_id = ?", enrollmentID).Order("created_at ASC").Find(&submissions).Error
	return submissions, err
}

func (r *enrollmentRepository) FindSubmissionsForStep(enrollmentID, stepID uint) ([]model.StepSubmission, error) {
	var submissions []model.StepSubmission
	err := r.db.Where("enrollment_id = ? AND step_id = ?", enrollmentID, stepID).Order("created_at ASC").Find(&submissions).Error
	return submissions, err
}

func (r *enrollmentRepository) CreateSubmission(submission *model.StepSubmission) error {
	return r.db.Create(submission).Error
}
