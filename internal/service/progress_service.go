package service

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/capisen/backoffice/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ProgressService drives the learner side of a formation: enrollment,
// derived step states, evidence uploads and step completion.
type ProgressService interface {
	Enroll(formationID, memberID uint) (*dto.EnrollmentResponseDTO, error)
	GetProgress(formationID, memberID uint) (*dto.FormationProgressDTO, error)
	CompleteStep(stepID uint, req dto.CompleteStepRequest) (*dto.FormationProgressDTO, error)
	SubmitFile(stepID, memberID uint, fileName string, r io.Reader) (*dto.SubmissionDTO, error)
}

type progressService struct {
	formationRepo  repository.FormationRepository
	enrollmentRepo repository.EnrollmentRepository
	quizRepo       repository.QuizRepository
	store          storage.Store
}

func NewProgressService(
	formationRepo repository.FormationRepository,
	enrollmentRepo repository.EnrollmentRepository,
	quizRepo repository.QuizRepository,
	store storage.Store,
) ProgressService {
	return &progressService{
		formationRepo:  formationRepo,
		enrollmentRepo: enrollmentRepo,
		quizRepo:       quizRepo,
		store:          store,
	}
}

// Enroll is idempotent: enrolling twice in the same formation returns
// the existing enrollment unchanged.
func (s *progressService) Enroll(formationID, memberID uint) (*dto.EnrollmentResponseDTO, error) {
	if _, err := s.formationRepo.FindByID(formationID); err != nil {
		return nil, err
	}
	existing, err := s.enrollmentRepo.FindByFormationAndMember(formationID, memberID)
	if err == nil {
		return enrollmentToDTO(existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	enrollment := model.Enrollment{FormationID: formationID, MemberID: memberID}
	if err := s.enrollmentRepo.Create(&enrollment); err != nil {
		log.Error().Err(err).Uint("formation_id", formationID).Uint("member_id", memberID).Msg("Failed to enroll member")
		return nil, err
	}
	return enrollmentToDTO(&enrollment), nil
}

func (s *progressService) GetProgress(formationID, memberID uint) (*dto.FormationProgressDTO, error) {
	steps, err := s.formationRepo.FindStepsByFormationID(formationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.formationRepo.FindByID(formationID); err != nil {
		return nil, err
	}

	resp := dto.FormationProgressDTO{FormationID: formationID, TotalSteps: len(steps)}

	enrollment, err := s.enrollmentRepo.FindByFormationAndMember(formationID, memberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Not enrolled: everything stays locked.
		for i := range steps {
			resp.Steps = append(resp.Steps, dto.StepProgressDTO{
				Step:  *s.stepSummary(&steps[i]),
				State: dto.StepStateLocked,
			})
		}
		return &resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp.Enrolled = true
	resp.EnrollmentID = &enrollment.ID

	progress, err := s.enrollmentRepo.FindProgress(enrollment.ID)
	if err != nil {
		return nil, err
	}
	submissions, err := s.enrollmentRepo.FindSubmissions(enrollment.ID)
	if err != nil {
		return nil, err
	}

	byStep := make(map[uint]*model.StepProgress, len(progress))
	for i := range progress {
		byStep[progress[i].StepID] = &progress[i]
	}
	subsByStep := make(map[uint][]model.StepSubmission)
	for _, sub := range submissions {
		subsByStep[sub.StepID] = append(subsByStep[sub.StepID], sub)
	}

	// Steps unlock strictly in order: each step is reachable only once
	// every earlier step is completed.
	unlocked := true
	for i := range steps {
		step := &steps[i]
		record := byStep[step.ID]
		entry := dto.StepProgressDTO{Step: *s.stepSummary(step)}
		switch {
		case record != nil && record.Completed:
			entry.State = dto.StepStateCompleted
			entry.CompletedAt = record.CompletedAt
			entry.TextAnswer = record.TextAnswer
			resp.CompletedCount++
		case unlocked:
			entry.State = dto.StepStateUnlocked
			unlocked = false
		default:
			entry.State = dto.StepStateLocked
		}
		if record != nil && !record.Completed {
			entry.TextAnswer = record.TextAnswer
		}
		for j := range subsByStep[step.ID] {
			entry.Submissions = append(entry.Submissions, *s.submissionToDTO(&subsByStep[step.ID][j]))
		}
		resp.Steps = append(resp.Steps, entry)
	}

	resp.FormationComplete = resp.CompletedCount == resp.TotalSteps
	if resp.FormationComplete {
		if quiz, err := s.quizRepo.FindByFormationID(formationID); err == nil {
			if _, err := s.quizRepo.FindAttempt(quiz.ID, enrollment.ID); err == nil {
				resp.QuizAttempted = true
			} else if errors.Is(err, gorm.ErrRecordNotFound) {
				resp.QuizAvailable = true
			} else {
				return nil, err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return &resp, nil
}

func (s *progressService) CompleteStep(stepID uint, req dto.CompleteStepRequest) (*dto.FormationProgressDTO, error) {
	enrollment, step, err := s.resolveStep(stepID, req.MemberID)
	if err != nil {
		return nil, err
	}

	record, err := s.enrollmentRepo.FindProgressForStep(enrollment.ID, step.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if record != nil && record.Completed {
		// Completion is terminal; repeating it changes nothing.
		return s.GetProgress(step.FormationID, req.MemberID)
	}

	locked, err := s.stepLocked(enrollment.ID, step)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, NewValidationError("Cette étape est verrouillée.")
	}

	if step.RequiresFile {
		subs, err := s.enrollmentRepo.FindSubmissionsForStep(enrollment.ID, step.ID)
		if err != nil {
			return nil, err
		}
		if len(subs) == 0 {
			return nil, NewValidationError("Un fichier est requis pour valider cette étape.")
		}
	}
	if step.RequiresText && (req.TextAnswer == nil || strings.TrimSpace(*req.TextAnswer) == "") {
		return nil, NewValidationError("Une réponse écrite est requise pour valider cette étape.")
	}

	if record == nil {
		record = &model.StepProgress{EnrollmentID: enrollment.ID, StepID: step.ID}
	}
	now := time.Now()
	record.Completed = true
	record.CompletedAt = &now
	if step.RequiresText {
		record.TextAnswer = req.TextAnswer
	}
	if err := s.enrollmentRepo.SaveProgress(record); err != nil {
		log.Error().Err(err).Uint("step_id", stepID).Msg("Failed to save step progress")
		return nil, err
	}
	return s.GetProgress(step.FormationID, req.MemberID)
}

func (s *progressService) SubmitFile(stepID, memberID uint, fileName string, r io.Reader) (*dto.SubmissionDTO, error) {
	enrollment, step, err := s.resolveStep(stepID, memberID)
	if err != nil {
		return nil, err
	}
	locked, err := s.stepLocked(enrollment.ID, step)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, NewValidationError("Cette étape est verrouillée.")
	}

	safeName := filepath.Base(fileName)
	key := fmt.Sprintf("submissions/%d/%d/%s_%s", enrollment.ID, step.ID, uuid.NewString(), safeName)
	if err := s.store.Save(key, r); err != nil {
		log.Error().Err(err).Uint("step_id", stepID).Msg("Failed to store submission")
		return nil, err
	}
	submission := model.StepSubmission{
		EnrollmentID: enrollment.ID,
		StepID:       step.ID,
		FileName:     safeName,
		StoragePath:  key,
	}
	if err := s.enrollmentRepo.CreateSubmission(&submission); err != nil {
		return nil, err
	}
	return s.submissionToDTO(&submission), nil
}

// resolveStep loads the step and the caller's enrollment in its
// formation. A missing enrollment is a validation failure, not a 404.
func (s *progressService) resolveStep(stepID, memberID uint) (*model.Enrollment, *model.Step, error) {
	step, err := s.formationRepo.FindStepByID(stepID)
	if err != nil {
		return nil, nil, err
	}
	enrollment, err := s.enrollmentRepo.FindByFormationAndMember(step.FormationID, memberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, NewValidationError("Inscription à la formation requise.")
	}
	if err != nil {
		return nil, nil, err
	}
	return enrollment, step, nil
}

// stepLocked reports whether any step ordered before this one is still
// incomplete.
func (s *progressService) stepLocked(enrollmentID uint, step *model.Step) (bool, error) {
	steps, err := s.formationRepo.FindStepsByFormationID(step.FormationID)
	if err != nil {
		return false, err
	}
	progress, err := s.enrollmentRepo.FindProgress(enrollmentID)
	if err != nil {
		return false, err
	}
	completed := make(map[uint]bool, len(progress))
	for _, p := range progress {
		if p.Completed {
			completed[p.StepID] = true
		}
	}
	for i := range steps {
		if steps[i].OrderIndex < step.OrderIndex && !completed[steps[i].ID] {
			return true, nil
		}
	}
	return false, nil
}

func (s *progressService) stepSummary(step *model.Step) *dto.StepResponseDTO {
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
		doc := &step.Documents[i]
		entry := dto.StepDocumentDTO{ID: doc.ID, FileName: doc.FileName}
		if url, err := s.store.SignedURL(doc.StoragePath, doc.FileName, downloadTTL); err == nil {
			entry.URL = url
		}
		resp.Documents = append(resp.Documents, entry)
	}
	return &resp
}

func (s *progressService) submissionToDTO(submission *model.StepSubmission) *dto.SubmissionDTO {
	resp := dto.SubmissionDTO{
		ID:        submission.ID,
		FileName:  submission.FileName,
		CreatedAt: submission.CreatedAt,
	}
	if url, err := s.store.SignedURL(submission.StoragePath, submission.FileName, downloadTTL); err == nil {
		resp.URL = url
	}
	return &resp
}

func enrollmentToDTO(enrollment *model.Enrollment) *dto.EnrollmentResponseDTO {
	return &dto.EnrollmentResponseDTO{
		ID:          enrollment.ID,
		FormationID: enrollment.FormationID,
		MemberID:    enrollment.MemberID,
		CreatedAt:   enrollment.CreatedAt,
	}
}
