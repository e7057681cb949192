package service

import (
	"errors"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// QuizService covers both sides of the terminal quiz: replace-all
// authoring while no attempt exists, and the single scored attempt.
type QuizService interface {
	SaveQuiz(formationID uint, req dto.QuizDefinitionDTO) (*dto.QuizDTO, error)
	GetQuiz(formationID, memberID uint) (*dto.QuizDTO, error)
	SubmitAttempt(formationID uint, req dto.SubmitQuizRequest) (*dto.QuizAttemptDTO, error)
	GetAttempt(formationID, memberID uint) (*dto.QuizAttemptDTO, error)
}

type quizService struct {
	quizRepo       repository.QuizRepository
	formationRepo  repository.FormationRepository
	enrollmentRepo repository.EnrollmentRepository
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	formationRepo repository.FormationRepository,
	enrollmentRepo repository.EnrollmentRepository,
) QuizService {
	return &quizService{
		quizRepo:       quizRepo,
		formationRepo:  formationRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func (s *quizService) SaveQuiz(formationID uint, req dto.QuizDefinitionDTO) (*dto.QuizDTO, error) {
	if _, err := s.formationRepo.FindByID(formationID); err != nil {
		return nil, err
	}
	for _, question := range req.Questions {
		correct := 0
		for _, choice := range question.Choices {
			if choice.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, NewValidationError("Chaque question doit avoir exactement une bonne réponse.")
		}
	}

	// Once anyone has taken the quiz its definition is frozen.
	if quiz, err := s.quizRepo.FindByFormationID(formationID); err == nil {
		count, err := s.quizRepo.CountAttempts(quiz.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, NewValidationError("Le quiz a déjà été tenté et ne peut plus être modifié.")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	questions := make([]model.QuizQuestion, 0, len(req.Questions))
	for i, def := range req.Questions {
		question := model.QuizQuestion{Prompt: def.Prompt, OrderIndex: i}
		for j, choice := range def.Choices {
			question.Choices = append(question.Choices, model.QuizChoice{
				Label:      choice.Label,
				OrderIndex: j,
				IsCorrect:  choice.IsCorrect,
			})
		}
		questions = append(questions, question)
	}

	quiz, err := s.quizRepo.ReplaceDefinition(formationID, questions)
	if err != nil {
		log.Error().Err(err).Uint("formation_id", formationID).Msg("Failed to save quiz")
		return nil, err
	}
	resp := quizToDTO(quiz)
	resp.Eligible = false
	return resp, nil
}

func (s *quizService) GetQuiz(formationID, memberID uint) (*dto.QuizDTO, error) {
	quiz, err := s.quizRepo.FindByFormationIDWithQuestions(formationID)
	if err != nil {
		return nil, err
	}
	resp := quizToDTO(quiz)

	enrollment, complete, err := s.formationComplete(formationID, memberID)
	if err != nil {
		return nil, err
	}
	if enrollment != nil {
		if _, err := s.quizRepo.FindAttempt(quiz.ID, enrollment.ID); err == nil {
			resp.AlreadyTaken = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	resp.Eligible = complete && !resp.AlreadyTaken
	return resp, nil
}

func (s *quizService) SubmitAttempt(formationID uint, req dto.SubmitQuizRequest) (*dto.QuizAttemptDTO, error) {
	quiz, err := s.quizRepo.FindByFormationIDWithQuestions(formationID)
	if err != nil {
		return nil, err
	}
	enrollment, complete, err := s.formationComplete(formationID, req.MemberID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, NewValidationError("Inscription à la formation requise.")
	}
	if !complete {
		return nil, NewValidationError("Terminez toutes les étapes avant de passer le quiz.")
	}
	if _, err := s.quizRepo.FindAttempt(quiz.ID, enrollment.ID); err == nil {
		return nil, NewValidationError("Le quiz a déjà été passé.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	choicesByQuestion := make(map[uint]map[uint]*model.QuizChoice, len(quiz.Questions))
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		choices := make(map[uint]*model.QuizChoice, len(question.Choices))
		for j := range question.Choices {
			choices[question.Choices[j].ID] = &question.Choices[j]
		}
		choicesByQuestion[question.ID] = choices
	}

	score := 0
	answered := make(map[uint]bool, len(req.Answers))
	attempt := model.QuizAttempt{
		QuizID:       quiz.ID,
		EnrollmentID: enrollment.ID,
		Total:        len(quiz.Questions),
	}
	for _, answer := range req.Answers {
		choices, ok := choicesByQuestion[answer.QuestionID]
		if !ok || answered[answer.QuestionID] {
			return nil, NewValidationError("Réponse invalide pour ce quiz.")
		}
		choice, ok := choices[answer.ChoiceID]
		if !ok {
			return nil, NewValidationError("Réponse invalide pour ce quiz.")
		}
		answered[answer.QuestionID] = true
		if choice.IsCorrect {
			score++
		}
		attempt.Answers = append(attempt.Answers, model.QuizAnswer{
			QuestionID: answer.QuestionID,
			ChoiceID:   answer.ChoiceID,
		})
	}
	attempt.Score = score

	if err := s.quizRepo.CreateAttempt(&attempt); err != nil {
		log.Error().Err(err).Uint("quiz_id", quiz.ID).Msg("Failed to record quiz attempt")
		return nil, err
	}
	return attemptToDTO(&attempt, quiz), nil
}

func (s *quizService) GetAttempt(formationID, memberID uint) (*dto.QuizAttemptDTO, error) {
	quiz, err := s.quizRepo.FindByFormationIDWithQuestions(formationID)
	if err != nil {
		return nil, err
	}
	enrollment, err := s.enrollmentRepo.FindByFormationAndMember(formationID, memberID)
	if err != nil {
		return nil, err
	}
	attempt, err := s.quizRepo.FindAttempt(quiz.ID, enrollment.ID)
	if err != nil {
		return nil, err
	}
	return attemptToDTO(attempt, quiz), nil
}

// formationComplete reports whether the member finished every step. A
// nil enrollment means the member never enrolled.
func (s *quizService) formationComplete(formationID, memberID uint) (*model.Enrollment, bool, error) {
	enrollment, err := s.enrollmentRepo.FindByFormationAndMember(formationID, memberID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	steps, err := s.formationRepo.FindStepsByFormationID(formationID)
	if err != nil {
		return nil, false, err
	}
	progress, err := s.enrollmentRepo.FindProgress(enrollment.ID)
	if err != nil {
		return nil, false, err
	}
	completed := make(map[uint]bool, len(progress))
	for _, p := range progress {
		if p.Completed {
			completed[p.StepID] = true
		}
	}
	for i := range steps {
		if !completed[steps[i].ID] {
			return enrollment, false, nil
		}
	}
	return enrollment, true, nil
}

// quizToDTO renders the learner view: choices are listed without their
// correctness flag.
func quizToDTO(quiz *model.Quiz) *dto.QuizDTO {
	resp := dto.QuizDTO{
		ID:            quiz.ID,
		FormationID:   quiz.FormationID,
		QuestionCount: len(quiz.Questions),
	}
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		entry := dto.QuizQuestionDTO{ID: question.ID, Prompt: question.Prompt}
		for j := range question.Choices {
			entry.Choices = append(entry.Choices, dto.QuizChoiceDTO{
				ID:    question.Choices[j].ID,
				Label: question.Choices[j].Label,
			})
		}
		resp.Questions = append(resp.Questions, entry)
	}
	return &resp
}

func attemptToDTO(attempt *model.QuizAttempt, quiz *model.Quiz) *dto.QuizAttemptDTO {
	resp := dto.QuizAttemptDTO{
		ID:           attempt.ID,
		QuizID:       attempt.QuizID,
		EnrollmentID: attempt.EnrollmentID,
		Score:        attempt.Score,
		Total:        attempt.Total,
		CreatedAt:    attempt.CreatedAt,
	}
	chosen := make(map[uint]uint, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		chosen[answer.QuestionID] = answer.ChoiceID
	}
	for i := range quiz.Questions {
		question := &quiz.Questions[i]
		review := dto.QuizAnswerReviewDTO{QuestionID: question.ID, Prompt: question.Prompt}
		for j := range question.Choices {
			choice := &question.Choices[j]
			if choice.IsCorrect {
				review.CorrectChoiceID = choice.ID
				review.CorrectLabel = choice.Label
			}
			if chosen[question.ID] == choice.ID {
				review.ChosenChoiceID = choice.ID
				review.ChosenLabel = choice.Label
			}
		}
		review.Correct = review.ChosenChoiceID != 0 && review.ChosenChoiceID == review.CorrectChoiceID
		resp.Answers = append(resp.Answers, review)
	}
	return &resp
}
