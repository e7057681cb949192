package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
)

type quizFixture struct {
	svc       QuizService
	progress  ProgressService
	formation *model.Formation
}

// newQuizFixture seeds a one-step formation so eligibility is one
// completion away.
func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()
	db := newTestDB(t)
	formation := &model.Formation{
		Title: "Onboarding Qualité",
		Pole:  "qualite",
		Steps: []model.Step{{Title: "Introduction", OrderIndex: 0}},
	}
	formationRepo := repository.NewFormationRepository(db)
	require.NoError(t, formationRepo.Create(formation))

	enrollmentRepo := repository.NewEnrollmentRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	return &quizFixture{
		svc:       NewQuizService(quizRepo, formationRepo, enrollmentRepo),
		progress:  NewProgressService(formationRepo, enrollmentRepo, quizRepo, newTestStore(t)),
		formation: formation,
	}
}

func twoQuestionDefinition() dto.QuizDefinitionDTO {
	return dto.QuizDefinitionDTO{
		Questions: []dto.QuizQuestionDefinitionDTO{
			{
				Prompt: "Quel pôle gère les conventions ?",
				Choices: []dto.QuizChoiceDefinitionDTO{
					{Label: "Secrétariat", IsCorrect: true},
					{Label: "Communication"},
				},
			},
			{
				Prompt: "Combien de relances avant d'abandonner ?",
				Choices: []dto.QuizChoiceDefinitionDTO{
					{Label: "Une"},
					{Label: "Deux", IsCorrect: true},
					{Label: "Dix"},
				},
			},
		},
	}
}

func (f *quizFixture) completeFormation(t *testing.T, memberID uint) {
	t.Helper()
	_, err := f.progress.Enroll(f.formation.ID, memberID)
	require.NoError(t, err)
	_, err = f.progress.CompleteStep(f.formation.Steps[0].ID, dto.CompleteStepRequest{MemberID: memberID})
	require.NoError(t, err)
}

func (f *quizFixture) savedQuiz(t *testing.T, memberID uint) *dto.QuizDTO {
	t.Helper()
	_, err := f.svc.SaveQuiz(f.formation.ID, twoQuestionDefinition())
	require.NoError(t, err)
	quiz, err := f.svc.GetQuiz(f.formation.ID, memberID)
	require.NoError(t, err)
	return quiz
}

func answersFor(quiz *dto.QuizDTO, pick func(q dto.QuizQuestionDTO) uint) []dto.QuizAnswerSubmissionDTO {
	answers := make([]dto.QuizAnswerSubmissionDTO, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers = append(answers, dto.QuizAnswerSubmissionDTO{QuestionID: q.ID, ChoiceID: pick(q)})
	}
	return answers
}

func TestSaveQuizRequiresExactlyOneCorrectChoice(t *testing.T) {
	f := newQuizFixture(t)
	def := twoQuestionDefinition()
	def.Questions[0].Choices[1].IsCorrect = true

	_, err := f.svc.SaveQuiz(f.formation.ID, def)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Chaque question doit avoir exactement une bonne réponse.", validation.Message)
}

func TestSaveQuizReplacesDefinition(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)

	first := f.savedQuiz(t, testMember)
	require.Len(t, first.Questions, 2)

	replacement := dto.QuizDefinitionDTO{
		Questions: []dto.QuizQuestionDefinitionDTO{{
			Prompt: "Nouvelle question unique ?",
			Choices: []dto.QuizChoiceDefinitionDTO{
				{Label: "Oui", IsCorrect: true},
				{Label: "Non"},
			},
		}},
	}
	_, err := f.svc.SaveQuiz(f.formation.ID, replacement)
	require.NoError(t, err)

	quiz, err := f.svc.GetQuiz(f.formation.ID, testMember)
	require.NoError(t, err)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "Nouvelle question unique ?", quiz.Questions[0].Prompt)
	assert.Equal(t, first.ID, quiz.ID, "quiz row survives a replace")
}

func TestGetQuizEligibility(t *testing.T) {
	f := newQuizFixture(t)
	_, err := f.svc.SaveQuiz(f.formation.ID, twoQuestionDefinition())
	require.NoError(t, err)

	// Not enrolled: visible but not eligible.
	quiz, err := f.svc.GetQuiz(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.False(t, quiz.Eligible)

	f.completeFormation(t, testMember)
	quiz, err = f.svc.GetQuiz(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.True(t, quiz.Eligible)
	assert.False(t, quiz.AlreadyTaken)
	assert.Equal(t, 2, quiz.QuestionCount)
}

func TestSubmitAttemptPerfectScore(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)

	// The learner view never exposes correctness, so pick by label.
	correct := map[string]bool{"Secrétariat": true, "Deux": true}
	attempt, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers: answersFor(quiz, func(q dto.QuizQuestionDTO) uint {
			for _, c := range q.Choices {
				if correct[c.Label] {
					return c.ID
				}
			}
			return q.Choices[0].ID
		}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempt.Score)
	assert.Equal(t, 2, attempt.Total)
	require.Len(t, attempt.Answers, 2)
	for _, review := range attempt.Answers {
		assert.True(t, review.Correct)
		assert.Equal(t, review.CorrectChoiceID, review.ChosenChoiceID)
	}
}

func TestSubmitAttemptPartialAndUnanswered(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)

	// Answer only the first question, correctly.
	first := quiz.Questions[0]
	var choiceID uint
	for _, c := range first.Choices {
		if c.Label == "Secrétariat" {
			choiceID = c.ID
		}
	}
	attempt, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers:  []dto.QuizAnswerSubmissionDTO{{QuestionID: first.ID, ChoiceID: choiceID}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.Score)
	assert.Equal(t, 2, attempt.Total)

	// The unanswered question shows up in the review as incorrect.
	require.Len(t, attempt.Answers, 2)
	assert.False(t, attempt.Answers[1].Correct)
	assert.Zero(t, attempt.Answers[1].ChosenChoiceID)
}

func TestSubmitAttemptRequiresCompletion(t *testing.T) {
	f := newQuizFixture(t)
	quiz := f.savedQuiz(t, testMember)
	_, err := f.progress.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	_, err = f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers:  answersFor(quiz, func(q dto.QuizQuestionDTO) uint { return q.Choices[0].ID }),
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Terminez toutes les étapes avant de passer le quiz.", validation.Message)
}

func TestSubmitAttemptIsSingleShot(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)
	submit := func() error {
		_, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
			MemberID: testMember,
			Answers:  answersFor(quiz, func(q dto.QuizQuestionDTO) uint { return q.Choices[0].ID }),
		})
		return err
	}
	require.NoError(t, submit())

	err := submit()
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Le quiz a déjà été passé.", validation.Message)

	quizView, err := f.svc.GetQuiz(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.True(t, quizView.AlreadyTaken)
	assert.False(t, quizView.Eligible)
}

func TestSubmitAttemptRejectsForeignChoice(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)

	_, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers: []dto.QuizAnswerSubmissionDTO{{
			QuestionID: quiz.Questions[0].ID,
			ChoiceID:   quiz.Questions[1].Choices[0].ID,
		}},
	})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Réponse invalide pour ce quiz.", validation.Message)
}

func TestAuthoringFrozenAfterFirstAttempt(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)
	_, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers:  answersFor(quiz, func(q dto.QuizQuestionDTO) uint { return q.Choices[0].ID }),
	})
	require.NoError(t, err)

	_, err = f.svc.SaveQuiz(f.formation.ID, twoQuestionDefinition())
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Le quiz a déjà été tenté et ne peut plus être modifié.", validation.Message)
}

func TestGetAttemptReview(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	quiz := f.savedQuiz(t, testMember)
	_, err := f.svc.SubmitAttempt(f.formation.ID, dto.SubmitQuizRequest{
		MemberID: testMember,
		Answers:  answersFor(quiz, func(q dto.QuizQuestionDTO) uint { return q.Choices[0].ID }),
	})
	require.NoError(t, err)

	review, err := f.svc.GetAttempt(f.formation.ID, testMember)
	require.NoError(t, err)
	require.Len(t, review.Answers, 2)
	for _, answer := range review.Answers {
		assert.NotEmpty(t, answer.Prompt)
		assert.NotZero(t, answer.CorrectChoiceID)
		assert.NotEmpty(t, answer.CorrectLabel)
	}
}

func TestGetAttemptMissing(t *testing.T) {
	f := newQuizFixture(t)
	f.completeFormation(t, testMember)
	f.savedQuiz(t, testMember)

	_, err := f.svc.GetAttempt(f.formation.ID, testMember)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
