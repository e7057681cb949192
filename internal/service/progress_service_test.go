package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/capisen/backoffice/internal/dto"
	"github.com/capisen/backoffice/internal/model"
	"github.com/capisen/backoffice/internal/repository"
)

type progressFixture struct {
	svc       ProgressService
	formation *model.Formation
	db        *gorm.DB
}

// newProgressFixture seeds a three-step formation: step two needs a
// file, step three a written answer.
func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	db := newTestDB(t)
	formation := &model.Formation{
		Title: "Onboarding Trésorerie",
		Pole:  "tresorerie",
		Steps: []model.Step{
			{Title: "Présentation", OrderIndex: 0},
			{Title: "Justificatif", OrderIndex: 1, RequiresFile: true},
			{Title: "Bilan écrit", OrderIndex: 2, RequiresText: true},
		},
	}
	formationRepo := repository.NewFormationRepository(db)
	require.NoError(t, formationRepo.Create(formation))

	svc := NewProgressService(
		formationRepo,
		repository.NewEnrollmentRepository(db),
		repository.NewQuizRepository(db),
		newTestStore(t),
	)
	return &progressFixture{svc: svc, formation: formation, db: db}
}

func (f *progressFixture) step(i int) *model.Step { return &f.formation.Steps[i] }

const testMember = uint(1)

func TestEnrollIsIdempotent(t *testing.T) {
	f := newProgressFixture(t)

	first, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)
	second, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestEnrollUnknownFormation(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(9999, testMember)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProgressWithoutEnrollmentIsLocked(t *testing.T) {
	f := newProgressFixture(t)

	progress, err := f.svc.GetProgress(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.False(t, progress.Enrolled)
	require.Len(t, progress.Steps, 3)
	for _, step := range progress.Steps {
		assert.Equal(t, dto.StepStateLocked, step.State)
	}
}

func TestProgressUnlocksStepsInOrder(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	progress, err := f.svc.GetProgress(f.formation.ID, testMember)
	require.NoError(t, err)
	assert.True(t, progress.Enrolled)
	assert.Equal(t, dto.StepStateUnlocked, progress.Steps[0].State)
	assert.Equal(t, dto.StepStateLocked, progress.Steps[1].State)
	assert.Equal(t, dto.StepStateLocked, progress.Steps[2].State)

	progress, err = f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
	assert.Equal(t, dto.StepStateCompleted, progress.Steps[0].State)
	assert.NotNil(t, progress.Steps[0].CompletedAt)
	assert.Equal(t, dto.StepStateUnlocked, progress.Steps[1].State)
	assert.Equal(t, 1, progress.CompletedCount)
	assert.False(t, progress.FormationComplete)
}

func TestCompleteLockedStepIsRejected(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	_, err = f.svc.CompleteStep(f.step(1).ID, dto.CompleteStepRequest{MemberID: testMember})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Cette étape est verrouillée.", validation.Message)
}

func TestCompleteStepWithoutEnrollment(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Inscription à la formation requise.", validation.Message)
}

func TestFileRequirementGatesCompletion(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)
	_, err = f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)

	_, err = f.svc.CompleteStep(f.step(1).ID, dto.CompleteStepRequest{MemberID: testMember})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Un fichier est requis pour valider cette étape.", validation.Message)

	submission, err := f.svc.SubmitFile(f.step(1).ID, testMember, "rib.pdf", strings.NewReader("contenu"))
	require.NoError(t, err)
	assert.Equal(t, "rib.pdf", submission.FileName)
	assert.NotEmpty(t, submission.URL)

	progress, err := f.svc.CompleteStep(f.step(1).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
	assert.Equal(t, dto.StepStateCompleted, progress.Steps[1].State)
	require.Len(t, progress.Steps[1].Submissions, 1)
}

func TestSubmitFileOnLockedStepIsRejected(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	_, err = f.svc.SubmitFile(f.step(1).ID, testMember, "rib.pdf", strings.NewReader("x"))
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Cette étape est verrouillée.", validation.Message)
}

func TestTextRequirementGatesCompletion(t *testing.T) {
	f := newProgressFixture(t)
	completeFirstTwoSteps(t, f)

	_, err := f.svc.CompleteStep(f.step(2).ID, dto.CompleteStepRequest{MemberID: testMember})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)

	blank := "   "
	_, err = f.svc.CompleteStep(f.step(2).ID, dto.CompleteStepRequest{MemberID: testMember, TextAnswer: &blank})
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Une réponse écrite est requise pour valider cette étape.", validation.Message)

	answer := "Bilan complet de la formation."
	progress, err := f.svc.CompleteStep(f.step(2).ID, dto.CompleteStepRequest{MemberID: testMember, TextAnswer: &answer})
	require.NoError(t, err)
	assert.Equal(t, 3, progress.CompletedCount)
	assert.True(t, progress.FormationComplete)
	require.NotNil(t, progress.Steps[2].TextAnswer)
	assert.Equal(t, answer, *progress.Steps[2].TextAnswer)
}

func TestRecompleteStepIsNoOp(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	first, err := f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
	again, err := f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
	assert.Equal(t, first.Steps[0].CompletedAt, again.Steps[0].CompletedAt)
	assert.Equal(t, 1, again.CompletedCount)
}

func TestStepOfForeignFormationRequiresItsOwnEnrollment(t *testing.T) {
	f := newProgressFixture(t)
	other := &model.Formation{Title: "Autre", Pole: "etude", Steps: []model.Step{{Title: "Intro", OrderIndex: 0}}}
	require.NoError(t, repository.NewFormationRepository(f.db).Create(other))
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	// Enrolled elsewhere does not count: the step's own formation decides.
	_, err = f.svc.CompleteStep(other.Steps[0].ID, dto.CompleteStepRequest{MemberID: testMember})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "Inscription à la formation requise.", validation.Message)
}

func TestCompleteUnknownStepIsNotFound(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)

	_, err = f.svc.CompleteStep(9999, dto.CompleteStepRequest{MemberID: testMember})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func completeFirstTwoSteps(t *testing.T, f *progressFixture) {
	t.Helper()
	_, err := f.svc.Enroll(f.formation.ID, testMember)
	require.NoError(t, err)
	_, err = f.svc.CompleteStep(f.step(0).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
	_, err = f.svc.SubmitFile(f.step(1).ID, testMember, "rib.pdf", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = f.svc.CompleteStep(f.step(1).ID, dto.CompleteStepRequest{MemberID: testMember})
	require.NoError(t, err)
}
