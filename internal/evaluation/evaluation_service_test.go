package evaluation_test

import (
	"context"
	"database/sql"
	"testing"

	"school-admin/internal/evaluation"
	evaluationerrors "school-admin/internal/evaluation/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEvaluationRepository struct {
	createFn            func(ctx context.Context, e *evaluation.Evaluation) error
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*evaluation.Evaluation, error)
	belongsFn           func(ctx context.Context, schoolID, instructorID string) (bool, error)
	updateFn            func(ctx context.Context, e *evaluation.Evaluation) error
}

func (f *fakeEvaluationRepository) WithTx(tx *sql.Tx) evaluation.Repository { return f }

func (f *fakeEvaluationRepository) Create(ctx context.Context, e *evaluation.Evaluation) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEvaluationRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]evaluation.Evaluation, error) {
	return nil, nil
}

func (f *fakeEvaluationRepository) FindAllByInstructor(ctx context.Context, schoolID, instructorID string) ([]evaluation.Evaluation, error) {
	return nil, nil
}

func (f *fakeEvaluationRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*evaluation.Evaluation, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEvaluationRepository) InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, schoolID, instructorID)
	}
	return true, nil
}

func (f *fakeEvaluationRepository) Update(ctx context.Context, e *evaluation.Evaluation) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEvaluationRepository) Delete(ctx context.Context, schoolID, id string) error {
	return nil
}

func newTestDB(t *testing.T, commit bool) *sql.DB {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
	return db
}

func TestEvaluationService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	evaluatorID := uuid.New().String()
	instructorID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		var persisted *evaluation.Evaluation
		repo := &fakeEvaluationRepository{
			createFn: func(ctx context.Context, e *evaluation.Evaluation) error {
				persisted = e
				return nil
			},
		}

		svc := evaluation.NewService(db, repo)
		resp, err := svc.Create(ctx, schoolID, evaluatorID, evaluation.CreateEvaluationRequest{
			InstructorID:   instructorID,
			EvaluationDate: "2025-05-20",
			OverallRating:  4,
			Strengths:      "Clear explanations, strong rapport with students.",
		})

		assert.NoError(t, err)
		assert.Equal(t, 4, resp.OverallRating)
		assert.Equal(t, evaluatorID, resp.EvaluatorID)
		assert.NotNil(t, persisted)
		assert.Equal(t, instructorID, persisted.InstructorID.String())
	})

	t.Run("negative rating above range", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := evaluation.NewService(db, &fakeEvaluationRepository{})
		_, err = svc.Create(ctx, schoolID, evaluatorID, evaluation.CreateEvaluationRequest{
			InstructorID:   instructorID,
			EvaluationDate: "2025-05-20",
			OverallRating:  6,
		})

		assert.ErrorIs(t, err, evaluationerrors.ErrRatingOutOfRange)
	})

	t.Run("negative rating below range", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := evaluation.NewService(db, &fakeEvaluationRepository{})
		_, err = svc.Create(ctx, schoolID, evaluatorID, evaluation.CreateEvaluationRequest{
			InstructorID:   instructorID,
			EvaluationDate: "2025-05-20",
			OverallRating:  0,
		})

		assert.ErrorIs(t, err, evaluationerrors.ErrRatingOutOfRange)
	})

	t.Run("negative instructor from another school", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		repo := &fakeEvaluationRepository{
			belongsFn: func(ctx context.Context, sid, iid string) (bool, error) {
				return false, nil
			},
		}

		svc := evaluation.NewService(db, repo)
		_, err := svc.Create(ctx, schoolID, evaluatorID, evaluation.CreateEvaluationRequest{
			InstructorID:   instructorID,
			EvaluationDate: "2025-05-20",
			OverallRating:  3,
		})

		assert.ErrorIs(t, err, evaluationerrors.ErrInstructorNotInSchool)
	})
}

func TestEvaluationService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New()
	evalID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db := newTestDB(t, true)
		defer db.Close()

		repo := &fakeEvaluationRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*evaluation.Evaluation, error) {
				return &evaluation.Evaluation{
					ID:            evalID,
					SchoolID:      schoolID,
					InstructorID:  uuid.New(),
					EvaluatorID:   uuid.New(),
					OverallRating: 3,
				}, nil
			},
		}

		svc := evaluation.NewService(db, repo)
		resp, err := svc.Update(ctx, schoolID.String(), evalID.String(), evaluation.UpdateEvaluationRequest{
			EvaluationDate: "2025-06-01",
			OverallRating:  5,
			Improvements:   "None noted this cycle.",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.OverallRating)
	})

	t.Run("negative missing evaluation", func(t *testing.T) {
		db := newTestDB(t, false)
		defer db.Close()

		svc := evaluation.NewService(db, &fakeEvaluationRepository{})
		_, err := svc.Update(ctx, schoolID.String(), evalID.String(), evaluation.UpdateEvaluationRequest{
			EvaluationDate: "2025-06-01",
			OverallRating:  2,
		})

		assert.ErrorIs(t, err, evaluationerrors.ErrEvaluationNotFound)
	})
}
