package evaluation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	evaluationerrors "school-admin/internal/evaluation/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=evaluation_service.go -destination=mock/evaluation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID, evaluatorID string, req CreateEvaluationRequest) (EvaluationResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]EvaluationResponse, error)
	GetAllByInstructor(ctx context.Context, schoolID, instructorID string) ([]EvaluationResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (EvaluationResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateEvaluationRequest) (EvaluationResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("evaluation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("evaluation.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID, evaluatorID string, req CreateEvaluationRequest) (EvaluationResponse, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidSchoolID
	}
	evaluatorUUID, err := uuid.Parse(evaluatorID)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEvaluatorID
	}
	evalDate, err := time.Parse("2006-01-02", req.EvaluationDate)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEvaluationDate
	}
	if err := validateRating(req.OverallRating); err != nil {
		return EvaluationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create evaluation begin tx failed", zap.Error(err))
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.InstructorBelongsToSchool(ctx, schoolID, req.InstructorID)
	if err != nil {
		return EvaluationResponse{}, err
	}
	if !belongs {
		return EvaluationResponse{}, evaluationerrors.ErrInstructorNotInSchool
	}

	e := &Evaluation{
		ID:             uuid.New(),
		SchoolID:       schoolUUID,
		InstructorID:   uuid.MustParse(req.InstructorID),
		EvaluatorID:    evaluatorUUID,
		EvaluationDate: evalDate,
		OverallRating:  req.OverallRating,
		Strengths:      req.Strengths,
		Improvements:   req.Improvements,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create evaluation persist failed", zap.Error(err))
		return EvaluationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}
	s.logger.Info("create evaluation success",
		zap.String("evaluation_id", e.ID.String()),
		zap.String("instructor_id", req.InstructorID),
		zap.Int("rating", req.OverallRating),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]EvaluationResponse, error) {
	evals, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(evals), nil
}

func (s *service) GetAllByInstructor(ctx context.Context, schoolID, instructorID string) ([]EvaluationResponse, error) {
	evals, err := s.repo.FindAllByInstructor(ctx, schoolID, instructorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(evals), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (EvaluationResponse, error) {
	e, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateEvaluationRequest) (EvaluationResponse, error) {
	evalDate, err := time.Parse("2006-01-02", req.EvaluationDate)
	if err != nil {
		return EvaluationResponse{}, evaluationerrors.ErrInvalidEvaluationDate
	}
	if err := validateRating(req.OverallRating); err != nil {
		return EvaluationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EvaluationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EvaluationResponse{}, evaluationerrors.ErrEvaluationNotFound
		}
		return EvaluationResponse{}, err
	}

	e.EvaluationDate = evalDate
	e.OverallRating = req.OverallRating
	e.Strengths = req.Strengths
	e.Improvements = req.Improvements

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update evaluation persist failed",
			zap.String("evaluation_id", id),
			zap.Error(err),
		)
		return EvaluationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EvaluationResponse{}, err
	}

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndSchool(ctx, schoolID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return evaluationerrors.ErrEvaluationNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	return tx.Commit()
}

// validateRating guards against callers that bypass binding, like the
// consumer or future bulk imports.
func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return evaluationerrors.ErrRatingOutOfRange
	}
	return nil
}

func mapToResponse(e Evaluation) EvaluationResponse {
	resp := EvaluationResponse{
		ID:             e.ID.String(),
		SchoolID:       e.SchoolID.String(),
		InstructorID:   e.InstructorID.String(),
		EvaluatorID:    e.EvaluatorID.String(),
		EvaluationDate: e.EvaluationDate.Format("2006-01-02"),
		OverallRating:  e.OverallRating,
		Strengths:      e.Strengths,
		Improvements:   e.Improvements,
	}
	if e.Instructor != nil {
		resp.InstructorName = e.Instructor.FullName
	}
	return resp
}

func mapToListResponse(evals []Evaluation) []EvaluationResponse {
	resp := make([]EvaluationResponse, len(evals))
	for i, e := range evals {
		resp[i] = mapToResponse(e)
	}
	return resp
}
