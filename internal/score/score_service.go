package score

import (
	"context"
	"database/sql"
	"errors"
	"time"

	scoreerrors "school-admin/internal/score/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// passThreshold is the score/max_score ratio a student must reach to
// count towards the pass rate.
const passThreshold = 0.5

//go:generate mockgen -source=score_service.go -destination=mock/score_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateScoreRequest) (ScoreResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]ScoreResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (ScoreResponse, error)
	GetSummary(ctx context.Context, schoolID, courseID string) (SummaryResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateScoreRequest) (ScoreResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("score.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("score.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID string, req CreateScoreRequest) (ScoreResponse, error) {
	s.logger.Debug("create test score requested",
		zap.String("school_id", schoolID),
		zap.String("course_id", req.CourseID),
		zap.String("student", req.StudentName),
	)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return ScoreResponse{}, scoreerrors.ErrInvalidSchoolID
	}
	courseUUID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return ScoreResponse{}, scoreerrors.ErrInvalidCourseID
	}
	testDate, err := time.Parse("2006-01-02", req.TestDate)
	if err != nil {
		return ScoreResponse{}, scoreerrors.ErrInvalidTestDate
	}
	if req.Score > req.MaxScore {
		return ScoreResponse{}, scoreerrors.ErrScoreExceedsMax
	}
	administeredBy, err := parseOptionalUUID(req.AdministeredBy)
	if err != nil {
		return ScoreResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create test score begin tx failed", zap.Error(err))
		return ScoreResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.CourseBelongsToSchool(ctx, schoolID, req.CourseID)
	if err != nil {
		s.logger.Error("create test score course check failed", zap.Error(err))
		return ScoreResponse{}, err
	}
	if !belongs {
		return ScoreResponse{}, scoreerrors.ErrCourseNotInSchool
	}

	record := &TestScore{
		ID:             uuid.New(),
		SchoolID:       schoolUUID,
		CourseID:       courseUUID,
		StudentName:    req.StudentName,
		TestDate:       testDate,
		Score:          req.Score,
		MaxScore:       req.MaxScore,
		AdministeredBy: administeredBy,
	}

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create test score persist failed", zap.Error(err))
		return ScoreResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create test score commit failed", zap.Error(err))
		return ScoreResponse{}, err
	}
	s.logger.Info("create test score success",
		zap.String("score_id", record.ID.String()),
		zap.String("course_id", req.CourseID),
	)

	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]ScoreResponse, error) {
	scores, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(scores), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (ScoreResponse, error) {
	record, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScoreResponse{}, scoreerrors.ErrScoreNotFound
		}
		return ScoreResponse{}, err
	}
	return mapToResponse(*record), nil
}

// GetSummary aggregates all scores of a course in the service; the
// ledger per course is small enough that a SQL GROUP BY buys nothing.
func (s *service) GetSummary(ctx context.Context, schoolID, courseID string) (SummaryResponse, error) {
	if _, err := uuid.Parse(courseID); err != nil {
		return SummaryResponse{}, scoreerrors.ErrInvalidCourseID
	}

	belongs, err := s.repo.CourseBelongsToSchool(ctx, schoolID, courseID)
	if err != nil {
		return SummaryResponse{}, err
	}
	if !belongs {
		return SummaryResponse{}, scoreerrors.ErrCourseNotInSchool
	}

	scores, err := s.repo.FindAllByCourse(ctx, schoolID, courseID)
	if err != nil {
		return SummaryResponse{}, err
	}

	summary := SummaryResponse{CourseID: courseID, Count: len(scores)}
	if len(scores) == 0 {
		return summary, nil
	}

	var sum float64
	passed := 0
	summary.Min = scores[0].Score
	summary.Max = scores[0].Score

	for _, record := range scores {
		sum += record.Score
		if record.Score < summary.Min {
			summary.Min = record.Score
		}
		if record.Score > summary.Max {
			summary.Max = record.Score
		}
		if record.MaxScore > 0 && record.Score/record.MaxScore >= passThreshold {
			passed++
		}
	}

	summary.Mean = sum / float64(len(scores))
	summary.PassRate = float64(passed) / float64(len(scores))
	return summary, nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateScoreRequest) (ScoreResponse, error) {
	courseUUID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return ScoreResponse{}, scoreerrors.ErrInvalidCourseID
	}
	testDate, err := time.Parse("2006-01-02", req.TestDate)
	if err != nil {
		return ScoreResponse{}, scoreerrors.ErrInvalidTestDate
	}
	if req.Score > req.MaxScore {
		return ScoreResponse{}, scoreerrors.ErrScoreExceedsMax
	}
	administeredBy, err := parseOptionalUUID(req.AdministeredBy)
	if err != nil {
		return ScoreResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ScoreResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScoreResponse{}, scoreerrors.ErrScoreNotFound
		}
		return ScoreResponse{}, err
	}

	if record.CourseID != courseUUID {
		belongs, err := qtx.CourseBelongsToSchool(ctx, schoolID, req.CourseID)
		if err != nil {
			return ScoreResponse{}, err
		}
		if !belongs {
			return ScoreResponse{}, scoreerrors.ErrCourseNotInSchool
		}
	}

	record.CourseID = courseUUID
	record.StudentName = req.StudentName
	record.TestDate = testDate
	record.Score = req.Score
	record.MaxScore = req.MaxScore
	record.AdministeredBy = administeredBy

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("update test score persist failed",
			zap.String("score_id", id),
			zap.Error(err),
		)
		return ScoreResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ScoreResponse{}, err
	}
	s.logger.Info("update test score success", zap.String("score_id", id))

	return mapToResponse(*record), nil
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
			return scoreerrors.ErrScoreNotFound
		}
		return err
	}
	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	return tx.Commit()
}

func parseOptionalUUID(v string) (*uuid.UUID, error) {
	if v == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(v)
	if err != nil {
		return nil, scoreerrors.ErrInvalidAdministeredBy
	}
	return &parsed, nil
}

func mapToResponse(record TestScore) ScoreResponse {
	resp := ScoreResponse{
		ID:          record.ID.String(),
		SchoolID:    record.SchoolID.String(),
		CourseID:    record.CourseID.String(),
		StudentName: record.StudentName,
		TestDate:    record.TestDate.Format("2006-01-02"),
		Score:       record.Score,
		MaxScore:    record.MaxScore,
	}
	if record.Course != nil {
		resp.CourseName = record.Course.Name
		resp.CourseCode = record.Course.Code
	}
	if record.AdministeredBy != nil {
		v := record.AdministeredBy.String()
		resp.AdministeredBy = &v
	}
	return resp
}

func mapToListResponse(scores []TestScore) []ScoreResponse {
	resp := make([]ScoreResponse, len(scores))
	for i, record := range scores {
		resp[i] = mapToResponse(record)
	}
	return resp
}
