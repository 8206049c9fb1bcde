package course

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	courseerrors "school-admin/internal/course/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=course_service.go -destination=mock/course_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateCourseRequest) (CourseResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]CourseResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (CourseResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateCourseRequest) (CourseResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("course.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("course.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID string, req CreateCourseRequest) (CourseResponse, error) {
	s.logger.Debug("create course requested",
		zap.String("school_id", schoolID),
		zap.String("code", req.Code),
	)

	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return CourseResponse{}, courseerrors.ErrInvalidSchoolID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create course begin tx failed", zap.Error(err))
		return CourseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	instructorID, err := s.resolveInstructor(ctx, qtx, schoolID, req.InstructorID)
	if err != nil {
		return CourseResponse{}, err
	}

	c := &Course{
		ID:           uuid.New(),
		SchoolID:     schoolUUID,
		Name:         req.Name,
		Code:         strings.ToUpper(strings.TrimSpace(req.Code)),
		Description:  req.Description,
		Credits:      req.Credits,
		InstructorID: instructorID,
	}

	if err := qtx.Create(ctx, c); err != nil {
		s.logger.Error("create course persist failed", zap.Error(err))
		return CourseResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create course commit failed", zap.Error(err))
		return CourseResponse{}, err
	}
	s.logger.Info("create course success",
		zap.String("course_id", c.ID.String()),
		zap.String("school_id", schoolID),
		zap.String("code", c.Code),
	)

	return mapToResponse(*c), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]CourseResponse, error) {
	courses, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(courses), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (CourseResponse, error) {
	c, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return CourseResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, schoolID, id string, req UpdateCourseRequest) (CourseResponse, error) {
	s.logger.Debug("update course requested",
		zap.String("course_id", id),
		zap.String("school_id", schoolID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update course begin tx failed", zap.Error(err))
		return CourseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	c, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		return CourseResponse{}, mapRepositoryError(err)
	}

	instructorID, err := s.resolveInstructor(ctx, qtx, schoolID, req.InstructorID)
	if err != nil {
		return CourseResponse{}, err
	}

	c.Name = req.Name
	c.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	c.Description = req.Description
	c.Credits = req.Credits
	c.InstructorID = instructorID

	if err := qtx.Update(ctx, c); err != nil {
		s.logger.Error("update course persist failed",
			zap.String("course_id", id),
			zap.Error(err),
		)
		return CourseResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update course commit failed", zap.Error(err))
		return CourseResponse{}, err
	}
	s.logger.Info("update course success", zap.String("course_id", id))

	return mapToResponse(*c), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndSchool(ctx, schoolID, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete course success",
		zap.String("course_id", id),
		zap.String("school_id", schoolID),
	)
	return nil
}

func (s *service) resolveInstructor(ctx context.Context, qtx Repository, schoolID, instructorID string) (*uuid.UUID, error) {
	if instructorID == "" {
		return nil, nil
	}

	parsed, err := uuid.Parse(instructorID)
	if err != nil {
		return nil, courseerrors.ErrInstructorNotInSchool
	}

	belongs, err := qtx.InstructorBelongsToSchool(ctx, schoolID, instructorID)
	if err != nil {
		s.logger.Error("course instructor school check failed", zap.Error(err))
		return nil, err
	}
	if !belongs {
		return nil, courseerrors.ErrInstructorNotInSchool
	}
	return &parsed, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return courseerrors.ErrCourseNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return courseerrors.ErrCourseCodeAlreadyExists
	}
	if strings.Contains(err.Error(), "duplicate key value") {
		return courseerrors.ErrCourseCodeAlreadyExists
	}
	return err
}

func mapToResponse(c Course) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID.String(),
		SchoolID:    c.SchoolID.String(),
		Name:        c.Name,
		Code:        c.Code,
		Description: c.Description,
		Credits:     c.Credits,
	}
	if c.InstructorID != nil {
		v := c.InstructorID.String()
		resp.InstructorID = &v
	}
	if c.Instructor != nil {
		resp.Instructor = &CourseInstructorResponse{
			ID:       c.Instructor.ID.String(),
			FullName: c.Instructor.FullName,
			Email:    c.Instructor.Email,
		}
	}
	return resp
}

func mapToListResponse(courses []Course) []CourseResponse {
	resp := make([]CourseResponse, len(courses))
	for i, c := range courses {
		resp[i] = mapToResponse(c)
	}
	return resp
}
