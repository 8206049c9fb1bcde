package instructor

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"school-admin/internal/events"
	instructorerrors "school-admin/internal/instructor/errors"
	"school-admin/internal/messaging/kafka"
	"school-admin/internal/shared/contextutil"
	"school-admin/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const InstructorOptionsKeyPrefix = "instructors:options:"

func GetInstructorOptionsKey(schoolID string) string {
	return InstructorOptionsKeyPrefix + schoolID
}

//go:generate mockgen -source=instructor_service.go -destination=mock/instructor_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID string, req CreateInstructorRequest) (InstructorResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]InstructorResponse, error)
	GetOptions(ctx context.Context, schoolID string) ([]InstructorResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (InstructorResponse, error)
	Update(ctx context.Context, schoolID, id string, req UpdateInstructorRequest) (InstructorResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("instructor.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("instructor.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	schoolID string,
	req CreateInstructorRequest,
) (InstructorResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create instructor requested",
		zap.String("request_id", rid),
		zap.String("school_id", schoolID),
		zap.String("email", req.Email),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("create instructor invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return InstructorResponse{}, instructorerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create instructor begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return InstructorResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var courseID *uuid.UUID
	if req.CourseID != "" {
		ok, err := qtx.CourseExists(ctx, schoolID, req.CourseID)
		if err != nil {
			s.logger.Error("create instructor course check failed", zap.Error(err))
			return InstructorResponse{}, err
		}
		if !ok {
			s.logger.Warn("create instructor course not found in school",
				zap.String("school_id", schoolID),
				zap.String("course_id", req.CourseID),
			)
			return InstructorResponse{}, instructorerrors.ErrCourseNotInSchool
		}
		courseID = uuidPtr(req.CourseID)
	}

	if req.StaffNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, schoolID, "staff_number")
		if err != nil {
			s.logger.Error("create instructor generate staff number failed", zap.Error(err))
			return InstructorResponse{}, err
		}
		req.StaffNumber = fmt.Sprintf("INS-%06d", nextVal)
	}

	status := req.EmploymentStatus
	if status == "" {
		status = "active"
	}

	record := &Instructor{
		ID:               uuid.New(),
		SchoolID:         uuid.MustParse(schoolID),
		CourseID:         courseID,
		FullName:         req.FullName,
		Email:            req.Email,
		StaffNumber:      req.StaffNumber,
		Phone:            req.Phone,
		Nationality:      req.Nationality,
		HireDate:         hireDate,
		EmploymentStatus: status,
	}

	if err := qtx.Create(ctx, record); err != nil {
		s.logger.Error("create instructor persist failed", zap.Error(err))
		return InstructorResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.InstructorCreatedEvent{
			EventType:    "instructor_created",
			RequestID:    rid,
			InstructorID: record.ID.String(),
			SchoolID:     schoolID,
			OccurredAt:   time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return InstructorResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "instructor",
			AggregateID:   record.ID.String(),
			EventType:     event.EventType,
			Topic:         events.InstructorCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create instructor outbox persist failed",
				zap.String("instructor_id", record.ID.String()),
				zap.Error(err),
			)
			return InstructorResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create instructor commit failed", zap.String("request_id", rid), zap.Error(err))
		return InstructorResponse{}, err
	}

	s.invalidateOptionsCache(ctx, schoolID)

	s.logger.Info("create instructor success",
		zap.String("request_id", rid),
		zap.String("instructor_id", record.ID.String()),
		zap.String("staff_number", record.StaffNumber),
	)

	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]InstructorResponse, error) {
	s.logger.Debug("get all instructors requested", zap.String("school_id", schoolID))
	instructors, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		s.logger.Error("get all instructors failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(instructors), nil
}

func (s *service) GetOptions(ctx context.Context, schoolID string) ([]InstructorResponse, error) {
	cacheKey := GetInstructorOptionsKey(schoolID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []InstructorResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// singleflight keeps a cold cache from fanning out into N identical
	// queries when every admin opens the roster form at once.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		instructors, err := s.repo.FindOptionsBySchool(ctx, schoolID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(instructors)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]InstructorResponse), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (InstructorResponse, error) {
	s.logger.Debug("get instructor by id requested",
		zap.String("school_id", schoolID),
		zap.String("instructor_id", id),
	)
	record, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("get instructor by id failed", zap.Error(err))
		return InstructorResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*record), nil
}

func (s *service) Update(
	ctx context.Context,
	schoolID, id string,
	req UpdateInstructorRequest,
) (InstructorResponse, error) {
	s.logger.Debug("update instructor requested",
		zap.String("school_id", schoolID),
		zap.String("instructor_id", id),
	)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		s.logger.Warn("update instructor invalid hire_date",
			zap.String("hire_date", req.HireDate),
			zap.Error(err),
		)
		return InstructorResponse{}, instructorerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update instructor begin tx failed", zap.Error(err))
		return InstructorResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var courseID *uuid.UUID
	if req.CourseID != "" {
		ok, err := qtx.CourseExists(ctx, schoolID, req.CourseID)
		if err != nil {
			s.logger.Error("update instructor course check failed", zap.Error(err))
			return InstructorResponse{}, err
		}
		if !ok {
			return InstructorResponse{}, instructorerrors.ErrCourseNotInSchool
		}
		courseID = uuidPtr(req.CourseID)
	}

	record, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		s.logger.Error("update instructor fetch existing failed", zap.Error(err))
		return InstructorResponse{}, mapRepositoryError(err)
	}

	record.FullName = req.FullName
	record.Email = req.Email
	record.CourseID = courseID
	if req.StaffNumber != "" {
		record.StaffNumber = req.StaffNumber
	}
	record.Phone = req.Phone
	record.Nationality = req.Nationality
	record.HireDate = hireDate
	if req.EmploymentStatus != "" {
		record.EmploymentStatus = req.EmploymentStatus
	}

	if err := qtx.Update(ctx, record); err != nil {
		s.logger.Error("update instructor persist failed", zap.Error(err))
		return InstructorResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update instructor commit failed", zap.Error(err))
		return InstructorResponse{}, err
	}

	s.invalidateOptionsCache(ctx, schoolID)

	s.logger.Info("update instructor success", zap.String("instructor_id", id))

	return mapToResponse(*record), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	s.logger.Debug("delete instructor requested",
		zap.String("school_id", schoolID),
		zap.String("instructor_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete instructor begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		s.logger.Error("delete instructor failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete instructor commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx, schoolID)

	s.logger.Info("delete instructor success", zap.String("instructor_id", id))
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, schoolID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetInstructorOptionsKey(schoolID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate instructor options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(record Instructor) InstructorResponse {
	resp := InstructorResponse{
		ID:               record.ID.String(),
		FullName:         record.FullName,
		Email:            record.Email,
		StaffNumber:      record.StaffNumber,
		Phone:            record.Phone,
		Nationality:      record.Nationality,
		HireDate:         record.HireDate.Format("2006-01-02"),
		EmploymentStatus: record.EmploymentStatus,
		SchoolID:         record.SchoolID.String(),
		CourseID:         uuidToString(record.CourseID),
	}
	if record.Course != nil {
		resp.Course = &InstructorCourseResponse{
			ID:   record.Course.ID.String(),
			Name: record.Course.Name,
		}
	}
	return resp
}

func mapToListResponse(instructors []Instructor) []InstructorResponse {
	res := make([]InstructorResponse, len(instructors))
	for i, record := range instructors {
		res[i] = mapToResponse(record)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}
