package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	leaveerrors "school-admin/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCanceled  = "CANCELLED"
)

const (
	TypePTO       = "PTO"
	TypeRR        = "R&R"
	TypeSick      = "SICK"
	TypeUnpaid    = "UNPAID"
	TypeEmergency = "EMERGENCY"
)

// BalanceSyncer recomputes an instructor's annual balance snapshot from
// the leave ledger. Failures are logged by the implementation and never
// surface here; a leave mutation must not fail because the snapshot
// could not be refreshed.
type BalanceSyncer interface {
	BestEffortSync(ctx context.Context, schoolID, instructorID string, years ...int)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, schoolID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, schoolID string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, schoolID, id string) (LeaveResponse, error)
	Update(ctx context.Context, schoolID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	Submit(ctx context.Context, schoolID, actorID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, schoolID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, schoolID, actorID, id, rejectionReason string) (LeaveResponse, error)
	Delete(ctx context.Context, schoolID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	syncer BalanceSyncer
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, syncer BalanceSyncer, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, syncer: syncer, logger: l}
}

func (s *service) Create(ctx context.Context, schoolID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("create leave requested",
		zap.String("school_id", schoolID),
		zap.String("actor_id", actorID),
		zap.String("instructor_id", req.InstructorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	schoolUUID, instructorUUID, createdByUUID, startDate, endDate, err := validateCreateRequest(schoolID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := validateDaysRequested(req.LeaveType, req.PTODaysRequested, req.RRDaysRequested); err != nil {
		return LeaveResponse{}, err
	}
	returnDate, err := parseOptionalDate(req.ReturnDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.InstructorBelongsToSchool(ctx, schoolID, req.InstructorID)
	if err != nil {
		s.logger.Error("create leave instructor school check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrInstructorNotInSchool
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, schoolID, req.InstructorID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("create leave overlap detected",
			zap.String("school_id", schoolID),
			zap.String("instructor_id", req.InstructorID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	l := &Leave{
		ID:               uuid.New(),
		SchoolID:         schoolUUID,
		InstructorID:     instructorUUID,
		LeaveType:        req.LeaveType,
		StartDate:        startDate,
		EndDate:          endDate,
		ReturnDate:       returnDate,
		PTODaysRequested: req.PTODaysRequested,
		RRDaysRequested:  req.RRDaysRequested,
		Destination:      req.Destination,
		Comments:         req.Comments,
		Status:           StatusPending,
		CreatedBy:        createdByUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("school_id", schoolID),
		zap.String("instructor_id", req.InstructorID),
	)

	s.triggerBalanceSync(ctx, nil, l)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, schoolID string) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, schoolID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) Update(ctx context.Context, schoolID, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("school_id", schoolID),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	if _, err := uuid.Parse(schoolID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidSchoolID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	instructorID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidInstructorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	returnDate, err := parseOptionalDate(req.ReturnDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if err := validateDaysRequested(req.LeaveType, req.PTODaysRequested, req.RRDaysRequested); err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	before := *l

	currentStatus := l.Status
	if !isAllowedStatusTransition(currentStatus, req.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	belongs, err := qtx.InstructorBelongsToSchool(ctx, schoolID, req.InstructorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !belongs {
		return LeaveResponse{}, leaveerrors.ErrInstructorNotInSchool
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, schoolID, req.InstructorID, startDate, endDate, &id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}
	if currentStatus == StatusSubmitted && req.Status == StatusApproved {
		if req.InstructorID != l.InstructorID.String() ||
			req.LeaveType != l.LeaveType ||
			!startDate.Equal(l.StartDate) ||
			!endDate.Equal(l.EndDate) ||
			req.PTODaysRequested != l.PTODaysRequested ||
			req.RRDaysRequested != l.RRDaysRequested {
			return LeaveResponse{}, leaveerrors.ErrSubmittedDetailsImmutable
		}
	}

	l.InstructorID = instructorID
	l.LeaveType = req.LeaveType
	l.StartDate = startDate
	l.EndDate = endDate
	l.ReturnDate = returnDate
	l.PTODaysRequested = req.PTODaysRequested
	l.RRDaysRequested = req.RRDaysRequested
	l.Destination = req.Destination
	l.Comments = req.Comments
	l.Status = req.Status

	if req.Status == StatusApproved {
		if req.ApprovedBy == nil || *req.ApprovedBy == "" {
			return LeaveResponse{}, leaveerrors.ErrApprovedByRequired
		}
		approverID, err := uuid.Parse(*req.ApprovedBy)
		if err != nil {
			return LeaveResponse{}, leaveerrors.ErrInvalidApprovedBy
		}
		l.ApprovedBy = &approverID
		now := time.Now().UTC()
		l.ApprovedAt = &now
	} else {
		l.ApprovedBy = nil
		l.ApprovedAt = nil
	}
	if req.Status == StatusRejected {
		if req.RejectionReason == nil || *req.RejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.RejectionReason = req.RejectionReason
	} else {
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("update leave persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update leave commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("update leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
	)

	s.triggerBalanceSync(ctx, &before, l)

	return mapToResponse(*l), nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return currentStatus == StatusPending
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusSubmitted || targetStatus == StatusCanceled
	case StatusSubmitted:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		return targetStatus == StatusCanceled
	default:
		return false
	}
}

func (s *service) Submit(ctx context.Context, schoolID, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, schoolID, actorID, id, StatusSubmitted, nil)
}

func (s *service) Approve(ctx context.Context, schoolID, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, schoolID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, schoolID, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, schoolID, actorID, id, StatusRejected, &rejectionReason)
}

func (s *service) transitionLeaveStatus(ctx context.Context, schoolID, actorID, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("school_id", schoolID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(schoolID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidSchoolID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	before := *l

	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	default:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)

	s.triggerBalanceSync(ctx, &before, l)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, schoolID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndSchool(ctx, schoolID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, schoolID, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.triggerBalanceSync(ctx, l, nil)

	return nil
}

// triggerBalanceSync fires the best-effort snapshot recompute after a
// leave mutation has committed. Every distinct (instructor, start year)
// touched by the record's before or after state gets a sync: moving a
// request across the year boundary refreshes both years, and
// reassigning it to another instructor refreshes both instructors.
func (s *service) triggerBalanceSync(ctx context.Context, before, after *Leave) {
	if s.syncer == nil {
		return
	}

	type syncTarget struct {
		schoolID     string
		instructorID string
		years        []int
	}
	targets := make([]syncTarget, 0, 2)

	add := func(l *Leave) {
		if l == nil {
			return
		}
		schoolID := l.SchoolID.String()
		instructorID := l.InstructorID.String()
		year := l.StartDate.Year()
		for i := range targets {
			if targets[i].schoolID != schoolID || targets[i].instructorID != instructorID {
				continue
			}
			for _, y := range targets[i].years {
				if y == year {
					return
				}
			}
			targets[i].years = append(targets[i].years, year)
			return
		}
		targets = append(targets, syncTarget{schoolID: schoolID, instructorID: instructorID, years: []int{year}})
	}
	add(before)
	add(after)

	for _, t := range targets {
		s.syncer.BestEffortSync(ctx, t.schoolID, t.instructorID, t.years...)
	}
}

func validateDaysRequested(leaveType string, ptoDays, rrDays int) error {
	switch strings.ToUpper(strings.TrimSpace(leaveType)) {
	case TypePTO:
		if ptoDays < 1 {
			return leaveerrors.ErrDaysRequestedRequired
		}
	case TypeRR:
		if rrDays < 1 {
			return leaveerrors.ErrDaysRequestedRequired
		}
	}
	return nil
}

func validateCreateRequest(schoolID, actorID string, req CreateLeaveRequest) (uuid.UUID, uuid.UUID, uuid.UUID, time.Time, time.Time, error) {
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidSchoolID
	}
	instructorUUID, err := uuid.Parse(req.InstructorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidInstructorID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidActorID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, uuid.Nil, uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return schoolUUID, instructorUUID, createdByUUID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:               l.ID.String(),
		SchoolID:         l.SchoolID.String(),
		InstructorID:     l.InstructorID.String(),
		LeaveType:        l.LeaveType,
		StartDate:        l.StartDate.Format("2006-01-02"),
		EndDate:          l.EndDate.Format("2006-01-02"),
		PTODaysRequested: l.PTODaysRequested,
		RRDaysRequested:  l.RRDaysRequested,
		Destination:      l.Destination,
		Comments:         l.Comments,
		Status:           l.Status,
		CreatedBy:        l.CreatedBy.String(),
	}
	if l.Instructor != nil {
		resp.InstructorName = l.Instructor.FullName
	}
	if l.ReturnDate != nil {
		v := l.ReturnDate.Format("2006-01-02")
		resp.ReturnDate = &v
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
