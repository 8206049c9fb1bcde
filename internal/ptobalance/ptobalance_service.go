package ptobalance

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	ptobalanceerrors "school-admin/internal/ptobalance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAnnualAllowanceDays is the allowance granted to a freshly
// created snapshot and the ceiling applied when recomputing consumption.
//
// NOTE: the recompute clamp uses this fixed value, not the snapshot's
// own TotalDays. An operator-raised allowance therefore widens
// RemainingDays but never the recorded consumption.
// TODO: confirm with the registrar whether custom allowances should
// raise the cap before changing this.
const DefaultAnnualAllowanceDays = 21

const (
	leaveTypePTO = "pto"
	leaveTypeRR  = "r&r"
)

//go:generate mockgen -source=ptobalance_service.go -destination=mock/ptobalance_service_mock.go -package=mock
type Service interface {
	Synchronize(ctx context.Context, schoolID, instructorID string, year int) (SnapshotResponse, error)
	SynchronizeAll(ctx context.Context, schoolID string, year int) ([]SyncOutcome, error)
	BestEffortSync(ctx context.Context, schoolID, instructorID string, years ...int)
	GetSnapshot(ctx context.Context, schoolID, instructorID string, year int) (SnapshotResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	locks  syncLocks
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ptobalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ptobalance.service")
	}
	return &service{repo: repo, logger: l}
}

// syncLocks hands out one mutex per (school, instructor, year) so a
// recompute's read-modify-write of the snapshot row never interleaves
// with a concurrent recompute of the same row. Without it the last
// writer silently wins.
type syncLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *syncLocks) acquire(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

func (s *service) Synchronize(ctx context.Context, schoolID, instructorID string, year int) (SnapshotResponse, error) {
	s.logger.Debug("synchronize balance requested",
		zap.String("school_id", schoolID),
		zap.String("instructor_id", instructorID),
		zap.Int("year", year),
	)

	instructorUUID, err := uuid.Parse(instructorID)
	if err != nil {
		return SnapshotResponse{}, ptobalanceerrors.ErrInvalidInstructorID
	}
	schoolUUID, err := uuid.Parse(schoolID)
	if err != nil {
		return SnapshotResponse{}, ptobalanceerrors.ErrInvalidInstructorID
	}

	lock := s.locks.acquire(schoolID + ":" + instructorID + ":" + strconv.Itoa(year))
	lock.Lock()
	defer lock.Unlock()

	exists, err := s.repo.InstructorExists(ctx, schoolID, instructorID)
	if err != nil {
		s.logger.Error("synchronize balance instructor check failed", zap.Error(err))
		return SnapshotResponse{}, err
	}
	if !exists {
		return SnapshotResponse{}, ptobalanceerrors.ErrInstructorNotFound
	}

	// The ledger is authoritative: only approved records whose start
	// date falls inside the calendar year count. A request that spans
	// the year boundary is attributed entirely to its start year.
	rows, err := s.repo.ListApprovedLeave(ctx, schoolID, instructorID, year)
	if err != nil {
		s.logger.Error("synchronize balance ledger read failed", zap.Error(err))
		return SnapshotResponse{}, err
	}

	usedDays := sumConsumedDays(rows)
	if usedDays > DefaultAnnualAllowanceDays {
		usedDays = DefaultAnnualAllowanceDays
	}

	now := time.Now().UTC()

	snapshot, err := s.repo.GetSnapshot(ctx, schoolID, instructorID, year)
	if err != nil {
		s.logger.Error("synchronize balance snapshot read failed", zap.Error(err))
		return SnapshotResponse{}, err
	}

	if snapshot == nil {
		snapshot = &BalanceSnapshot{
			ID:           uuid.New(),
			SchoolID:     schoolUUID,
			InstructorID: instructorUUID,
			Year:         year,
			TotalDays:    DefaultAnnualAllowanceDays,
			Adjustments:  0,
		}
	}

	snapshot.UsedDays = usedDays
	remaining := snapshot.TotalDays - usedDays + snapshot.Adjustments
	if remaining < 0 {
		remaining = 0
	}
	snapshot.RemainingDays = remaining
	snapshot.LastUpdated = now

	if err := s.repo.UpsertSnapshot(ctx, snapshot); err != nil {
		s.logger.Error("synchronize balance persist failed",
			zap.String("instructor_id", instructorID),
			zap.Int("year", year),
			zap.Error(err),
		)
		return SnapshotResponse{}, err
	}

	s.logger.Info("synchronize balance success",
		zap.String("instructor_id", instructorID),
		zap.Int("year", year),
		zap.Int("used_days", snapshot.UsedDays),
		zap.Int("remaining_days", snapshot.RemainingDays),
	)

	return mapToResponse(*snapshot), nil
}

// sumConsumedDays pools PTO and R&R day counts into a single figure.
// Both categories draw from the same annual allowance.
func sumConsumedDays(rows []ApprovedLeaveRow) int {
	total := 0
	for _, row := range rows {
		switch strings.ToLower(strings.TrimSpace(row.LeaveType)) {
		case leaveTypePTO:
			total += row.PTODaysRequested
		case leaveTypeRR:
			total += row.RRDaysRequested
		}
	}
	return total
}

func (s *service) SynchronizeAll(ctx context.Context, schoolID string, year int) ([]SyncOutcome, error) {
	instructors, err := s.repo.ListInstructors(ctx, schoolID)
	if err != nil {
		s.logger.Error("synchronize all list instructors failed", zap.Error(err))
		return nil, err
	}

	// Strictly sequential: one instructor's failure is recorded and the
	// loop moves on.
	outcomes := make([]SyncOutcome, 0, len(instructors))
	for _, instructor := range instructors {
		outcome := SyncOutcome{
			InstructorID:   instructor.ID,
			InstructorName: instructor.FullName,
		}

		resp, err := s.Synchronize(ctx, schoolID, instructor.ID, year)
		if err != nil {
			s.logger.Warn("synchronize all instructor failed",
				zap.String("instructor_id", instructor.ID),
				zap.Int("year", year),
				zap.Error(err),
			)
			outcome.Error = err.Error()
			outcomes = append(outcomes, outcome)
			continue
		}

		outcome.Succeeded = true
		outcome.UsedDays = &resp.UsedDays
		outcome.RemainingDays = &resp.RemainingDays
		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// BestEffortSync is the trigger-site wrapper: a failed recompute is
// logged and discarded so the leave mutation that caused it always
// completes. The balance stays stale until the next successful sync.
func (s *service) BestEffortSync(ctx context.Context, schoolID, instructorID string, years ...int) {
	for _, year := range years {
		if _, err := s.Synchronize(ctx, schoolID, instructorID, year); err != nil {
			s.logger.Warn("best-effort balance sync failed",
				zap.String("school_id", schoolID),
				zap.String("instructor_id", instructorID),
				zap.Int("year", year),
				zap.Error(err),
			)
		}
	}
}

func (s *service) GetSnapshot(ctx context.Context, schoolID, instructorID string, year int) (SnapshotResponse, error) {
	snapshot, err := s.repo.GetSnapshot(ctx, schoolID, instructorID, year)
	if err != nil {
		return SnapshotResponse{}, err
	}
	if snapshot == nil {
		return SnapshotResponse{}, ptobalanceerrors.ErrSnapshotNotFound
	}
	return mapToResponse(*snapshot), nil
}

func mapToResponse(s BalanceSnapshot) SnapshotResponse {
	return SnapshotResponse{
		ID:            s.ID.String(),
		SchoolID:      s.SchoolID.String(),
		InstructorID:  s.InstructorID.String(),
		Year:          s.Year,
		TotalDays:     s.TotalDays,
		UsedDays:      s.UsedDays,
		RemainingDays: s.RemainingDays,
		Adjustments:   s.Adjustments,
		LastUpdated:   s.LastUpdated.Format(time.RFC3339),
	}
}
