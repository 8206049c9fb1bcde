package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"school-admin/internal/leave"
	leaveerrors "school-admin/internal/leave/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn            func(tx *sql.Tx) leave.Repository
	createFn            func(ctx context.Context, l *leave.Leave) error
	findAllBySchoolFn   func(ctx context.Context, schoolID string) ([]leave.Leave, error)
	findByIDAndSchoolFn func(ctx context.Context, schoolID, id string) (*leave.Leave, error)
	updateFn            func(ctx context.Context, l *leave.Leave) error
	deleteFn            func(ctx context.Context, schoolID, id string) error
	belongsFn           func(ctx context.Context, schoolID, instructorID string) (bool, error)
	overlapFn           func(ctx context.Context, schoolID, instructorID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.Leave) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAllBySchool(ctx context.Context, schoolID string) ([]leave.Leave, error) {
	if f.findAllBySchoolFn != nil {
		return f.findAllBySchoolFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*leave.Leave, error) {
	if f.findByIDAndSchoolFn != nil {
		return f.findByIDAndSchoolFn(ctx, schoolID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.Leave) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

func (f *fakeLeaveRepository) InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error) {
	if f.belongsFn != nil {
		return f.belongsFn(ctx, schoolID, instructorID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, schoolID, instructorID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	if f.overlapFn != nil {
		return f.overlapFn(ctx, schoolID, instructorID, startDate, endDate, excludeID)
	}
	return false, nil
}

type syncCall struct {
	schoolID     string
	instructorID string
	years        []int
}

type fakeSyncer struct {
	calls []syncCall
}

func (f *fakeSyncer) BestEffortSync(ctx context.Context, schoolID, instructorID string, years ...int) {
	f.calls = append(f.calls, syncCall{schoolID: schoolID, instructorID: instructorID, years: years})
}

func newTestDB(t *testing.T, commit bool) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
	return db, mock
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	actorID := uuid.New().String()
	instructorID := uuid.New().String()

	t.Run("success triggers balance sync for the start year", func(t *testing.T) {
		db, _ := newTestDB(t, true)
		defer db.Close()
		syncer := &fakeSyncer{}

		svc := leave.NewService(db, &fakeLeaveRepository{}, syncer)
		resp, err := svc.Create(ctx, schoolID, actorID, leave.CreateLeaveRequest{
			InstructorID:     instructorID,
			LeaveType:        "PTO",
			StartDate:        "2025-03-10",
			EndDate:          "2025-03-14",
			PTODaysRequested: 5,
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 5, resp.PTODaysRequested)

		assert.Len(t, syncer.calls, 1)
		assert.Equal(t, schoolID, syncer.calls[0].schoolID)
		assert.Equal(t, instructorID, syncer.calls[0].instructorID)
		assert.Equal(t, []int{2025}, syncer.calls[0].years)
	})

	t.Run("negative pto request without day count", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		syncer := &fakeSyncer{}

		svc := leave.NewService(db, &fakeLeaveRepository{}, syncer)
		_, err = svc.Create(ctx, schoolID, actorID, leave.CreateLeaveRequest{
			InstructorID: instructorID,
			LeaveType:    "PTO",
			StartDate:    "2025-03-10",
			EndDate:      "2025-03-14",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrDaysRequestedRequired)
		assert.Empty(t, syncer.calls)
	})

	t.Run("negative overlapping period", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			overlapFn: func(ctx context.Context, sid, iid string, start, end time.Time, excludeID *string) (bool, error) {
				return true, nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		_, err := svc.Create(ctx, schoolID, actorID, leave.CreateLeaveRequest{
			InstructorID:     instructorID,
			LeaveType:        "R&R",
			StartDate:        "2025-03-10",
			EndDate:          "2025-03-14",
			RRDaysRequested:  5,
			PTODaysRequested: 0,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.Empty(t, syncer.calls)
	})

	t.Run("negative instructor not in school", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()

		repo := &fakeLeaveRepository{
			belongsFn: func(ctx context.Context, sid, iid string) (bool, error) {
				return false, nil
			},
		}

		svc := leave.NewService(db, repo, &fakeSyncer{})
		_, err := svc.Create(ctx, schoolID, actorID, leave.CreateLeaveRequest{
			InstructorID:     instructorID,
			LeaveType:        "PTO",
			StartDate:        "2025-03-10",
			EndDate:          "2025-03-14",
			PTODaysRequested: 5,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInstructorNotInSchool)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	actorID := uuid.New().String()
	instructorID := uuid.New()
	leaveID := uuid.New().String()

	existing := func(status string) *leave.Leave {
		return &leave.Leave{
			ID:               uuid.MustParse(leaveID),
			SchoolID:         uuid.MustParse(schoolID),
			InstructorID:     instructorID,
			LeaveType:        "PTO",
			StartDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
			PTODaysRequested: 5,
			Status:           status,
			CreatedBy:        uuid.MustParse(actorID),
		}
	}

	t.Run("success approval triggers balance sync", func(t *testing.T) {
		db, _ := newTestDB(t, true)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return existing(leave.StatusSubmitted), nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		resp, err := svc.Approve(ctx, schoolID, actorID, leaveID)

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedBy)
		assert.Equal(t, actorID, *resp.ApprovedBy)

		assert.Len(t, syncer.calls, 1)
		assert.Equal(t, []int{2025}, syncer.calls[0].years)
	})

	t.Run("negative approving a pending request", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return existing(leave.StatusPending), nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		_, err := svc.Approve(ctx, schoolID, actorID, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
		assert.Empty(t, syncer.calls)
	})

	t.Run("negative reject without reason", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return existing(leave.StatusSubmitted), nil
			},
		}

		svc := leave.NewService(db, repo, &fakeSyncer{})
		_, err := svc.Reject(ctx, schoolID, actorID, leaveID, "")

		assert.ErrorIs(t, err, leaveerrors.ErrRejectionReasonRequired)
	})
}

func TestLeaveService_Update(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	actorID := uuid.New().String()
	instructorID := uuid.New()
	leaveID := uuid.New().String()

	t.Run("moving a request across the year boundary syncs both years", func(t *testing.T) {
		db, _ := newTestDB(t, true)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return &leave.Leave{
					ID:               uuid.MustParse(leaveID),
					SchoolID:         uuid.MustParse(schoolID),
					InstructorID:     instructorID,
					LeaveType:        "PTO",
					StartDate:        time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC),
					EndDate:          time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
					PTODaysRequested: 5,
					Status:           leave.StatusPending,
					CreatedBy:        uuid.MustParse(actorID),
				}, nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		_, err := svc.Update(ctx, schoolID, actorID, leaveID, leave.UpdateLeaveRequest{
			InstructorID:     instructorID.String(),
			LeaveType:        "PTO",
			StartDate:        "2025-01-05",
			EndDate:          "2025-01-09",
			PTODaysRequested: 5,
			Status:           leave.StatusPending,
		})

		assert.NoError(t, err)
		assert.Len(t, syncer.calls, 1)
		assert.Equal(t, []int{2024, 2025}, syncer.calls[0].years)
	})

	t.Run("reassigning an approved request while cancelling syncs both instructors", func(t *testing.T) {
		db, _ := newTestDB(t, true)
		defer db.Close()
		syncer := &fakeSyncer{}

		oldInstructorID := uuid.New()
		newInstructorID := uuid.New()
		approvedAt := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
		approvedBy := uuid.MustParse(actorID)

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return &leave.Leave{
					ID:               uuid.MustParse(leaveID),
					SchoolID:         uuid.MustParse(schoolID),
					InstructorID:     oldInstructorID,
					LeaveType:        "PTO",
					StartDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:          time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
					PTODaysRequested: 5,
					Status:           leave.StatusApproved,
					ApprovedBy:       &approvedBy,
					ApprovedAt:       &approvedAt,
					CreatedBy:        uuid.MustParse(actorID),
				}, nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		_, err := svc.Update(ctx, schoolID, actorID, leaveID, leave.UpdateLeaveRequest{
			InstructorID:     newInstructorID.String(),
			LeaveType:        "PTO",
			StartDate:        "2025-06-01",
			EndDate:          "2025-06-05",
			PTODaysRequested: 5,
			Status:           leave.StatusCanceled,
		})

		assert.NoError(t, err)
		assert.Len(t, syncer.calls, 2)
		assert.Equal(t, oldInstructorID.String(), syncer.calls[0].instructorID)
		assert.Equal(t, []int{2025}, syncer.calls[0].years)
		assert.Equal(t, newInstructorID.String(), syncer.calls[1].instructorID)
		assert.Equal(t, []int{2025}, syncer.calls[1].years)
	})

	t.Run("negative details changed during approval", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()

		approvedBy := actorID
		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return &leave.Leave{
					ID:               uuid.MustParse(leaveID),
					SchoolID:         uuid.MustParse(schoolID),
					InstructorID:     instructorID,
					LeaveType:        "PTO",
					StartDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
					EndDate:          time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
					PTODaysRequested: 5,
					Status:           leave.StatusSubmitted,
					CreatedBy:        uuid.MustParse(actorID),
				}, nil
			},
		}

		svc := leave.NewService(db, repo, &fakeSyncer{})
		_, err := svc.Update(ctx, schoolID, actorID, leaveID, leave.UpdateLeaveRequest{
			InstructorID:     instructorID.String(),
			LeaveType:        "PTO",
			StartDate:        "2025-06-01",
			EndDate:          "2025-06-05",
			PTODaysRequested: 7, // changed during approval
			Status:           leave.StatusApproved,
			ApprovedBy:       &approvedBy,
		})

		assert.ErrorIs(t, err, leaveerrors.ErrSubmittedDetailsImmutable)
	})
}

func TestLeaveService_Delete(t *testing.T) {
	ctx := context.Background()
	schoolID := uuid.New().String()
	instructorID := uuid.New()
	leaveID := uuid.New().String()

	t.Run("success triggers balance sync for the deleted year", func(t *testing.T) {
		db, _ := newTestDB(t, true)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return &leave.Leave{
					ID:               uuid.MustParse(leaveID),
					SchoolID:         uuid.MustParse(schoolID),
					InstructorID:     instructorID,
					LeaveType:        "R&R",
					StartDate:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
					EndDate:          time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
					RRDaysRequested:  10,
					Status:           leave.StatusApproved,
					CreatedBy:        instructorID,
				}, nil
			},
		}

		svc := leave.NewService(db, repo, syncer)
		err := svc.Delete(ctx, schoolID, leaveID)

		assert.NoError(t, err)
		assert.Len(t, syncer.calls, 1)
		assert.Equal(t, []int{2024}, syncer.calls[0].years)
	})

	t.Run("negative missing record", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()

		svc := leave.NewService(db, &fakeLeaveRepository{}, &fakeSyncer{})
		err := svc.Delete(ctx, schoolID, leaveID)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("negative repo failure does not sync", func(t *testing.T) {
		db, _ := newTestDB(t, false)
		defer db.Close()
		syncer := &fakeSyncer{}

		repo := &fakeLeaveRepository{
			findByIDAndSchoolFn: func(ctx context.Context, sid, id string) (*leave.Leave, error) {
				return &leave.Leave{
					ID:           uuid.MustParse(leaveID),
					SchoolID:     uuid.MustParse(schoolID),
					InstructorID: instructorID,
					StartDate:    time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
					EndDate:      time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC),
					Status:       leave.StatusApproved,
					CreatedBy:    instructorID,
				}, nil
			},
			deleteFn: func(ctx context.Context, sid, id string) error {
				return errors.New("db down")
			},
		}

		svc := leave.NewService(db, repo, syncer)
		err := svc.Delete(ctx, schoolID, leaveID)

		assert.Error(t, err)
		assert.Empty(t, syncer.calls)
	})
}
