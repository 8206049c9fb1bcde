package ptobalance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApprovedLeaveRow is the slice of a leave record the synchronizer
// needs; it deliberately avoids importing the leave package.
type ApprovedLeaveRow struct {
	LeaveType        string
	PTODaysRequested int
	RRDaysRequested  int
}

type InstructorRow struct {
	ID       string
	FullName string
}

//go:generate mockgen -source=ptobalance_repo.go -destination=mock/ptobalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	InstructorExists(ctx context.Context, schoolID, instructorID string) (bool, error)
	ListInstructors(ctx context.Context, schoolID string) ([]InstructorRow, error)
	ListApprovedLeave(ctx context.Context, schoolID, instructorID string, year int) ([]ApprovedLeaveRow, error)
	GetSnapshot(ctx context.Context, schoolID, instructorID string, year int) (*BalanceSnapshot, error)
	UpsertSnapshot(ctx context.Context, snapshot *BalanceSnapshot) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) InstructorExists(ctx context.Context, schoolID, instructorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("instructors").
		Where("id = ?", instructorID).
		Where("school_id = ?", schoolID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListInstructors(ctx context.Context, schoolID string) ([]InstructorRow, error) {
	var rows []InstructorRow
	err := r.db.WithContext(ctx).
		Table("instructors").
		Select("id, full_name").
		Where("school_id = ?", schoolID).
		Where("deleted_at IS NULL").
		Order("full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListApprovedLeave(ctx context.Context, schoolID, instructorID string, year int) ([]ApprovedLeaveRow, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var rows []ApprovedLeaveRow
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select("leave_type, pto_days_requested, rr_days_requested").
		Where("school_id = ?", schoolID).
		Where("instructor_id = ?", instructorID).
		Where("LOWER(status) = ?", "approved").
		Where("start_date BETWEEN ? AND ?", yearStart, yearEnd).
		Where("deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetSnapshot(ctx context.Context, schoolID, instructorID string, year int) (*BalanceSnapshot, error) {
	var s BalanceSnapshot
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Where("instructor_id = ?", instructorID).
		Where("year = ?", year).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) UpsertSnapshot(ctx context.Context, snapshot *BalanceSnapshot) error {
	// Single atomic upsert on the (instructor, year) key; the derived
	// fields are overwritten, the operator-set fields only apply on
	// first insert.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "instructor_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"used_days", "remaining_days", "last_updated", "updated_at",
			}),
		}).
		Create(snapshot).Error
}
