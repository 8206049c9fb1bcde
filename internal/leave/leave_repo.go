package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Leave, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	Delete(ctx context.Context, schoolID, id string) error
	InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, schoolID, instructorID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Preload("Instructor").
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Preload("Instructor").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Delete(&Leave{}, "id = ?", id).Error
}

func (r *repository) InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("instructors").
		Where("id = ?", instructorID).
		Where("school_id = ?", schoolID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, schoolID, instructorID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("school_id = ?", schoolID).
		Where("instructor_id = ?", instructorID).
		Where("status NOT IN ?", []string{StatusCanceled, StatusRejected}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
