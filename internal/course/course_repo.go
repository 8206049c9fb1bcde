package course

import (
	"context"
	"database/sql"

	"school-admin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=course_repo.go -destination=mock/course_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Course) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Course, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Course, error)
	InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error)
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, schoolID, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Course, error) {
	var courses []Course
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Instructor").
		Order("code ASC").
		Find(&courses).Error
	return courses, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Course, error) {
	var c Course
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Instructor").
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
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

func (r *repository) Update(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Course{}, "id = ?", id).Error
}
