package instructor

import (
	"context"
	"database/sql"

	"school-admin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=instructor_repo.go -destination=mock/instructor_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, instructor *Instructor) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Instructor, error)
	FindOptionsBySchool(ctx context.Context, schoolID string) ([]Instructor, error)
	FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Instructor, error)
	FindByID(ctx context.Context, id string) (*Instructor, error)
	CourseExists(ctx context.Context, schoolID, courseID string) (bool, error)
	Update(ctx context.Context, instructor *Instructor) error
	Delete(ctx context.Context, schoolID string, id string) error
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

func (r *repository) Create(ctx context.Context, instructor *Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Instructor, error) {
	var instructors []Instructor
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Course").
		Find(&instructors).Error
	return instructors, err
}

// FindOptionsBySchool returns the slim projection used to populate
// dropdowns; no preloads.
func (r *repository) FindOptionsBySchool(ctx context.Context, schoolID string) ([]Instructor, error) {
	var instructors []Instructor
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Select("id, school_id, full_name, email, staff_number, hire_date, employment_status").
		Order("full_name ASC").
		Find(&instructors).Error
	return instructors, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID string, id string) (*Instructor, error) {
	var instructor Instructor
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Course").
		First(&instructor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Instructor, error) {
	var instructor Instructor
	err := r.db.WithContext(ctx).First(&instructor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &instructor, nil
}

func (r *repository) CourseExists(ctx context.Context, schoolID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("courses").
		Where("id = ?", courseID).
		Where("school_id = ?", schoolID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, instructor *Instructor) error {
	return r.db.WithContext(ctx).Save(instructor).Error
}

func (r *repository) Delete(ctx context.Context, schoolID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Instructor{}, "id = ?", id).Error
}
