package evaluation

import (
	"context"
	"database/sql"

	"school-admin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=evaluation_repo.go -destination=mock/evaluation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Evaluation) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Evaluation, error)
	FindAllByInstructor(ctx context.Context, schoolID, instructorID string) ([]Evaluation, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Evaluation, error)
	InstructorBelongsToSchool(ctx context.Context, schoolID, instructorID string) (bool, error)
	Update(ctx context.Context, e *Evaluation) error
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

func (r *repository) Create(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Evaluation, error) {
	var evals []Evaluation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Instructor").
		Order("evaluation_date DESC").
		Find(&evals).Error
	return evals, err
}

func (r *repository) FindAllByInstructor(ctx context.Context, schoolID, instructorID string) ([]Evaluation, error) {
	var evals []Evaluation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("instructor_id = ?", instructorID).
		Order("evaluation_date DESC").
		Find(&evals).Error
	return evals, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Evaluation, error) {
	var e Evaluation
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Instructor").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
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

func (r *repository) Update(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Evaluation{}, "id = ?", id).Error
}
