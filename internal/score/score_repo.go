package score

import (
	"context"
	"database/sql"

	"school-admin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=score_repo.go -destination=mock/score_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *TestScore) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]TestScore, error)
	FindAllByCourse(ctx context.Context, schoolID, courseID string) ([]TestScore, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*TestScore, error)
	CourseBelongsToSchool(ctx context.Context, schoolID, courseID string) (bool, error)
	Update(ctx context.Context, s *TestScore) error
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

func (r *repository) Create(ctx context.Context, s *TestScore) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]TestScore, error) {
	var scores []TestScore
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Course").
		Order("test_date DESC").
		Find(&scores).Error
	return scores, err
}

func (r *repository) FindAllByCourse(ctx context.Context, schoolID, courseID string) ([]TestScore, error) {
	var scores []TestScore
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("course_id = ?", courseID).
		Order("test_date DESC").
		Find(&scores).Error
	return scores, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*TestScore, error) {
	var s TestScore
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Preload("Course").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CourseBelongsToSchool(ctx context.Context, schoolID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("courses").
		Where("id = ?", courseID).
		Where("school_id = ?", schoolID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, s *TestScore) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&TestScore{}, "id = ?", id).Error
}
