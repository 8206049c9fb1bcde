package recruitment

import (
	"context"
	"database/sql"

	"school-admin/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=recruitment_repo.go -destination=mock/recruitment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Candidate) error
	FindAllBySchool(ctx context.Context, schoolID string) ([]Candidate, error)
	FindAllByStage(ctx context.Context, schoolID, stage string) ([]Candidate, error)
	FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Candidate, error)
	Update(ctx context.Context, c *Candidate) error
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

func (r *repository) Create(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAllBySchool(ctx context.Context, schoolID string) ([]Candidate, error) {
	var candidates []Candidate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Order("created_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (r *repository) FindAllByStage(ctx context.Context, schoolID, stage string) ([]Candidate, error) {
	var candidates []Candidate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Where("stage = ?", stage).
		Order("created_at DESC").
		Find(&candidates).Error
	return candidates, err
}

func (r *repository) FindByIDAndSchool(ctx context.Context, schoolID, id string) (*Candidate, error) {
	var c Candidate
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, schoolID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(schoolID)).
		Delete(&Candidate{}, "id = ?", id).Error
}
