package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// resolveEffectiveRole overrides the stored role with the highest-ranked
// role assigned through the rbac tables, when the account is linked to
// an instructor record.
func (r *repository) resolveEffectiveRole(ctx context.Context, user *User) error {
	if user.InstructorID == nil || *user.InstructorID == uuid.Nil {
		if user.Role == "" {
			user.Role = "INSTRUCTOR"
		}
		user.Role = strings.ToUpper(strings.TrimSpace(user.Role))
		return nil
	}

	var roleName string
	err := r.db.WithContext(ctx).
		Table("instructor_roles ir").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = ir.role_id").
		Where("ir.instructor_id = ?", *user.InstructorID).
		Where("roles.school_id = ?", user.SchoolID).
		Order(`
			CASE UPPER(roles.name)
				WHEN 'SUPERADMIN' THEN 1
				WHEN 'ADMIN' THEN 2
				WHEN 'REGISTRAR' THEN 3
				WHEN 'DEPARTMENT_HEAD' THEN 4
				WHEN 'INSTRUCTOR' THEN 5
				ELSE 99
			END ASC`).
		Limit(1).
		Scan(&roleName).Error
	if err != nil {
		return err
	}

	if strings.TrimSpace(roleName) == "" {
		roleName = user.Role
	}
	if strings.TrimSpace(roleName) == "" {
		roleName = "INSTRUCTOR"
	}
	user.Role = strings.ToUpper(strings.TrimSpace(roleName))
	return nil
}
