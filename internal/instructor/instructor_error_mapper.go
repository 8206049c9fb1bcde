package instructor

import (
	"errors"
	"strings"

	instructorerrors "school-admin/internal/instructor/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return instructorerrors.ErrInstructorNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_staff_number":
				return instructorerrors.ErrStaffNumberAlreadyExists
			case "uq_instructor_email":
				return instructorerrors.ErrInstructorAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_staff_number") {
		return instructorerrors.ErrStaffNumberAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_instructor_email") {
		return instructorerrors.ErrInstructorAlreadyExists
	}

	return err
}
