package ptobalanceerrors

import (
	"net/http"

	"school-admin/internal/shared/apperror"
)

var (
	ErrInstructorNotFound = apperror.New(
		apperror.CodeNotFound,
		"instructor not found",
		http.StatusNotFound,
	)
	ErrSnapshotNotFound = apperror.New(
		apperror.CodeNotFound,
		"balance snapshot not found",
		http.StatusNotFound,
	)
	ErrInvalidInstructorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid instructor id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"year must be a valid integer",
		http.StatusBadRequest,
	)
)
