package instructorerrors

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
	ErrInstructorAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"instructor with the same email already exists",
		http.StatusConflict,
	)
	ErrStaffNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"staff number already exists in this school",
		http.StatusConflict,
	)
	ErrInvalidInstructorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid instructor id",
		http.StatusBadRequest,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrCourseNotInSchool = apperror.New(
		apperror.CodeInvalidInput,
		"course not found for this school",
		http.StatusBadRequest,
	)
	ErrInvalidHireDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid hire_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
