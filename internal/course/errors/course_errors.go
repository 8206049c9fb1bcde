package courseerrors

import (
	"net/http"

	"school-admin/internal/shared/apperror"
)

var (
	ErrCourseNotFound = apperror.New(
		apperror.CodeNotFound,
		"course not found",
		http.StatusNotFound,
	)
	ErrCourseCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"course code already exists in this school",
		http.StatusConflict,
	)
	ErrInvalidCourseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid course id",
		http.StatusBadRequest,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInstructorNotInSchool = apperror.New(
		apperror.CodeInvalidInput,
		"assigned instructor does not belong to this school",
		http.StatusBadRequest,
	)
)
