package scoreerrors

import (
	"net/http"

	"school-admin/internal/shared/apperror"
)

var (
	ErrScoreNotFound = apperror.New(
		apperror.CodeNotFound,
		"test score not found",
		http.StatusNotFound,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidCourseID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid course id",
		http.StatusBadRequest,
	)
	ErrInvalidTestDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid test date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrScoreExceedsMax = apperror.New(
		apperror.CodeInvalidInput,
		"score cannot exceed max_score",
		http.StatusBadRequest,
	)
	ErrInvalidAdministeredBy = apperror.New(
		apperror.CodeInvalidInput,
		"invalid administered_by",
		http.StatusBadRequest,
	)
	ErrCourseNotInSchool = apperror.New(
		apperror.CodeInvalidInput,
		"course does not belong to this school",
		http.StatusBadRequest,
	)
)
