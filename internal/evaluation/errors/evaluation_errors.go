package evaluationerrors

import (
	"net/http"

	"school-admin/internal/shared/apperror"
)

var (
	ErrEvaluationNotFound = apperror.New(
		apperror.CodeNotFound,
		"evaluation not found",
		http.StatusNotFound,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidEvaluatorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid evaluator id",
		http.StatusBadRequest,
	)
	ErrInvalidEvaluationDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid evaluation date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrRatingOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"overall_rating must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrInstructorNotInSchool = apperror.New(
		apperror.CodeInvalidInput,
		"instructor does not belong to this school",
		http.StatusBadRequest,
	)
)
