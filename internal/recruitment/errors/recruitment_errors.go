package recruitmenterrors

import (
	"net/http"

	"school-admin/internal/shared/apperror"
)

var (
	ErrCandidateNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate not found",
		http.StatusNotFound,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidStageTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid candidate stage transition",
		http.StatusBadRequest,
	)
	ErrResumeNotFound = apperror.New(
		apperror.CodeNotFound,
		"candidate has no resume on file",
		http.StatusNotFound,
	)
	ErrResumeUploadFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to store resume",
		http.StatusInternalServerError,
	)
)
