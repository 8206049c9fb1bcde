package recruitment

import (
	"fmt"
	"io"
	"net/http"

	"school-admin/internal/shared/apperror"
	"school-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resumes larger than this are rejected before touching storage
const maxResumeSize = 10 << 20

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("recruitment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("recruitment request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create candidate validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), schoolID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	schoolID := c.GetString("school_id")
	stage := c.Query("stage")

	resp, err := h.service.GetAll(c.Request.Context(), schoolID, stage)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), schoolID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	var req UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update candidate validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), schoolID, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TransitionStage(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	var req TransitionStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http transition candidate stage validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	resp, err := h.service.TransitionStage(c.Request.Context(), schoolID, id, req.Stage)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadResume(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "resume file is required", err.Error())
		return
	}
	if fileHeader.Size > maxResumeSize {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "resume exceeds maximum size of 10MB", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read resume file", err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := h.service.UploadResume(c.Request.Context(), schoolID, id, file, fileHeader.Size, contentType)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadResume(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	reader, candidateName, err := h.service.DownloadResume(c.Request.Context(), schoolID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "resume-"+candidateName))
	c.Header("Content-Type", "application/octet-stream")
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Error("stream resume failed",
			zap.String("candidate_id", id),
			zap.Error(err),
		)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	schoolID := c.GetString("school_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), schoolID, id); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
