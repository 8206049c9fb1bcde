package ptobalance

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	ptobalanceerrors "school-admin/internal/ptobalance/errors"
	"school-admin/internal/shared/apperror"
	"school-admin/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ptobalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ptobalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("pto balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// SyncAll recomputes every instructor's snapshot for the requested
// year. Per-instructor failures land in the outcome list; the batch
// itself still answers 200.
func (h *Handler) SyncAll(c *gin.Context) {
	schoolID := c.GetString("school_id")

	var req SyncAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http sync all validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "year must be a valid integer", err.Error())
		return
	}

	outcomes, err := h.service.SynchronizeAll(c.Request.Context(), schoolID, req.Year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Succeeded {
			succeeded++
		}
	}

	response.Success(c, http.StatusOK, SyncAllResponse{
		Year:     req.Year,
		Message:  fmt.Sprintf("synchronized %d of %d instructors for %d", succeeded, len(outcomes), req.Year),
		Outcomes: outcomes,
	}, nil)
}

func (h *Handler) Sync(c *gin.Context) {
	schoolID := c.GetString("school_id")
	instructorID := c.Param("instructorId")

	year, err := yearFromQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.Synchronize(c.Request.Context(), schoolID, instructorID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByInstructor(c *gin.Context) {
	schoolID := c.GetString("school_id")
	instructorID := c.Param("instructorId")

	year, err := yearFromQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp, err := h.service.GetSnapshot(c.Request.Context(), schoolID, instructorID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func yearFromQuery(c *gin.Context) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().UTC().Year(), nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ptobalanceerrors.ErrInvalidYear
	}
	return year, nil
}
