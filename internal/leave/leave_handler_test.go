package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-admin/internal/leave"
	leaveerrors "school-admin/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveService struct {
	createFn  func(ctx context.Context, schoolID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	getAllFn  func(ctx context.Context, schoolID string) ([]leave.LeaveResponse, error)
	getByIDFn func(ctx context.Context, schoolID, id string) (leave.LeaveResponse, error)
	updateFn  func(ctx context.Context, schoolID, actorID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	submitFn  func(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error)
	approveFn func(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error)
	rejectFn  func(ctx context.Context, schoolID, actorID, id, reason string) (leave.LeaveResponse, error)
	deleteFn  func(ctx context.Context, schoolID, id string) error
}

func (f *fakeLeaveService) Create(ctx context.Context, schoolID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if f.createFn != nil {
		return f.createFn(ctx, schoolID, actorID, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) GetAll(ctx context.Context, schoolID string) ([]leave.LeaveResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, schoolID)
	}
	return nil, nil
}

func (f *fakeLeaveService) GetByID(ctx context.Context, schoolID, id string) (leave.LeaveResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, schoolID, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Update(ctx context.Context, schoolID, actorID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, schoolID, actorID, id, req)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Submit(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error) {
	if f.submitFn != nil {
		return f.submitFn(ctx, schoolID, actorID, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Approve(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error) {
	if f.approveFn != nil {
		return f.approveFn(ctx, schoolID, actorID, id)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Reject(ctx context.Context, schoolID, actorID, id, reason string) (leave.LeaveResponse, error) {
	if f.rejectFn != nil {
		return f.rejectFn(ctx, schoolID, actorID, id, reason)
	}
	return leave.LeaveResponse{}, nil
}

func (f *fakeLeaveService) Delete(ctx context.Context, schoolID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, schoolID, id)
	}
	return nil
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func performRequest(handler gin.HandlerFunc, method, target string, body []byte, params gin.Params) (*httptest.ResponseRecorder, envelope) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set("school_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	handler(c)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, schoolID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, "PTO", req.LeaveType)
				assert.Equal(t, 5, req.PTODaysRequested)
				return leave.LeaveResponse{
					ID:               uuid.New().String(),
					LeaveType:        req.LeaveType,
					PTODaysRequested: req.PTODaysRequested,
					Status:           leave.StatusPending,
				}, nil
			},
		}
		handler := leave.NewHandler(svc)

		body, _ := json.Marshal(gin.H{
			"instructor_id":      uuid.New().String(),
			"leave_type":         "PTO",
			"start_date":         "2025-03-10",
			"end_date":           "2025-03-14",
			"pto_days_requested": 5,
		})

		w, env := performRequest(handler.Create, http.MethodPost, "/leaves", body, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("negative unknown leave type fails binding", func(t *testing.T) {
		handler := leave.NewHandler(&fakeLeaveService{})

		body, _ := json.Marshal(gin.H{
			"instructor_id": uuid.New().String(),
			"leave_type":    "SABBATICAL",
			"start_date":    "2025-03-10",
			"end_date":      "2025-03-14",
		})

		w, env := performRequest(handler.Create, http.MethodPost, "/leaves", body, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative overlap maps to conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, schoolID, actorID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		handler := leave.NewHandler(svc)

		body, _ := json.Marshal(gin.H{
			"instructor_id":      uuid.New().String(),
			"leave_type":         "PTO",
			"start_date":         "2025-03-10",
			"end_date":           "2025-03-14",
			"pto_days_requested": 5,
		})

		w, env := performRequest(handler.Create, http.MethodPost, "/leaves", body, nil)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, env.Ok)
	})
}

func TestLeaveHandler_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error) {
				assert.Equal(t, leaveID, id)
				assert.NotEmpty(t, actorID)
				return leave.LeaveResponse{ID: id, Status: leave.StatusApproved}, nil
			},
		}
		handler := leave.NewHandler(svc)

		w, env := performRequest(handler.Approve, http.MethodPost, "/leaves/"+leaveID+"/approve", nil,
			gin.Params{{Key: "id", Value: leaveID}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)

		var resp leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("negative invalid transition maps to bad request", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, schoolID, actorID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
			},
		}
		handler := leave.NewHandler(svc)

		w, env := performRequest(handler.Approve, http.MethodPost, "/leaves/"+leaveID+"/approve", nil,
			gin.Params{{Key: "id", Value: leaveID}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("negative missing rejection reason fails binding", func(t *testing.T) {
		leaveID := uuid.New().String()
		handler := leave.NewHandler(&fakeLeaveService{})

		w, env := performRequest(handler.Reject, http.MethodPost, "/leaves/"+leaveID+"/reject", []byte(`{}`),
			gin.Params{{Key: "id", Value: leaveID}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestLeaveHandler_GetById(t *testing.T) {
	t.Run("negative missing record", func(t *testing.T) {
		leaveID := uuid.New().String()
		svc := &fakeLeaveService{
			getByIDFn: func(ctx context.Context, schoolID, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}
		handler := leave.NewHandler(svc)

		w, env := performRequest(handler.GetById, http.MethodGet, "/leaves/"+leaveID, nil,
			gin.Params{{Key: "id", Value: leaveID}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Ok)
	})
}
