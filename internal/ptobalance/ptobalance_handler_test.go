package ptobalance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"school-admin/internal/ptobalance"
	ptobalanceerrors "school-admin/internal/ptobalance/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeBalanceService struct {
	synchronizeFn    func(ctx context.Context, schoolID, instructorID string, year int) (ptobalance.SnapshotResponse, error)
	synchronizeAllFn func(ctx context.Context, schoolID string, year int) ([]ptobalance.SyncOutcome, error)
	getSnapshotFn    func(ctx context.Context, schoolID, instructorID string, year int) (ptobalance.SnapshotResponse, error)
}

func (f *fakeBalanceService) Synchronize(ctx context.Context, schoolID, instructorID string, year int) (ptobalance.SnapshotResponse, error) {
	if f.synchronizeFn != nil {
		return f.synchronizeFn(ctx, schoolID, instructorID, year)
	}
	return ptobalance.SnapshotResponse{}, nil
}

func (f *fakeBalanceService) SynchronizeAll(ctx context.Context, schoolID string, year int) ([]ptobalance.SyncOutcome, error) {
	if f.synchronizeAllFn != nil {
		return f.synchronizeAllFn(ctx, schoolID, year)
	}
	return nil, nil
}

func (f *fakeBalanceService) BestEffortSync(ctx context.Context, schoolID, instructorID string, years ...int) {
}

func (f *fakeBalanceService) GetSnapshot(ctx context.Context, schoolID, instructorID string, year int) (ptobalance.SnapshotResponse, error) {
	if f.getSnapshotFn != nil {
		return f.getSnapshotFn(ctx, schoolID, instructorID, year)
	}
	return ptobalance.SnapshotResponse{}, nil
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

	handler(c)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestBalanceHandler_SyncAll(t *testing.T) {
	t.Run("success reports partial failures without failing the batch", func(t *testing.T) {
		used := 5
		remaining := 16
		svc := &fakeBalanceService{
			synchronizeAllFn: func(ctx context.Context, schoolID string, year int) ([]ptobalance.SyncOutcome, error) {
				assert.Equal(t, 2025, year)
				return []ptobalance.SyncOutcome{
					{InstructorID: uuid.New().String(), InstructorName: "Amina Yusuf", Succeeded: true, UsedDays: &used, RemainingDays: &remaining},
					{InstructorID: uuid.New().String(), InstructorName: "Brian Odoi", Error: "connection reset"},
				}, nil
			},
		}
		handler := ptobalance.NewHandler(svc)

		body, _ := json.Marshal(ptobalance.SyncAllRequest{Year: 2025})
		w, env := performRequest(handler.SyncAll, http.MethodPost, "/pto-balance/sync-all", body, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)

		var data ptobalance.SyncAllResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "synchronized 1 of 2 instructors for 2025", data.Message)
		assert.Len(t, data.Outcomes, 2)
		assert.False(t, data.Outcomes[1].Succeeded)
	})

	t.Run("negative non-numeric year", func(t *testing.T) {
		handler := ptobalance.NewHandler(&fakeBalanceService{})

		w, env := performRequest(handler.SyncAll, http.MethodPost, "/pto-balance/sync-all", []byte(`{"year":"abc"}`), nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, env.Ok)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("success year zero runs an empty batch", func(t *testing.T) {
		svc := &fakeBalanceService{
			synchronizeAllFn: func(ctx context.Context, schoolID string, year int) ([]ptobalance.SyncOutcome, error) {
				assert.Equal(t, 0, year)
				return []ptobalance.SyncOutcome{}, nil
			},
		}
		handler := ptobalance.NewHandler(svc)

		w, env := performRequest(handler.SyncAll, http.MethodPost, "/pto-balance/sync-all", []byte(`{"year":0}`), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)

		var data ptobalance.SyncAllResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "synchronized 0 of 0 instructors for 0", data.Message)
	})
}

func TestBalanceHandler_Sync(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		instructorID := uuid.New().String()
		svc := &fakeBalanceService{
			synchronizeFn: func(ctx context.Context, schoolID, iid string, year int) (ptobalance.SnapshotResponse, error) {
				assert.Equal(t, instructorID, iid)
				assert.Equal(t, 2024, year)
				return ptobalance.SnapshotResponse{InstructorID: iid, Year: year, UsedDays: 7, RemainingDays: 14, TotalDays: 21}, nil
			},
		}
		handler := ptobalance.NewHandler(svc)

		w, env := performRequest(handler.Sync, http.MethodPost,
			"/pto-balance/"+instructorID+"/sync?year=2024", nil,
			gin.Params{{Key: "instructorId", Value: instructorID}})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("negative unknown instructor", func(t *testing.T) {
		svc := &fakeBalanceService{
			synchronizeFn: func(ctx context.Context, schoolID, iid string, year int) (ptobalance.SnapshotResponse, error) {
				return ptobalance.SnapshotResponse{}, ptobalanceerrors.ErrInstructorNotFound
			},
		}
		handler := ptobalance.NewHandler(svc)

		instructorID := uuid.New().String()
		w, env := performRequest(handler.Sync, http.MethodPost,
			"/pto-balance/"+instructorID+"/sync", nil,
			gin.Params{{Key: "instructorId", Value: instructorID}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Ok)
	})

	t.Run("negative bad year query", func(t *testing.T) {
		handler := ptobalance.NewHandler(&fakeBalanceService{})

		instructorID := uuid.New().String()
		w, env := performRequest(handler.Sync, http.MethodPost,
			"/pto-balance/"+instructorID+"/sync?year=twenty", nil,
			gin.Params{{Key: "instructorId", Value: instructorID}})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, ptobalanceerrors.ErrInvalidYear.Code, env.Error.Code)
		assert.Equal(t, ptobalanceerrors.ErrInvalidYear.Message, env.Error.Message)
	})
}

func TestBalanceHandler_GetByInstructor(t *testing.T) {
	t.Run("negative absent snapshot", func(t *testing.T) {
		svc := &fakeBalanceService{
			getSnapshotFn: func(ctx context.Context, schoolID, iid string, year int) (ptobalance.SnapshotResponse, error) {
				return ptobalance.SnapshotResponse{}, ptobalanceerrors.ErrSnapshotNotFound
			},
		}
		handler := ptobalance.NewHandler(svc)

		instructorID := uuid.New().String()
		w, env := performRequest(handler.GetByInstructor, http.MethodGet,
			"/pto-balance/"+instructorID, nil,
			gin.Params{{Key: "instructorId", Value: instructorID}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.False(t, env.Ok)
	})
}
