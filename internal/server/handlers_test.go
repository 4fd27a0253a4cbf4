package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	locationdomain "github.com/fieldwatch/fieldwatch/internal/location/domain"
	telemetrydomain "github.com/fieldwatch/fieldwatch/internal/telemetry/domain"
	watcherdomain "github.com/fieldwatch/fieldwatch/internal/watcher/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTelemetryService struct {
	lastRequest telemetrydomain.CreateMessageRequest
	ingestErr   error
	active      int64
}

func (f *fakeTelemetryService) Ingest(ctx context.Context, req telemetrydomain.CreateMessageRequest) (*telemetrydomain.DeviceMessage, error) {
	_ = ctx
	f.lastRequest = req
	if f.ingestErr != nil {
		return nil, f.ingestErr
	}
	return &telemetrydomain.DeviceMessage{ID: 1}, nil
}

func (f *fakeTelemetryService) ActiveWatcherCount(ctx context.Context) (int64, error) {
	_ = ctx
	return f.active, nil
}

type fakeWatcherService struct {
	lastStatus watcherdomain.SetReviewStatusRequest
	statusErr  error
}

func (f *fakeWatcherService) GetByID(ctx context.Context, id string) (*watcherdomain.Response, error) {
	_ = ctx
	return &watcherdomain.Response{ID: id, ReviewStatus: watcherdomain.StatusNone}, nil
}

func (f *fakeWatcherService) List(ctx context.Context, req watcherdomain.ListRequest) ([]watcherdomain.Response, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeWatcherService) SetReviewStatus(ctx context.Context, req watcherdomain.SetReviewStatusRequest) (*watcherdomain.Response, error) {
	_ = ctx
	f.lastStatus = req
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &watcherdomain.Response{ID: req.ID, ReviewStatus: watcherdomain.ReviewStatus(req.Status)}, nil
}

func (f *fakeWatcherService) SetKind(ctx context.Context, req watcherdomain.SetKindRequest) (*watcherdomain.Response, error) {
	_ = ctx
	_ = req
	return nil, nil
}

func (f *fakeWatcherService) Delete(ctx context.Context, id string) error {
	_ = ctx
	_ = id
	return nil
}

type fakeResolver struct {
	commission *locationdomain.Commission
}

func (f *fakeResolver) Resolve(ctx context.Context, watcherID snowflake.ID) (*locationdomain.Commission, error) {
	_ = ctx
	_ = watcherID
	return f.commission, nil
}

func newTestRouter(srv *Server) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandlingMiddleware())
	srv.engine = router
	srv.registerAPIRoutes()
	return router
}

func TestCreateDeviceMessageHandler(t *testing.T) {
	telemetrySvc := &fakeTelemetryService{}
	router := newTestRouter(&Server{telemetrySvc: telemetrySvc, watcherSvc: &fakeWatcherService{}, resolver: &fakeResolver{}})

	body := `{"watcher_id":"42","payload":{"timestamp":"1700000000","key":"battery","value":"87"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "42", telemetrySvc.lastRequest.WatcherID)
	assert.Equal(t, "battery", telemetrySvc.lastRequest.Payload["key"])
}

func TestCreateDeviceMessageHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{name: "MalformedPayload", err: telemetrydomain.ErrMalformedPayload, wantStatus: http.StatusBadRequest, wantType: "malformed_payload"},
		{name: "WatcherNotFound", err: watcherdomain.ErrNotFound, wantStatus: http.StatusNotFound, wantType: "not_found"},
		{name: "InvalidWatcher", err: telemetrydomain.ErrInvalidWatcher, wantStatus: http.StatusBadRequest, wantType: "invalid_request"},
		{name: "DuplicateKey", err: gorm.ErrDuplicatedKey, wantStatus: http.StatusConflict, wantType: "conflict"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			telemetrySvc := &fakeTelemetryService{ingestErr: tc.err}
			router := newTestRouter(&Server{telemetrySvc: telemetrySvc, watcherSvc: &fakeWatcherService{}, resolver: &fakeResolver{}})

			body := `{"watcher_id":"42","payload":{"timestamp":"x"}}`
			req := httptest.NewRequest(http.MethodPost, "/api/messages", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assert.Equal(t, tc.wantStatus, resp.Code)

			var payload errorResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
			assert.Equal(t, tc.wantType, payload.Error.Type)
		})
	}
}

func TestSetWatcherReviewStatusHandler(t *testing.T) {
	watcherSvc := &fakeWatcherService{}
	router := newTestRouter(&Server{telemetrySvc: &fakeTelemetryService{}, watcherSvc: watcherSvc, resolver: &fakeResolver{}})

	req := httptest.NewRequest(http.MethodPut, "/api/watchers/42/status", bytes.NewBufferString(`{"status":"rejected"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "42", watcherSvc.lastStatus.ID)
	assert.Equal(t, "rejected", watcherSvc.lastStatus.Status)
}

func TestSetWatcherReviewStatusHandler_InvalidStatus(t *testing.T) {
	watcherSvc := &fakeWatcherService{statusErr: watcherdomain.ErrInvalidStatus}
	router := newTestRouter(&Server{telemetrySvc: &fakeTelemetryService{}, watcherSvc: watcherSvc, resolver: &fakeResolver{}})

	req := httptest.NewRequest(http.MethodPut, "/api/watchers/42/status", bytes.NewBufferString(`{"status":"banned"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var payload errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &payload))
	assert.Equal(t, "invalid_status", payload.Error.Type)
}

func TestGetWatcherCommissionHandler(t *testing.T) {
	t.Run("Resolved", func(t *testing.T) {
		commission := &locationdomain.Commission{ID: 7, Code: "202"}
		router := newTestRouter(&Server{telemetrySvc: &fakeTelemetryService{}, watcherSvc: &fakeWatcherService{}, resolver: &fakeResolver{commission: commission}})

		req := httptest.NewRequest(http.MethodGet, "/api/watchers/42/commission", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), "202")
	})

	t.Run("Absent", func(t *testing.T) {
		router := newTestRouter(&Server{telemetrySvc: &fakeTelemetryService{}, watcherSvc: &fakeWatcherService{}, resolver: &fakeResolver{}})

		req := httptest.NewRequest(http.MethodGet, "/api/watchers/42/commission", nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"commission":null}`, resp.Body.String())
	})
}

func TestGetActiveWatcherCountHandler(t *testing.T) {
	router := newTestRouter(&Server{telemetrySvc: &fakeTelemetryService{active: 5}, watcherSvc: &fakeWatcherService{}, resolver: &fakeResolver{}})

	req := httptest.NewRequest(http.MethodGet, "/api/stats/active", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"active_watchers":5}`, resp.Body.String())
}
