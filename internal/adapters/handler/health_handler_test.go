package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/handler"
	"github.com/novaschool/stolovaya/cafeteria-client/test/mocks"
)

// stubProber scripts the poller's self-reported health.
type stubProber struct {
	healthy bool
	ready   bool
}

func (p stubProber) IsHealthy() bool { return p.healthy }
func (p stubProber) IsReady() bool   { return p.ready }

func TestHealthHandler_Health(t *testing.T) {
	h := handler.NewHealthHandler(mocks.NewMockBackend(), mocks.NewMockKeyValue(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body handler.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "UP" || body.Checks["process"].Status != "UP" {
		t.Errorf("body = %+v", body)
	}
}

func TestHealthHandler_HealthRejectsPost(t *testing.T) {
	h := handler.NewHealthHandler(mocks.NewMockBackend(), mocks.NewMockKeyValue(), nil)

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHealthHandler_HealthReportsPoller(t *testing.T) {
	tests := []struct {
		name       string
		healthy    bool
		wantStatus int
		wantCheck  string
	}{
		{name: "poller_alive", healthy: true, wantStatus: http.StatusOK, wantCheck: "UP"},
		{name: "poller_stuck", healthy: false, wantStatus: http.StatusServiceUnavailable, wantCheck: "DOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(mocks.NewMockBackend(), mocks.NewMockKeyValue(),
				stubProber{healthy: tt.healthy, ready: true})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			h.Health(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body handler.HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Checks["poller"].Status != tt.wantCheck {
				t.Errorf("poller check = %+v", body.Checks["poller"])
			}
		})
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name        string
		backendErr  error
		storeErr    error
		pollerReady bool
		wantStatus  int
	}{
		{
			name:        "all_dependencies_up",
			pollerReady: true,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "backend_down",
			backendErr:  errors.New("unreachable"),
			pollerReady: true,
			wantStatus:  http.StatusServiceUnavailable,
		},
		{
			name:        "store_down",
			storeErr:    errors.New("disk gone"),
			pollerReady: true,
			wantStatus:  http.StatusServiceUnavailable,
		},
		{
			name:        "poller_stale",
			pollerReady: false,
			wantStatus:  http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := mocks.NewMockBackend()
			backend.PingError = tt.backendErr
			store := mocks.NewMockKeyValue()
			store.PingError = tt.storeErr
			h := handler.NewHealthHandler(backend, store, stubProber{healthy: true, ready: tt.pollerReady})

			req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
			rec := httptest.NewRecorder()
			h.Ready(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
