package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/api"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/metrics"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/domain"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

type staticTokens string

func (t staticTokens) AccessToken(ctx context.Context) (string, error) {
	return string(t), nil
}

func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, 5*time.Second, staticTokens("test-token"), metrics.New(), logger.Nop())
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/token/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "petya" || body["password"] != "secret" {
			t.Errorf("credentials = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":  "a",
			"refresh": "r",
			"role":    "student",
			"user":    map[string]any{"id": 1, "username": "petya", "role": "student"},
		})
	}))

	result, err := client.Login(ctx, "petya", "secret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Access != "a" || result.Role != domain.RoleStudent || result.User.Username != "petya" {
		t.Errorf("result = %+v", result)
	}
}

func TestClient_AuthedCallsCarryBearerToken(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "petya"})
	}))

	if _, err := client.Me(ctx); err != nil {
		t.Fatalf("Me() error = %v", err)
	}
}

func TestClient_PayMealSendsIdempotencyKey(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pay-meal/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "key-123" {
			t.Errorf("Idempotency-Key = %q", got)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["date"] != "2025-01-15" || body["meal_type"] != "lunch" {
			t.Errorf("body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	if err := client.PayMeal(ctx, "2025-01-15", domain.MealLunch, "key-123"); err != nil {
		t.Fatalf("PayMeal() error = %v", err)
	}
}

func TestClient_BackendErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "error_field",
			status:     http.StatusBadRequest,
			body:       `{"error":"already paid"}`,
			wantMsg:    "already paid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "detail_field",
			status:     http.StatusUnauthorized,
			body:       `{"detail":"token expired"}`,
			wantMsg:    "token expired",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unparseable_body",
			status:     http.StatusBadRequest,
			body:       "<html>",
			wantMsg:    "request failed",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.PayMeal(ctx, "2025-01-15", domain.MealLunch, "k")
			var backendErr *ports.BackendError
			if !errors.As(err, &backendErr) {
				t.Fatalf("error = %v, want *ports.BackendError", err)
			}
			if backendErr.StatusCode != tt.wantStatus || backendErr.Message != tt.wantMsg {
				t.Errorf("BackendError = %+v", backendErr)
			}
		})
	}
}

func TestClient_PaidStudentsQuery(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/paid-students/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("date") != "2025-01-15" || q.Get("meal_type") != "breakfast" {
			t.Errorf("query = %v", q)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": 1, "username": "petya"}})
	}))

	students, err := client.PaidStudents(ctx, "2025-01-15", domain.MealBreakfast)
	if err != nil {
		t.Fatalf("PaidStudents() error = %v", err)
	}
	if len(students) != 1 || students[0].Username != "petya" {
		t.Errorf("students = %+v", students)
	}
}

func TestClient_ApproveRequestPath(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/approve-request/42/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]bool
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["approved"] {
			t.Error("expected approved=false")
		}
		w.WriteHeader(http.StatusOK)
	}))

	if err := client.ApproveRequest(ctx, 42, false); err != nil {
		t.Fatalf("ApproveRequest() error = %v", err)
	}
}

func TestClient_WeeklyMenuIsUnauthenticated(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("menu request carried Authorization %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	if _, err := client.WeeklyMenu(ctx); err != nil {
		t.Fatalf("WeeklyMenu() error = %v", err)
	}
}
