package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
)

// Prober is the background poller's view of its own health. Liveness and
// readiness fold it into their checks; a nil Prober skips the check.
type Prober interface {
	IsHealthy() bool
	IsReady() bool
}

type HealthHandler struct {
	backend   ports.Backend
	store     ports.KeyValue
	prober    Prober
	startTime time.Time
	version   string
}

func NewHealthHandler(backend ports.Backend, store ports.KeyValue, prober Prober) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "unknown"
	}
	return &HealthHandler{
		backend:   backend,
		store:     store,
		prober:    prober,
		startTime: time.Now(),
		version:   version,
	}
}

// HealthResponse follows Kubernetes/OpenShift health check conventions
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health is a liveness check - confirms the process is running and the
// background poller, when present, has not locked up
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]Check{"process": {Status: "UP"}}
	status := "UP"
	httpStatus := http.StatusOK
	if h.prober != nil {
		pollerCheck := Check{Status: "UP"}
		if !h.prober.IsHealthy() {
			pollerCheck = Check{Status: "DOWN", Message: "Poller has stopped polling"}
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
		checks["poller"] = pollerCheck
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Ready checks if the agent is ready to serve (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	checks := make(map[string]Check)
	status := "UP"
	httpStatus := http.StatusOK

	backendCheck := h.checkBackend()
	checks["backend"] = backendCheck
	if backendCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	storeCheck := h.checkStore()
	checks["session_store"] = storeCheck
	if storeCheck.Status != "UP" {
		status = "DOWN"
		httpStatus = http.StatusServiceUnavailable
	}

	if h.prober != nil {
		pollerCheck := Check{Status: "UP"}
		if !h.prober.IsReady() {
			pollerCheck = Check{Status: "DOWN", Message: "Poller has no fresh snapshot"}
			status = "DOWN"
			httpStatus = http.StatusServiceUnavailable
		}
		checks["poller"] = pollerCheck
	}

	response := map[string]interface{}{
		"status": status,
		"checks": checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// Live is an alias for Health - simple liveness check
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

func (h *HealthHandler) checkBackend() Check {
	if h.backend == nil {
		return Check{
			Status:  "DOWN",
			Message: "Backend client is not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.backend.Ping(ctx); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot reach backend",
		}
	}
	return Check{Status: "UP"}
}

func (h *HealthHandler) checkStore() Check {
	if h.store == nil {
		return Check{
			Status:  "DOWN",
			Message: "Session store is not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return Check{
			Status:  "DOWN",
			Message: "Cannot access session store",
		}
	}
	return Check{Status: "UP"}
}
