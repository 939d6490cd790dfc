package poll

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

const (
	snapshotTimeout = 30 * time.Second

	// Health check configuration
	healthCheckStaleThreshold = 5 * time.Minute
)

// Poller keeps the kiosk's serving-line view fresh. It refreshes the cook
// dashboard (today's paid-student lists and open purchase requests) on a
// fixed interval so the display never blocks on the backend.
type Poller struct {
	cook     *services.CookService
	interval time.Duration
	cb       *gobreaker.CircuitBreaker
	log      *logger.Logger

	mu         sync.RWMutex
	snapshot   *services.CookDashboard
	lastPolled time.Time
	isHealthy  bool
}

func NewPoller(cook *services.CookService, interval time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		cook:       cook,
		interval:   interval,
		cb:         config.NewCircuitBreaker("Kiosk-Poll"),
		log:        log,
		lastPolled: time.Now(),
		isHealthy:  true,
	}
}

// IsHealthy returns true if the poller process is alive and responding.
// This is designed for Liveness probes - keeps checks simple to avoid false positives.
// For Readiness probes, you should check circuit breaker state and dependency health.
func (p *Poller) IsHealthy() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isHealthy
}

// IsReady returns true if the poller is delivering fresh data (for readiness probes).
func (p *Poller) IsReady() bool {
	// Open circuit means the backend is unreachable (system is degraded)
	if p.cb.State() == gobreaker.StateOpen {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	// Check if we've refreshed something recently (not stuck)
	if time.Since(p.lastPolled) > healthCheckStaleThreshold {
		return false
	}

	return p.isHealthy
}

// Snapshot returns the most recent dashboard view, or nil before the first
// successful refresh.
func (p *Poller) Snapshot() *services.CookDashboard {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Start begins the refresh loop. This is a blocking call that runs until the
// context is cancelled.
func (p *Poller) Start(ctx context.Context) error {
	p.log.Infow("kiosk poller starting", "interval", p.interval)

	// Populate the view before the first tick so the display has data at boot.
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Infow("kiosk poller shutting down")
			return ctx.Err()
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

func (p *Poller) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	res, err := p.cb.Execute(func() (interface{}, error) {
		return p.cook.Dashboard(ctx)
	})
	if err != nil {
		p.log.Warnw("dashboard refresh failed", "error", err)
		return
	}

	p.mu.Lock()
	p.snapshot = res.(*services.CookDashboard)
	p.lastPolled = time.Now()
	p.isHealthy = true
	p.mu.Unlock()

	p.log.Debugw("dashboard refreshed",
		"breakfast_paid", len(p.snapshot.PaidBreakfast),
		"lunch_paid", len(p.snapshot.PaidLunch),
		"open_requests", len(p.snapshot.PurchaseRequests))
}
