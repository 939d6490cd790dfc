package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/api"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/handler"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/metrics"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/poll"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/storage"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

// tokenSource defers token resolution so the backend client and the token
// authority, which depend on each other, can be wired in either order.
type tokenSource struct {
	fn func(context.Context) (string, error)
}

func (t *tokenSource) AccessToken(ctx context.Context) (string, error) {
	return t.fn(ctx)
}

func main() {
	log := logger.New()
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	store, err := buildStore(cfg)
	if err != nil {
		log.Fatalw("failed to open session store", "error", err)
	}

	cache := services.NewSessionCache(store)
	m := metrics.New()

	// The kiosk runs unattended, so every outgoing call gets a token kept
	// fresh by the authority instead of the raw cached one.
	tokens := &tokenSource{fn: cache.AccessToken}
	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, tokens, m, log)
	clock := ports.SystemClock{}
	auth := services.NewTokenAuthority(cache, backend, clock, log)
	tokens.fn = auth.EnsureFresh

	cook := services.NewCookService(cache, backend, clock, log)
	poller := poll.NewPoller(cook, cfg.Kiosk.PollInterval, log)
	healthHandler := handler.NewHealthHandler(backend, store, poller)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/health/live", healthHandler.Live)
	mux.HandleFunc("/health/ready", healthHandler.Ready)
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		snapshot := poller.Snapshot()
		if snapshot == nil {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snapshot)
	})

	server := &http.Server{
		Addr:    ":" + cfg.Kiosk.Port,
		Handler: mux,
	}

	go func() {
		log.Infow("kiosk http server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("kiosk http server error", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		if err := poller.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Infow("received signal, shutting down", "signal", sig.String())
		cancel()
	case err := <-errChan:
		log.Errorw("poller failed, shutting down", "error", err)
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("error shutting down http server", "error", err)
	}

	log.Infow("kiosk shutdown complete")
}

func buildStore(cfg *config.Config) (ports.KeyValue, error) {
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       0,
		})
		return storage.NewRedisStore(client, cfg.Redis.KeyPrefix), nil
	}
	return storage.NewFileStore(cfg.State.Path)
}
