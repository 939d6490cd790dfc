package main

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/api"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/metrics"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/adapters/storage"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/cli"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/config"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/ports"
	"github.com/novaschool/stolovaya/cafeteria-client/internal/core/services"
	"github.com/novaschool/stolovaya/cafeteria-client/pkg/logger"
)

var version = "dev"

func main() {
	cli.Execute(buildApp, version)
}

func buildApp(verbose bool) (*cli.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	var log *logger.Logger
	if verbose {
		log = logger.NewDevelopment()
	} else {
		log = logger.New()
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	cache := services.NewSessionCache(store)
	m := metrics.New()
	backend := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cache, m, log)

	clock := ports.SystemClock{}
	auth := services.NewTokenAuthority(cache, backend, clock, log)
	guard := services.NewRouteGuard(cache, auth, log)
	entitlements := services.NewEntitlementEvaluator(cache)

	return &cli.App{
		Config:       cfg,
		Log:          log,
		Clock:        clock,
		Sleep:        time.Sleep,
		Cache:        cache,
		Auth:         auth,
		Guard:        guard,
		Menu:         services.NewMenuProvider(backend, clock),
		Entitlements: entitlements,
		Payments:     services.NewPaymentRecorder(cache, backend, entitlements, log),
		Account:      services.NewAccountService(cache, backend, clock, log),
		Cook:         services.NewCookService(cache, backend, clock, log),
		Admin:        services.NewAdminService(backend, clock, log),
	}, nil
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
