package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"currency-api/internal/application"
	"currency-api/internal/config"
	"currency-api/internal/infrastructure/badgerstore"
	httpserver "currency-api/internal/infrastructure/http"
	"currency-api/internal/infrastructure/httpx"
	"currency-api/internal/infrastructure/logx"
	"currency-api/internal/infrastructure/pg"
	"currency-api/internal/infrastructure/provider"
	redisstore "currency-api/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
)

// Store bundles the snapshot store with its readiness probe.
type Store struct {
	Snapshots application.SnapshotStore
	Ping      func(ctx context.Context) error
}

// BuildStore builds the persistent store based on STORAGE ("pg" or "badger").
func BuildStore(ctx context.Context, cfg config.Config) (Store, func(), error) {
	log := logx.L()

	switch cfg.Storage {
	case "pg":
		if cfg.DatabaseURL == "" {
			return Store{}, func() {}, fmt.Errorf("DATABASE_URL is required for STORAGE=pg")
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Store{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Store{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Store{Snapshots: pg.NewSnapshotRepo(db), Ping: db.Ping}, cleanup, nil

	case "badger":
		st, err := badgerstore.Open(cfg.BadgerPath)
		if err != nil {
			return Store{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing badger")
			_ = st.Close()
		}
		return Store{Snapshots: st, Ping: func(context.Context) error { return nil }}, cleanup, nil

	default:
		return Store{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

// BuildProvider returns the upstream rate provider.
func BuildProvider(cfg config.Config) application.RateProvider {
	switch cfg.Provider {
	case "exchangerateapi":
		return &provider.ExchangeRateAPIProvider{
			BaseURL: cfg.ProviderURL,
			Client:  &httpx.Client{HTTP: &http.Client{Timeout: cfg.FetchTimeout}},
		}
	default:
		return provider.NewFake(nil)
	}
}

// BuildLimiter builds the request limiter based on RATE_LIMIT_BACKEND
// ("redis" or "none").
func BuildLimiter(cfg config.Config) (httpserver.Limiter, func(), error) {
	if cfg.RateLimitBackend != "redis" {
		return httpserver.NoopLimiter{}, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	limiter := redisstore.NewWindowLimiter(client, cfg.RateLimitMax, cfg.RateLimitWindow)
	cleanup := func() { _ = client.Close() }
	return limiter, cleanup, nil
}
