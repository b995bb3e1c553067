package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"currency-api/internal/application"
	"currency-api/internal/bootstrap"
	"currency-api/internal/config"
	infraconfig "currency-api/internal/infrastructure/config"
	httpserver "currency-api/internal/infrastructure/http"
	"currency-api/internal/infrastructure/logx"
	"currency-api/internal/infrastructure/names"
	"currency-api/internal/infrastructure/worker"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	cfg := config.Load()
	addr := ":" + cfg.Port

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap store", zap.Error(err))
	}
	defer closeStore()

	limiter, closeLimiter, err := bootstrap.BuildLimiter(cfg)
	if err != nil {
		logger.Fatal("bootstrap limiter", zap.Error(err))
	}
	defer closeLimiter()

	rateProvider := bootstrap.BuildProvider(cfg)
	svc := application.NewRateService(
		cfg.BaseCurrency,
		application.NewSnapshotCache(),
		store.Snapshots,
		rateProvider,
		application.WithNames(names.Resolver{}),
		application.WithMetrics(application.NewMetrics(prometheus.DefaultRegisterer)),
		application.WithLogger(logger),
	)

	every, schedule := refreshPlan(cfg.RefreshSchedule)
	refresher := &worker.Refresher{
		Service:  svc,
		Every:    every,
		Schedule: schedule,
		Log:      logger,
	}
	go refresher.Start(ctx)

	srv := httpserver.NewServer(svc)
	srv.SetReadyCheck(store.Ping)
	server := &http.Server{
		Addr:    addr,
		Handler: httpserver.NewRouter(srv, limiter),
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("base", cfg.BaseCurrency))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}

// refreshPlan interprets REFRESH_SCHEDULE as integer seconds, falling back
// to a cron expression for anything non-numeric.
func refreshPlan(setting string) (time.Duration, string) {
	if v, err := strconv.Atoi(setting); err == nil && v > 0 {
		return time.Duration(v) * time.Second, ""
	}
	return 0, setting
}
