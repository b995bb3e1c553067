package worker

import (
	"context"
	"time"

	"currency-api/internal/application"
	infraconfig "currency-api/internal/infrastructure/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RateRefresher is the slice of the rate service the refresher drives.
type RateRefresher interface {
	Refresh(ctx context.Context)
}

// Refresher runs one refresh immediately, then keeps refreshing on a fixed
// interval or a cron schedule. Schedule, when set, takes precedence over
// Every and must be a standard 5-field cron expression.
type Refresher struct {
	Service  RateRefresher
	Every    time.Duration
	Schedule string
	Log      *zap.Logger
}

var _ application.Worker = (*Refresher)(nil)

func (w *Refresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}

	w.Service.Refresh(ctx)

	if w.Schedule != "" {
		sched, err := cron.ParseStandard(w.Schedule)
		if err != nil {
			log.Error("bad_refresh_schedule", zap.String("schedule", w.Schedule), zap.Error(err))
			return
		}
		log.Info("refresher_started", zap.String("schedule", w.Schedule))
		w.runCron(ctx, log, sched)
		return
	}

	every := w.Every
	if every <= 0 {
		every = infraconfig.DefaultRefreshInterval
	}
	log.Info("refresher_started", zap.Duration("every", every))

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-t.C:
			w.Service.Refresh(ctx)
		}
	}
}

func (w *Refresher) runCron(ctx context.Context, log *zap.Logger, sched cron.Schedule) {
	for {
		wait := time.Until(sched.Next(time.Now()))
		if wait < 0 {
			wait = time.Second
		}
		select {
		case <-ctx.Done():
			log.Info("refresher_stopped")
			return
		case <-time.After(wait):
			w.Service.Refresh(ctx)
		}
	}
}
