package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts refresh and read outcomes. All methods are nil-safe so the
// service can run without metrics wired (tests, dev).
type Metrics struct {
	RefreshTotal       *prometheus.CounterVec
	FallbackLoadsTotal prometheus.Counter
	StoreWriteFailures prometheus.Counter
	ConversionsTotal   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RefreshTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rates_refresh_total",
				Help: "Refresh attempts against the upstream provider by result.",
			},
			[]string{"result"},
		),
		FallbackLoadsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "rates_store_fallback_loads_total",
			Help: "Snapshots restored from the backup store after a failed refresh.",
		}),
		StoreWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "rates_store_write_failures_total",
			Help: "Write-through failures against the backup store.",
		}),
		ConversionsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "rates_conversions_total",
			Help: "Conversions served from a snapshot.",
		}),
	}
}

func (m *Metrics) refresh(result string) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) fallbackLoad() {
	if m == nil {
		return
	}
	m.FallbackLoadsTotal.Inc()
}

func (m *Metrics) storeWriteFailed() {
	if m == nil {
		return
	}
	m.StoreWriteFailures.Inc()
}

func (m *Metrics) conversionServed() {
	if m == nil {
		return
	}
	m.ConversionsTotal.Inc()
}
