package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "marketplace_"

var hydrateBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics groups the orchestration metrics.
type Metrics struct {
	Hydrations      *prometheus.CounterVec
	HydrateDuration prometheus.Histogram
	ItemReads       prometheus.Counter
	CatalogItems    prometheus.Gauge
	Operations      *prometheus.CounterVec
	SessionChanges  prometheus.Counter
}

// NewMetrics creates the metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hydrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricsPrefix + "hydrations_total",
			Help: "Catalog hydrations by outcome.",
		}, []string{"outcome"}),
		HydrateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    metricsPrefix + "hydrate_duration_seconds",
			Help:    "Time to rebuild the catalog from the ledger.",
			Buckets: hydrateBuckets,
		}),
		ItemReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + "ledger_item_reads_total",
			Help: "Single-item ledger reads issued during hydration.",
		}),
		CatalogItems: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricsPrefix + "catalog_items",
			Help: "Items in the installed catalog.",
		}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: metricsPrefix + "operations_total",
			Help: "Marketplace operations by kind and outcome code.",
		}, []string{"kind", "outcome"}),
		SessionChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + "session_changes_total",
			Help: "Session re-establishments, including disconnects.",
		}),
	}
	if reg != nil {
		reg.MustRegister(
			m.Hydrations,
			m.HydrateDuration,
			m.ItemReads,
			m.CatalogItems,
			m.Operations,
			m.SessionChanges,
		)
	}
	return m
}

func (m *Metrics) observeHydrate(start time.Time, err error) {
	m.HydrateDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.Hydrations.WithLabelValues("error").Inc()
		return
	}
	m.Hydrations.WithLabelValues("ok").Inc()
}
