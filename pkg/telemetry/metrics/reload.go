package metrics

import (
	"mercator-hq/triage/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Reload result label values.
const (
	ReloadSuccess = "success"
	ReloadFailure = "failure"
)

// ReloadMetrics tracks protocol reloads.
type ReloadMetrics struct {
	reloadsTotal    *prometheus.CounterVec
	protocolsLoaded prometheus.Gauge
	lastReload      prometheus.Gauge
}

// NewReloadMetrics creates and registers reload metrics with the provided
// registry.
func NewReloadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ReloadMetrics {
	rm := &ReloadMetrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "reloads_total",
				Help:      "Total number of protocol reloads by result",
			},
			[]string{"result"},
		),

		protocolsLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "protocols_loaded",
				Help:      "Number of protocols currently loaded",
			},
		),

		lastReload: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_successful_reload_timestamp_seconds",
				Help:      "Unix time of the last successful protocol reload",
			},
		),
	}

	registry.MustRegister(
		rm.reloadsTotal,
		rm.protocolsLoaded,
		rm.lastReload,
	)

	return rm
}

// RecordReload records a reload. A failed reload leaves the loaded
// protocol count untouched since the previous set stays active.
func (rm *ReloadMetrics) RecordReload(success bool, protocols int) {
	if !success {
		rm.reloadsTotal.WithLabelValues(ReloadFailure).Inc()
		return
	}
	rm.reloadsTotal.WithLabelValues(ReloadSuccess).Inc()
	rm.protocolsLoaded.Set(float64(protocols))
	rm.lastReload.SetToCurrentTime()
}
