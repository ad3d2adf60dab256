package metrics

import (
	"time"

	"mercator-hq/triage/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EvaluationMetrics tracks triage decisions.
//
// Metrics:
//   - triage_evaluations_total: decisions by protocol, rule and level
//   - triage_evaluation_duration_seconds: evaluation duration per protocol
//   - triage_rule_hits_total: rules whose condition held
//   - triage_rule_misses_total: rules whose condition did not hold
type EvaluationMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	hitsTotal          *prometheus.CounterVec
	missesTotal        *prometheus.CounterVec
}

// NewEvaluationMetrics creates and registers evaluation metrics with the
// provided registry.
func NewEvaluationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvaluationMetrics {
	buckets := cfg.DurationBuckets
	if len(buckets) == 0 {
		// Evaluations walk a handful of set lookups.
		buckets = prometheus.ExponentialBuckets(0.000001, 2, 15) // 1µs to 16ms
	}

	em := &EvaluationMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of triage decisions",
			},
			[]string{"protocol", "rule", "level"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of protocol evaluation in seconds",
				Buckets:   buckets,
			},
			[]string{"protocol"},
		),

		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_hits_total",
				Help:      "Total number of rule matches",
			},
			[]string{"protocol", "rule"},
		),

		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_misses_total",
				Help:      "Total number of rules checked without matching",
			},
			[]string{"protocol", "rule"},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.hitsTotal,
		em.missesTotal,
	)

	return em
}

// RecordEvaluation records one decision and its duration.
func (em *EvaluationMetrics) RecordEvaluation(protocol, rule, level string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(protocol, rule, level).Inc()
	em.evaluationDuration.WithLabelValues(protocol).Observe(duration.Seconds())
}

// RecordHit records a rule whose condition held.
func (em *EvaluationMetrics) RecordHit(protocol, rule string) {
	em.hitsTotal.WithLabelValues(protocol, rule).Inc()
}

// RecordMiss records a rule whose condition did not hold.
func (em *EvaluationMetrics) RecordMiss(protocol, rule string) {
	em.missesTotal.WithLabelValues(protocol, rule).Inc()
}
