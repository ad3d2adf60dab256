package metrics

import (
	"fmt"
	"sync"
	"time"

	"mercator-hq/triage/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultMaxCardinality bounds distinct protocol/rule label pairs.
const DefaultMaxCardinality = 10000

// Rule label values that do not name a protocol rule.
const (
	// RuleDefault labels decisions where no rule matched.
	RuleDefault = "default"

	// RuleOther labels rules beyond the cardinality limit.
	RuleOther = "other"
)

// Collector owns the triage metrics and their registry. It satisfies the
// engine's Recorder interface.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	evaluationMetrics *EvaluationMetrics
	reloadMetrics     *ReloadMetrics

	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a collector and registers its metrics with
// registry. If registry is nil, a new one is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "triage",
//		Subsystem: "engine",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxCardinality),
	}

	c.evaluationMetrics = NewEvaluationMetrics(cfg, registry)
	c.reloadMetrics = NewReloadMetrics(cfg, registry)

	return c
}

// ObserveEvaluation records one decision. rule is empty when the
// protocol's default level applied.
//
// Example:
//
//	collector.ObserveEvaluation("respiratory", "critical-symptoms", "emergency", 40*time.Microsecond)
func (c *Collector) ObserveEvaluation(protocol, rule, level string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.evaluationMetrics.RecordEvaluation(protocol, c.ruleLabel(protocol, rule), level, duration)
}

// ObserveRule records whether a rule's condition held for a patient.
// Rules skipped because an earlier rule matched are not observed.
func (c *Collector) ObserveRule(protocol, rule string, matched bool) {
	if !c.config.Enabled {
		return
	}

	label := c.ruleLabel(protocol, rule)
	if matched {
		c.evaluationMetrics.RecordHit(protocol, label)
	} else {
		c.evaluationMetrics.RecordMiss(protocol, label)
	}
}

// ObserveReload records a protocol reload. protocols is the number of
// protocols loaded afterwards.
func (c *Collector) ObserveReload(success bool, protocols int) {
	if !c.config.Enabled {
		return
	}

	c.reloadMetrics.RecordReload(success, protocols)
}

func (c *Collector) ruleLabel(protocol, rule string) string {
	if rule == "" {
		return RuleDefault
	}
	if !c.cardinalityLimiter.Allow(fmt.Sprintf("%s:%s", protocol, rule)) {
		return RuleOther
	}
	return rule
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
