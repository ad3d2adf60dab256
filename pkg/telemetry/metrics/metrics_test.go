package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mercator-hq/triage/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "triage",
		DurationBuckets: []float64{0.00001, 0.0001, 0.001},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_NilRegistry(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	if collector.Registry() == nil {
		t.Fatal("Expected a registry to be created")
	}
}

func TestCollector_ObserveEvaluation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		name      string
		protocol  string
		rule      string
		level     string
		wantLabel string
	}{
		{"matched rule", "respiratory", "critical-symptoms", "emergency", "critical-symptoms"},
		{"default level", "respiratory", "", "non_urgent", RuleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.ObserveEvaluation(tt.protocol, tt.rule, tt.level, 20*time.Microsecond)

			count := testutil.ToFloat64(collector.evaluationMetrics.evaluationsTotal.WithLabelValues(tt.protocol, tt.wantLabel, tt.level))
			if count != 1 {
				t.Errorf("Expected 1 evaluation, got %v", count)
			}
		})
	}

	if n := testutil.CollectAndCount(collector.evaluationMetrics.evaluationDuration); n != 1 {
		t.Errorf("Expected 1 duration series, got %d", n)
	}
}

func TestCollector_ObserveRule(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.ObserveRule("respiratory", "critical-symptoms", false)
	collector.ObserveRule("respiratory", "critical-symptoms", false)
	collector.ObserveRule("respiratory", "full-common-picture", true)

	if misses := testutil.ToFloat64(collector.evaluationMetrics.missesTotal.WithLabelValues("respiratory", "critical-symptoms")); misses != 2 {
		t.Errorf("Expected 2 misses, got %v", misses)
	}
	if hits := testutil.ToFloat64(collector.evaluationMetrics.hitsTotal.WithLabelValues("respiratory", "full-common-picture")); hits != 1 {
		t.Errorf("Expected 1 hit, got %v", hits)
	}
}

func TestCollector_ObserveReload(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.ObserveReload(true, 3)
	collector.ObserveReload(false, 0)

	if n := testutil.ToFloat64(collector.reloadMetrics.reloadsTotal.WithLabelValues(ReloadSuccess)); n != 1 {
		t.Errorf("Expected 1 successful reload, got %v", n)
	}
	if n := testutil.ToFloat64(collector.reloadMetrics.reloadsTotal.WithLabelValues(ReloadFailure)); n != 1 {
		t.Errorf("Expected 1 failed reload, got %v", n)
	}
	if n := testutil.ToFloat64(collector.reloadMetrics.protocolsLoaded); n != 3 {
		t.Errorf("Expected failed reload to keep 3 loaded protocols, got %v", n)
	}
	if ts := testutil.ToFloat64(collector.reloadMetrics.lastReload); ts <= 0 {
		t.Errorf("Expected reload timestamp to be set, got %v", ts)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.ObserveEvaluation("respiratory", "critical-symptoms", "emergency", time.Millisecond)
	collector.ObserveRule("respiratory", "critical-symptoms", true)
	collector.ObserveReload(true, 1)

	if n := testutil.CollectAndCount(collector.evaluationMetrics.evaluationsTotal); n != 0 {
		t.Errorf("Expected no evaluation series when disabled, got %d", n)
	}
	if n := testutil.ToFloat64(collector.reloadMetrics.protocolsLoaded); n != 0 {
		t.Errorf("Expected protocols gauge untouched, got %v", n)
	}
}

func TestCollector_CardinalityOverflow(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.ObserveRule("respiratory", "first", true)
	collector.ObserveRule("respiratory", "second", true)

	if n := testutil.ToFloat64(collector.evaluationMetrics.hitsTotal.WithLabelValues("respiratory", RuleOther)); n != 1 {
		t.Errorf("Expected overflow rule under %q, got %v", RuleOther, n)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	limiter := NewCardinalityLimiter(2)

	if !limiter.Allow("a") || !limiter.Allow("b") {
		t.Fatal("Expected first two label sets to be allowed")
	}
	if !limiter.Allow("a") {
		t.Error("Expected existing label set to be allowed")
	}
	if limiter.Allow("c") {
		t.Error("Expected label set beyond the limit to be rejected")
	}
	if limiter.Count() != 2 {
		t.Errorf("Expected count 2, got %d", limiter.Count())
	}
}

func TestCollector_WriteTextfile(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.ObserveEvaluation("respiratory", "critical-symptoms", "emergency", time.Microsecond)

	path := filepath.Join(t.TempDir(), "triage.prom")
	if err := collector.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read textfile: %v", err)
	}
	want := `test_triage_evaluations_total{level="emergency",protocol="respiratory",rule="critical-symptoms"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}
}

func TestCollector_WriteTextfile_EmptyPath(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	if err := collector.WriteTextfile(""); err != nil {
		t.Errorf("Expected no-op for empty path, got %v", err)
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.ObserveRule("respiratory", "critical-symptoms", true)
		}()
	}
	wg.Wait()

	if n := testutil.ToFloat64(collector.evaluationMetrics.hitsTotal.WithLabelValues("respiratory", "critical-symptoms")); n != 50 {
		t.Errorf("Expected 50 hits, got %v", n)
	}
}
