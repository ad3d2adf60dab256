package config

import (
	"testing"
	"time"
)

func TestApplyDefaults_ZeroConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Protocol.Path != DefaultProtocolPath {
		t.Errorf("expected path %q, got %q", DefaultProtocolPath, cfg.Protocol.Path)
	}
	if cfg.Protocol.MaxDepth != DefaultProtocolMaxDepth {
		t.Errorf("expected max depth %d, got %d", DefaultProtocolMaxDepth, cfg.Protocol.MaxDepth)
	}
	if cfg.Protocol.DebounceInterval != 100*time.Millisecond {
		t.Errorf("expected debounce 100ms, got %v", cfg.Protocol.DebounceInterval)
	}
	if cfg.Engine.Workers != DefaultEngineWorkers {
		t.Errorf("expected %d workers, got %d", DefaultEngineWorkers, cfg.Engine.Workers)
	}
	if cfg.Telemetry.Logging.Format != DefaultLoggingFormat {
		t.Errorf("expected format %q, got %q", DefaultLoggingFormat, cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("expected namespace %q, got %q", DefaultMetricsNamespace, cfg.Telemetry.Metrics.Namespace)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Protocol: ProtocolConfig{Path: "/etc/triage", MaxDepth: 4},
		Engine:   EngineConfig{Workers: 32},
	}
	ApplyDefaults(cfg)

	if cfg.Protocol.Path != "/etc/triage" {
		t.Errorf("path overwritten: %q", cfg.Protocol.Path)
	}
	if cfg.Protocol.MaxDepth != 4 {
		t.Errorf("max depth overwritten: %d", cfg.Protocol.MaxDepth)
	}
	if cfg.Engine.Workers != 32 {
		t.Errorf("workers overwritten: %d", cfg.Engine.Workers)
	}
}
