package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
protocol:
  path: "./examples/protocols"
  strict: true
  max_depth: 8
  debounce_interval: "250ms"

engine:
  workers: 16
  enable_trace: true
  evaluation_timeout: "2s"

telemetry:
  logging:
    level: "debug"
    format: "json"
    redact_patient_names: false
  metrics:
    namespace: "clinic"
    textfile_path: "/var/lib/node_exporter/triage.prom"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Protocol.Path != "./examples/protocols" {
		t.Errorf("expected protocol path %q, got %q", "./examples/protocols", cfg.Protocol.Path)
	}
	if !cfg.Protocol.Strict {
		t.Error("expected strict mode to be enabled")
	}
	if cfg.Protocol.MaxDepth != 8 {
		t.Errorf("expected max depth 8, got %d", cfg.Protocol.MaxDepth)
	}
	if cfg.Protocol.DebounceInterval != 250*time.Millisecond {
		t.Errorf("expected debounce %v, got %v", 250*time.Millisecond, cfg.Protocol.DebounceInterval)
	}
	if cfg.Protocol.MaxFileSize != DefaultProtocolMaxFileSize {
		t.Errorf("expected default max file size, got %d", cfg.Protocol.MaxFileSize)
	}
	if cfg.Engine.Workers != 16 {
		t.Errorf("expected 16 workers, got %d", cfg.Engine.Workers)
	}
	if cfg.Engine.EvaluationTimeout != 2*time.Second {
		t.Errorf("expected evaluation timeout %v, got %v", 2*time.Second, cfg.Engine.EvaluationTimeout)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level %q, got %q", "debug", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.RedactPatientNames {
		t.Error("expected explicit false to override the default")
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to stay enabled by default")
	}
	if cfg.Telemetry.Metrics.Subsystem != DefaultMetricsSubsystem {
		t.Errorf("expected subsystem %q, got %q", DefaultMetricsSubsystem, cfg.Telemetry.Metrics.Subsystem)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.Protocol.Path != DefaultProtocolPath {
		t.Errorf("expected default path %q, got %q", DefaultProtocolPath, cfg.Protocol.Path)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "protocol: [unterminated",
			wantErr: "failed to parse configuration file",
		},
		{
			name: "invalid log level",
			content: `
telemetry:
  logging:
    level: "verbose"
`,
			wantErr: "telemetry.logging.level",
		},
		{
			name: "too many workers",
			content: `
engine:
  workers: 5000
`,
			wantErr: "engine.workers",
		},
		{
			name: "invalid metric namespace",
			content: `
telemetry:
  metrics:
    namespace: "triage-engine"
`,
			wantErr: "telemetry.metrics.namespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
protocol:
  path: "./from-file"
engine:
  workers: 2
`)

	t.Setenv("TRIAGE_PROTOCOL_PATH", "./from-env")
	t.Setenv("TRIAGE_PROTOCOL_STRICT", "true")
	t.Setenv("TRIAGE_ENGINE_WORKERS", "8")
	t.Setenv("TRIAGE_ENGINE_EVALUATION_TIMEOUT", "500ms")
	t.Setenv("TRIAGE_TELEMETRY_LOGGING_FORMAT", "text")
	t.Setenv("TRIAGE_TELEMETRY_METRICS_ENABLED", "false")
	t.Setenv("TRIAGE_TELEMETRY_TRACING_SAMPLER", "ratio")
	t.Setenv("TRIAGE_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Protocol.Path != "./from-env" {
		t.Errorf("expected env path to win, got %q", cfg.Protocol.Path)
	}
	if !cfg.Protocol.Strict {
		t.Error("expected strict from env")
	}
	if cfg.Engine.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Engine.Workers)
	}
	if cfg.Engine.EvaluationTimeout != 500*time.Millisecond {
		t.Errorf("expected 500ms timeout, got %v", cfg.Engine.EvaluationTimeout)
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("expected text format, got %q", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics disabled from env")
	}
	if cfg.Telemetry.Tracing.Sampler != "ratio" || cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected ratio sampler at 0.25, got %q at %v", cfg.Telemetry.Tracing.Sampler, cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoadConfigWithEnvOverrides_Malformed(t *testing.T) {
	t.Setenv("TRIAGE_ENGINE_WORKERS", "many")
	t.Setenv("TRIAGE_PROTOCOL_STRICT", "sometimes")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected error for malformed environment values")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(verr.Errors), verr)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidAfterOverride(t *testing.T) {
	t.Setenv("TRIAGE_TELEMETRY_LOGGING_LEVEL", "loud")

	_, err := LoadConfigWithEnvOverrides("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}
