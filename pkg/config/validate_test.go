package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing protocol path",
			modify:    func(c *Config) { c.Protocol.Path = "" },
			wantField: "protocol.path",
			wantMsg:   "field is required",
		},
		{
			name:      "max depth too large",
			modify:    func(c *Config) { c.Protocol.MaxDepth = 65 },
			wantField: "protocol.max_depth",
			wantMsg:   "must be at most 64",
		},
		{
			name:      "zero workers",
			modify:    func(c *Config) { c.Engine.Workers = 0 },
			wantField: "engine.workers",
			wantMsg:   "must be at least 1",
		},
		{
			name:      "unknown format",
			modify:    func(c *Config) { c.Telemetry.Logging.Format = "xml" },
			wantField: "telemetry.logging.format",
			wantMsg:   "must be one of json, text, console",
		},
		{
			name: "invalid redact pattern",
			modify: func(c *Config) {
				c.Telemetry.Logging.RedactPatterns = []RedactPattern{{Name: "mrn", Pattern: "MRN-[0-9"}}
			},
			wantField: "telemetry.logging.redact_patterns[0].pattern",
			wantMsg:   "invalid regular expression",
		},
		{
			name:      "unknown sampler",
			modify:    func(c *Config) { c.Telemetry.Tracing.Sampler = "sometimes" },
			wantField: "telemetry.tracing.sampler",
			wantMsg:   "must be one of always, never, ratio",
		},
		{
			name:      "sample ratio above one",
			modify:    func(c *Config) { c.Telemetry.Tracing.SampleRatio = 1.5 },
			wantField: "telemetry.tracing.sample_ratio",
			wantMsg:   "must be at most 1",
		},
		{
			name:      "remote exporter",
			modify:    func(c *Config) { c.Telemetry.Tracing.Exporter = "otlp" },
			wantField: "telemetry.tracing.exporter",
			wantMsg:   "must be one of stdout",
		},
		{
			name:      "invalid subsystem",
			modify:    func(c *Config) { c.Telemetry.Metrics.Subsystem = "9engine" },
			wantField: "telemetry.metrics.subsystem",
			wantMsg:   "invalid metric name",
		},
		{
			name:      "non-positive bucket",
			modify:    func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{0.001, 0} },
			wantField: "telemetry.metrics.duration_buckets[1]",
			wantMsg:   "must be greater than 0",
		},
		{
			name:      "unsorted buckets",
			modify:    func(c *Config) { c.Telemetry.Metrics.DurationBuckets = []float64{0.01, 0.001} },
			wantField: "telemetry.metrics.duration_buckets",
			wantMsg:   "strictly increasing",
		},
		{
			name:      "textfile extension",
			modify:    func(c *Config) { c.Telemetry.Metrics.TextfilePath = "/tmp/triage.txt" },
			wantField: "telemetry.metrics.textfile_path",
			wantMsg:   ".prom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}

			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}

			for _, fe := range verr.Errors {
				if fe.Field == tt.wantField {
					if !strings.Contains(fe.Message, tt.wantMsg) {
						t.Errorf("expected message containing %q, got %q", tt.wantMsg, fe.Message)
					}
					return
				}
			}
			t.Errorf("expected error on field %q, got %v", tt.wantField, verr.Errors)
		})
	}
}

func TestValidate_EmptySubsystemAllowed(t *testing.T) {
	cfg := Default()
	cfg.Telemetry.Metrics.Subsystem = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("empty subsystem should be allowed: %v", err)
	}
}

func TestValidationError_Error(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "engine.workers", Message: "must be at least 1"}}}
	if got := single.Error(); got != "configuration validation failed: engine.workers: must be at least 1" {
		t.Errorf("unexpected message: %q", got)
	}

	multi := ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
	}}
	if got := multi.Error(); !strings.Contains(got, "with 2 errors") || !strings.Contains(got, "  - b: y") {
		t.Errorf("unexpected message: %q", got)
	}
}
