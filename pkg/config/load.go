package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// Fields absent from the file keep their defaults. An empty path returns
// the defaults. The result is validated; environment variables are not
// consulted, use LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies TRIAGE_* environment variable overrides, which take precedence
// over the file.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Malformed
// values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	str := func(name string, dst *string) {
		if val := os.Getenv(name); val != "" {
			*dst = val
		}
	}
	boolean := func(name string, dst *bool) {
		if val := os.Getenv(name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid boolean %q", val)})
				return
			}
			*dst = b
		}
	}
	integer := func(name string, dst *int) {
		if val := os.Getenv(name); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid integer %q", val)})
				return
			}
			*dst = i
		}
	}
	float := func(name string, dst *float64) {
		if val := os.Getenv(name); val != "" {
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid number %q", val)})
				return
			}
			*dst = f
		}
	}
	duration := func(name string, dst *time.Duration) {
		if val := os.Getenv(name); val != "" {
			d, err := time.ParseDuration(val)
			if err != nil {
				errs = append(errs, FieldError{Field: name, Message: fmt.Sprintf("invalid duration %q", val)})
				return
			}
			*dst = d
		}
	}

	// Protocol overrides
	str("TRIAGE_PROTOCOL_PATH", &cfg.Protocol.Path)
	boolean("TRIAGE_PROTOCOL_STRICT", &cfg.Protocol.Strict)
	integer("TRIAGE_PROTOCOL_MAX_DEPTH", &cfg.Protocol.MaxDepth)
	duration("TRIAGE_PROTOCOL_DEBOUNCE_INTERVAL", &cfg.Protocol.DebounceInterval)

	// Engine overrides
	integer("TRIAGE_ENGINE_WORKERS", &cfg.Engine.Workers)
	boolean("TRIAGE_ENGINE_ENABLE_TRACE", &cfg.Engine.EnableTrace)
	integer("TRIAGE_ENGINE_MAX_PROTOCOLS", &cfg.Engine.MaxProtocols)
	duration("TRIAGE_ENGINE_EVALUATION_TIMEOUT", &cfg.Engine.EvaluationTimeout)

	// Telemetry overrides
	str("TRIAGE_TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	str("TRIAGE_TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	boolean("TRIAGE_TELEMETRY_LOGGING_REDACT_PATIENT_NAMES", &cfg.Telemetry.Logging.RedactPatientNames)
	boolean("TRIAGE_TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	str("TRIAGE_TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	str("TRIAGE_TELEMETRY_METRICS_TEXTFILE_PATH", &cfg.Telemetry.Metrics.TextfilePath)
	boolean("TRIAGE_TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	str("TRIAGE_TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	float("TRIAGE_TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	str("TRIAGE_TELEMETRY_TRACING_OUTPUT_PATH", &cfg.Telemetry.Tracing.OutputPath)
	duration("TRIAGE_TELEMETRY_HEALTH_CHECK_TIMEOUT", &cfg.Telemetry.Health.CheckTimeout)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
