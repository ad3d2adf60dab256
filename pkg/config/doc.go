// Package config provides configuration management for the triage tool.
//
// Configuration is loaded from an optional YAML file with environment
// variable overrides and validated with struct tags.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("triage.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("triage.yaml")
//
// An empty path loads the defaults.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention TRIAGE_SECTION_FIELD:
//
//   - TRIAGE_PROTOCOL_PATH overrides protocol.path
//   - TRIAGE_ENGINE_WORKERS overrides engine.workers
//   - TRIAGE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//   - TRIAGE_TELEMETRY_TRACING_ENABLED overrides telemetry.tracing.enabled
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	protocol:
//	  path: ./protocols
//	  strict: false
//
//	engine:
//	  workers: 8
//	  enable_trace: true
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: console
//	    redact_patient_names: true
//	  metrics:
//	    enabled: true
//	    textfile_path: /var/lib/node_exporter/triage.prom
package config
