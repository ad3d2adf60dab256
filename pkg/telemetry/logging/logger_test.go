package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    LogFormat
		wantErr bool
	}{
		{name: "json", config: Config{Level: "info", Format: "json"}, want: FormatJSON},
		{name: "text", config: Config{Level: "debug", Format: "text"}, want: FormatText},
		{name: "console", config: Config{Level: "warn", Format: "console"}, want: FormatConsole},
		{name: "defaults", config: Config{}, want: FormatJSON},
		{name: "upper case", config: Config{Level: "ERROR", Format: "TEXT"}, want: FormatText},
		{name: "invalid level", config: Config{Level: "loud"}, wantErr: true},
		{name: "invalid format", config: Config{Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if logger.Format() != tt.want {
				t.Errorf("Format() = %q, want %q", logger.Format(), tt.want)
			}
		})
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	line := strings.TrimSpace(buf.String())
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("invalid JSON log line %q: %v", line, err)
	}
	return entry
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "warn", Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug/info written at warn level: %s", buf.String())
	}

	logger.Warn("shown", "rule", "critical-symptoms")
	entry := decodeLine(t, buf)
	if entry["msg"] != "shown" || entry["rule"] != "critical-symptoms" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestLogger_Redaction(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", RedactPatientNames: true, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("evaluated",
		"patient", "Ana Souza",
		"rule", "full-common-picture",
		"note", "call ana@example.com",
	)

	entry := decodeLine(t, buf)
	if entry["patient"] != "A***" {
		t.Errorf("patient = %v, want A***", entry["patient"])
	}
	if entry["rule"] != "full-common-picture" {
		t.Errorf("rule = %v, want unchanged", entry["rule"])
	}
	if strings.Contains(entry["note"].(string), "ana@example.com") {
		t.Errorf("note not redacted: %v", entry["note"])
	}
}

func TestLogger_NoRedactionByDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("evaluated", "patient", "Ana Souza")
	if entry := decodeLine(t, buf); entry["patient"] != "Ana Souza" {
		t.Errorf("patient = %v, want Ana Souza", entry["patient"])
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", RedactPatientNames: true, Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.With("patient_name", "Bruno").Info("loaded")
	if entry := decodeLine(t, buf); entry["patient_name"] != "B***" {
		t.Errorf("patient_name = %v, want B***", entry["patient_name"])
	}
}

func TestLogger_ContextFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "json", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithEvaluationID(context.Background(), "eval-1")
	ctx = WithProtocol(ctx, "respiratory")

	t.Run("Logger", func(t *testing.T) {
		buf.Reset()
		logger.InfoContext(ctx, "decided")
		entry := decodeLine(t, buf)
		if entry["evaluation_id"] != "eval-1" || entry["protocol"] != "respiratory" {
			t.Errorf("context fields missing: %v", entry)
		}
	})

	t.Run("slog", func(t *testing.T) {
		buf.Reset()
		logger.Slog().InfoContext(ctx, "decided")
		entry := decodeLine(t, buf)
		if entry["evaluation_id"] != "eval-1" {
			t.Errorf("context fields missing: %v", entry)
		}
	})

	t.Run("WithContext", func(t *testing.T) {
		buf.Reset()
		logger.WithContext(WithBatchID(context.Background(), "batch-9")).Info("started")
		if entry := decodeLine(t, buf); entry["batch_id"] != "batch-9" {
			t.Errorf("batch_id missing: %v", entry)
		}
	})
}

func TestLogger_ConsoleOmitsTime(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Format: "console", Writer: buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hello")
	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console output contains time: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("console output missing message: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func BenchmarkLogger_Disabled(b *testing.B) {
	logger, _ := New(Config{Level: "error", Writer: &bytes.Buffer{}})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Debug("skipped", "rule", "r")
	}
}

func BenchmarkLogger_Redacted(b *testing.B) {
	logger, _ := New(Config{Level: "info", RedactPatientNames: true, Writer: &bytes.Buffer{}})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		logger.Info("evaluated", "patient", "Ana Souza", "level", "urgent")
	}
}
