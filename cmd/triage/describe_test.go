package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDescribeProtocols(t *testing.T) {
	tests := []struct {
		name   string
		expand bool
		want   []string
	}{
		{
			name: "definitions by name",
			want: []string{
				"respiratory v1.0 (default: non_urgent)",
				"[100] critical-symptoms → emergency",
				"(all_common AND NOT any_critical)",
			},
		},
		{
			name:   "expanded definitions",
			expand: true,
			want:   []string{"any_critical:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			describeFlags.protocols = "../../examples/protocols"
			describeFlags.expand = tt.expand
			describeFlags.format = "text"

			var out bytes.Buffer
			if err := describeProtocols(&out); err != nil {
				t.Fatalf("describeProtocols() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestDescribeProtocolsJSON(t *testing.T) {
	describeFlags.protocols = "testdata/valid-protocol.yaml"
	describeFlags.expand = false
	describeFlags.format = "json"

	var out bytes.Buffer
	if err := describeProtocols(&out); err != nil {
		t.Fatalf("describeProtocols() error = %v", err)
	}

	var report []ProtocolDescription
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(report) != 1 || len(report[0].Rules) != 1 {
		t.Fatalf("report = %+v", report)
	}

	rule := report[0].Rules[0]
	if rule.Name != "chest-pain" || rule.Level != "emergency" || rule.Expression != "chest" {
		t.Errorf("rule = %+v", rule)
	}
}
