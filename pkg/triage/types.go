package triage

import (
	"context"
	"time"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/spec"
)

// Level is a triage outcome.
type Level = ast.Level

// Triage levels from most to least severe.
const (
	LevelEmergency  = ast.LevelEmergency
	LevelUrgent     = ast.LevelUrgent
	LevelLessUrgent = ast.LevelLessUrgent
	LevelNonUrgent  = ast.LevelNonUrgent
)

// Source provides protocols to the engine.
type Source interface {
	// Load returns every protocol the source holds.
	Load(ctx context.Context) ([]*ast.Protocol, error)

	// Watch sends an event whenever the protocols may have changed. The
	// channel is closed when ctx is cancelled.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Event reports a change in a Source.
type Event struct {
	// Type is the kind of change.
	Type EventType

	// Path is the file that changed, empty for in-memory sources.
	Path string

	// Error is set when the source failed while watching.
	Error error
}

// EventType represents the type of protocol change.
type EventType string

const (
	EventCreated  EventType = "created"
	EventModified EventType = "modified"
	EventDeleted  EventType = "deleted"
)

// Decision is the result of evaluating one patient.
type Decision struct {
	// ID identifies the evaluation in logs.
	ID string `json:"id"`

	Patient patient.Patient `json:"patient"`

	// Level is the most severe level across protocols.
	Level Level `json:"level"`

	// Rule is the rule that decided Level, empty when a default level
	// applied.
	Rule string `json:"rule,omitempty"`

	// Protocol is the protocol that decided Level.
	Protocol string `json:"protocol"`

	// Outcomes holds one entry per loaded protocol, ordered by protocol
	// name.
	Outcomes []*Outcome `json:"outcomes"`

	Duration  time.Duration `json:"duration_ns"`
	Timestamp time.Time     `json:"timestamp"`
}

// Matched reports whether a rule decided the level.
func (d *Decision) Matched() bool {
	return d.Rule != ""
}

// Outcome is the result of one protocol for one patient.
type Outcome struct {
	Protocol string `json:"protocol"`
	Version  string `json:"version,omitempty"`
	Level    Level  `json:"level"`

	// Rule is the first matching rule, empty when none matched.
	Rule     string `json:"rule,omitempty"`
	Priority int    `json:"priority,omitempty"`

	// Trace lists the rules checked, in order, when tracing is enabled.
	Trace []RuleTrace `json:"trace,omitempty"`

	Duration time.Duration `json:"duration_ns"`
}

// RuleTrace records the evaluation of one rule.
type RuleTrace struct {
	Rule    string `json:"rule"`
	Matched bool   `json:"matched"`

	// Steps are the predicates evaluated, in evaluation order. Operands
	// skipped by short-circuiting are absent.
	Steps []spec.Step `json:"steps"`
}

// TestResult is the outcome of one protocol test case.
type TestResult struct {
	Protocol string `json:"protocol"`
	Test     string `json:"test"`
	Passed   bool   `json:"passed"`

	// Expected is what the test asserted.
	Expected ast.TestExpectation `json:"expected"`

	// Got is the protocol's outcome, nil when the test patient was
	// invalid.
	Got *Outcome `json:"got,omitempty"`

	// Message explains a failure.
	Message string `json:"message,omitempty"`

	Location ast.Location `json:"-"`
}

// Status describes the engine's loaded protocol set.
type Status struct {
	Protocols    int
	Rules        int
	LastReload   time.Time
	LastError    error
	ReloadCount  int
	FailureCount int
}
