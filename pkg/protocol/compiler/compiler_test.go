package compiler

import (
	"errors"
	"testing"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/protocol/parser"
	"mercator-hq/triage/pkg/spec"
)

func compile(t *testing.T, src string) *Compiled {
	t.Helper()
	p, err := parser.ParseBytes([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	c, err := Compile(p)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return c
}

func TestCompile_ExampleProtocol(t *testing.T) {
	p, err := parser.Parse("../../../examples/protocols/respiratory.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c, err := Compile(p)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if c.Name != "respiratory" {
		t.Errorf("Name = %q, want respiratory", c.Name)
	}
	if c.DefaultLevel != ast.LevelNonUrgent {
		t.Errorf("DefaultLevel = %q, want %q", c.DefaultLevel, ast.LevelNonUrgent)
	}
	if len(c.Definitions) != 4 {
		t.Errorf("len(Definitions) = %d, want 4", len(c.Definitions))
	}

	wantOrder := []string{"critical-symptoms", "full-common-picture", "mild-presentation"}
	if len(c.Rules) != len(wantOrder) {
		t.Fatalf("len(Rules) = %d, want %d", len(c.Rules), len(wantOrder))
	}
	for i, name := range wantOrder {
		if c.Rules[i].Name != name {
			t.Errorf("Rules[%d] = %q, want %q", i, c.Rules[i].Name, name)
		}
	}

	// Every embedded test must agree with first-match evaluation.
	for _, test := range p.Tests {
		t.Run(test.Name, func(t *testing.T) {
			set, err := patient.ParseSymptomSet(test.Patient.Symptoms...)
			if err != nil {
				t.Fatalf("ParseSymptomSet() error = %v", err)
			}
			pt := patient.Patient{Name: test.Patient.Name, Symptoms: set}

			level, rule := c.DefaultLevel, ""
			for _, r := range c.Rules {
				if r.Spec.IsSatisfiedBy(pt) {
					level, rule = r.Level, r.Name
					break
				}
			}
			if string(level) != test.Expect.Level {
				t.Errorf("level = %q, want %q", level, test.Expect.Level)
			}
			if test.Expect.Rule != "" && rule != test.Expect.Rule {
				t.Errorf("rule = %q, want %q", rule, test.Expect.Rule)
			}
		})
	}
}

func TestCompile_ConditionMapping(t *testing.T) {
	c := compile(t, `
name: p
definitions:
  crit: {has_any: [CHEST_PAIN]}
rules:
  - name: r
    level: urgent
    when:
      any:
        - {has_all: [FEVER, FATIGUE]}
        - {not: {ref: crit}}
`)

	r := c.Rule("r")
	if r == nil {
		t.Fatal("Rule(r) = nil")
	}

	want := "r:(has_all[FEVER,FATIGUE] OR NOT crit:has_any[CHEST_PAIN])"
	if got := spec.DescribeExpanded(r.Spec); got != want {
		t.Errorf("DescribeExpanded() = %q, want %q", got, want)
	}
	if got := spec.Describe(r.Spec); got != "r" {
		t.Errorf("Describe() = %q, want r", got)
	}
}

func TestCompile_EmptyCombinators(t *testing.T) {
	c := compile(t, `
name: p
rules:
  - name: always
    level: urgent
    when: {all: []}
  - name: never
    level: emergency
    when: {any: []}
`)

	nobody := patient.New("Nobody")
	if !c.Rule("always").Spec.IsSatisfiedBy(nobody) {
		t.Error("empty all should be satisfied")
	}
	if c.Rule("never").Spec.IsSatisfiedBy(nobody) {
		t.Error("empty any should not be satisfied")
	}
}

func TestCompile_DefinitionsShared(t *testing.T) {
	c := compile(t, `
name: p
definitions:
  crit: {has_any: [CHEST_PAIN]}
rules:
  - name: a
    level: emergency
    when: {ref: crit}
  - name: b
    level: urgent
    when: {not: {ref: crit}}
`)

	shared := c.Definitions["crit"]
	a := c.Rule("a").Spec.(*spec.NamedSpec[patient.Patient]).Inner()
	b := c.Rule("b").Spec.(*spec.NamedSpec[patient.Patient]).Inner().(*spec.NotSpec[patient.Patient]).Inner()
	if a != shared || b != shared {
		t.Error("rules should reference the same compiled definition")
	}
}

func TestCompile_PriorityOrdering(t *testing.T) {
	c := compile(t, `
name: p
rules:
  - name: low
    level: less_urgent
    priority: 1
    when: {has_any: [HEADACHE]}
  - name: high-first
    level: urgent
    priority: 5
    when: {has_any: [FEVER]}
  - name: disabled
    level: emergency
    priority: 100
    enabled: false
    when: {has_any: [FEVER]}
  - name: high-second
    level: emergency
    priority: 5
    when: {has_any: [FEVER]}
`)

	want := []string{"high-first", "high-second", "low"}
	if len(c.Rules) != len(want) {
		t.Fatalf("len(Rules) = %d, want %d", len(c.Rules), len(want))
	}
	for i, name := range want {
		if c.Rules[i].Name != name {
			t.Errorf("Rules[%d] = %q, want %q", i, c.Rules[i].Name, name)
		}
	}
	if c.Rule("disabled") != nil {
		t.Error("disabled rule was compiled")
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "undefined reference",
			src: `
name: p
rules:
  - name: r
    level: urgent
    when: {ref: missing}
`,
		},
		{
			name: "cycle",
			src: `
name: p
definitions:
  a: {not: {ref: b}}
  b: {not: {ref: a}}
rules:
  - name: r
    level: urgent
    when: {ref: a}
`,
		},
		{
			name: "bad level",
			src: `
name: p
rules:
  - name: r
    level: soon
    when: {has_any: [FEVER]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := parser.ParseBytes([]byte(tt.src), "test.yaml")
			if err != nil {
				t.Fatalf("ParseBytes() error = %v", err)
			}
			_, err = Compile(p)
			var compileErr *CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("Compile() error = %v, want *CompileError", err)
			}
		})
	}
}

func TestCompile_Nil(t *testing.T) {
	if _, err := Compile(nil); err == nil {
		t.Error("Compile(nil) error = nil, want error")
	}
}

func TestCompile_LevelMessageKeepsPercent(t *testing.T) {
	p, err := parser.ParseBytes([]byte(`
name: p
rules:
  - name: r
    level: "100%d"
    when: {has_any: [FEVER]}
`), "test.yaml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	_, err = Compile(p)
	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("Compile() error = %v, want *CompileError", err)
	}
	if want := `unknown triage level "100%d"`; compileErr.Message != want {
		t.Errorf("Message = %q, want %q", compileErr.Message, want)
	}
}
