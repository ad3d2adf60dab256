package ast

// Protocol is the root node of a parsed protocol file.
type Protocol struct {
	Name         string
	Version      string
	Description  string
	DefaultLevel string // raw; empty means DefaultLevel

	// Definitions holds named conditions reusable through ref.
	Definitions map[string]*Definition

	// DefinitionOrder lists definition names in source order.
	DefinitionOrder []string

	Rules []*Rule
	Tests []*Test

	SourceFile string
	Location   Location
}

// Definition is a named, reusable condition.
type Definition struct {
	Name      string
	Condition *Condition
	Location  Location
}

// Rule maps a condition to a triage level.
type Rule struct {
	Name        string
	Description string
	Level       string // raw, validated by the validator
	Priority    int
	Enabled     bool
	When        *Condition
	Location    Location
}

// Test is an example patient with its expected outcome, run by
// `triage test`.
type Test struct {
	Name     string
	Patient  TestPatient
	Expect   TestExpectation
	Location Location
}

// TestPatient describes the patient of a Test.
type TestPatient struct {
	Name     string
	Symptoms []string
}

// TestExpectation is the outcome a Test asserts. Empty fields are not
// checked.
type TestExpectation struct {
	Level string
	Rule  string
}

// Rule returns the rule with the given name, or nil.
func (p *Protocol) Rule(name string) *Rule {
	for _, r := range p.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// EnabledRules returns the rules with Enabled set, in source order.
func (p *Protocol) EnabledRules() []*Rule {
	out := make([]*Rule, 0, len(p.Rules))
	for _, r := range p.Rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
