package compiler

import (
	"fmt"
	"sort"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/ast"
	"mercator-hq/triage/pkg/spec"
)

// Compiled is an executable protocol.
type Compiled struct {
	Name         string
	Version      string
	SourceFile   string
	DefaultLevel ast.Level

	// Definitions maps definition names to their named specifications.
	Definitions map[string]spec.Spec[patient.Patient]

	// Rules holds the enabled rules in evaluation order.
	Rules []*Rule

	// Protocol is the source AST.
	Protocol *ast.Protocol
}

// Rule is a compiled rule.
type Rule struct {
	Name     string
	Level    ast.Level
	Priority int

	// Order is the rule's index in the source file.
	Order int

	// Spec is the rule condition, labelled with the rule name.
	Spec spec.Spec[patient.Patient]

	Source *ast.Rule
}

// Rule returns the compiled rule with the given name, or nil.
func (c *Compiled) Rule(name string) *Rule {
	for _, r := range c.Rules {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// CompileError reports a condition the compiler cannot translate. It only
// occurs for protocols that did not pass validation.
type CompileError struct {
	Protocol string
	Rule     string
	Location ast.Location
	Message  string
}

// Error returns the error message.
func (e *CompileError) Error() string {
	where := e.Protocol
	if e.Rule != "" {
		where += " rule " + e.Rule
	}
	if e.Location.IsValid() {
		return fmt.Sprintf("compile %s at %s: %s", where, e.Location, e.Message)
	}
	return fmt.Sprintf("compile %s: %s", where, e.Message)
}

type compiler struct {
	protocol *ast.Protocol
	rule     string
	defs     map[string]spec.Spec[patient.Patient]
	active   map[string]bool
}

// Compile translates p. The protocol should have been validated first.
func Compile(p *ast.Protocol) (*Compiled, error) {
	if p == nil {
		return nil, fmt.Errorf("protocol cannot be nil")
	}

	level := ast.DefaultLevel
	if p.DefaultLevel != "" {
		l, err := ast.ParseLevel(p.DefaultLevel)
		if err != nil {
			return nil, &CompileError{Protocol: p.Name, Location: p.Location, Message: err.Error()}
		}
		level = l
	}

	c := &compiler{
		protocol: p,
		defs:     make(map[string]spec.Spec[patient.Patient], len(p.Definitions)),
		active:   make(map[string]bool),
	}

	for _, name := range p.DefinitionOrder {
		if _, err := c.definition(name, p.Definitions[name].Location); err != nil {
			return nil, err
		}
	}

	rules := make([]*Rule, 0, len(p.Rules))
	for i, r := range p.Rules {
		if !r.Enabled {
			continue
		}
		c.rule = r.Name

		lvl, err := ast.ParseLevel(r.Level)
		if err != nil {
			return nil, c.fail(r.Location, "%s", err)
		}
		cond, err := c.condition(r.When)
		if err != nil {
			return nil, err
		}

		rules = append(rules, &Rule{
			Name:     r.Name,
			Level:    lvl,
			Priority: r.Priority,
			Order:    i,
			Spec:     spec.Named(r.Name, cond),
			Source:   r,
		})
	}
	c.rule = ""

	SortRules(rules)

	return &Compiled{
		Name:         p.Name,
		Version:      p.Version,
		SourceFile:   p.SourceFile,
		DefaultLevel: level,
		Definitions:  c.defs,
		Rules:        rules,
		Protocol:     p,
	}, nil
}

// SortRules orders rules by priority, highest first. Equal priorities
// keep source order.
func SortRules(rules []*Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		return rules[i].Order < rules[j].Order
	})
}

func (c *compiler) fail(loc ast.Location, format string, args ...any) error {
	return &CompileError{
		Protocol: c.protocol.Name,
		Rule:     c.rule,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

// definition compiles the named definition once, detecting cycles the
// validator would have reported.
func (c *compiler) definition(name string, loc ast.Location) (spec.Spec[patient.Patient], error) {
	if s, ok := c.defs[name]; ok {
		return s, nil
	}
	def, ok := c.protocol.Definitions[name]
	if !ok {
		return nil, c.fail(loc, "undefined reference %q", name)
	}
	if c.active[name] {
		return nil, c.fail(loc, "circular reference to %q", name)
	}

	c.active[name] = true
	defer delete(c.active, name)

	cond, err := c.condition(def.Condition)
	if err != nil {
		return nil, err
	}
	s := spec.Named(name, cond)
	c.defs[name] = s
	return s, nil
}

func (c *compiler) condition(cond *ast.Condition) (spec.Spec[patient.Patient], error) {
	if cond == nil {
		return nil, c.fail(ast.Location{}, "missing condition")
	}

	switch cond.Type {
	case ast.ConditionTypeHasAll, ast.ConditionTypeHasAny:
		symptoms := make([]patient.Symptom, 0, len(cond.Symptoms))
		for _, tag := range cond.Symptoms {
			s, err := patient.ParseSymptom(tag)
			if err != nil {
				return nil, c.fail(cond.Location, "%v", err)
			}
			symptoms = append(symptoms, s)
		}
		if cond.Type == ast.ConditionTypeHasAll {
			return patient.HasAllOf(symptoms...), nil
		}
		return patient.HasAnyOf(symptoms...), nil

	case ast.ConditionTypeAll, ast.ConditionTypeAny:
		children, err := c.children(cond.Children)
		if err != nil {
			return nil, err
		}
		if cond.Type == ast.ConditionTypeAll {
			return spec.All(children...), nil
		}
		return spec.Any(children...), nil

	case ast.ConditionTypeNot:
		if len(cond.Children) != 1 {
			return nil, c.fail(cond.Location, "not needs exactly one condition, got %d", len(cond.Children))
		}
		inner, err := c.condition(cond.Children[0])
		if err != nil {
			return nil, err
		}
		return spec.Not(inner), nil

	case ast.ConditionTypeRef:
		return c.definition(cond.Ref, cond.Location)

	default:
		return nil, c.fail(cond.Location, "unknown condition type %q", cond.Type)
	}
}

func (c *compiler) children(conds []*ast.Condition) ([]spec.Spec[patient.Patient], error) {
	out := make([]spec.Spec[patient.Patient], 0, len(conds))
	for _, child := range conds {
		s, err := c.condition(child)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
