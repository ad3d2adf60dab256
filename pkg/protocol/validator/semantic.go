package validator

import (
	"fmt"
	"sort"
	"strings"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/ast"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

type semanticChecker struct {
	p    *ast.Protocol
	errs *perrors.ErrorList
	used map[string]bool
}

func validateSemantics(p *ast.Protocol) *perrors.ErrorList {
	c := &semanticChecker{
		p:    p,
		errs: perrors.NewErrorList(),
		used: make(map[string]bool),
	}

	for _, name := range p.DefinitionOrder {
		c.checkCondition(p.Definitions[name].Condition)
	}
	for _, rule := range p.Rules {
		c.checkCondition(rule.When)
	}

	c.checkCycles()
	c.checkUnused()
	c.checkTests()

	return c.errs
}

func (c *semanticChecker) definitionNames() []string {
	names := append([]string(nil), c.p.DefinitionOrder...)
	sort.Strings(names)
	return names
}

func (c *semanticChecker) checkCondition(cond *ast.Condition) {
	if cond == nil {
		return
	}

	switch cond.Type {
	case ast.ConditionTypeRef:
		c.used[cond.Ref] = true
		if _, ok := c.p.Definitions[cond.Ref]; !ok {
			c.errs.AddErrorWithSuggestion(perrors.ErrorTypeSemantic,
				fmt.Sprintf("Undefined reference %q", cond.Ref), cond.Location,
				perrors.SuggestName(cond.Ref, c.definitionNames()))
		}

	case ast.ConditionTypeHasAll, ast.ConditionTypeHasAny:
		for _, tag := range cond.Symptoms {
			c.checkSymptom(tag, cond.Location)
		}
	}

	for _, child := range cond.Children {
		c.checkCondition(child)
	}
}

func (c *semanticChecker) checkSymptom(tag string, loc ast.Location) {
	s, err := patient.ParseSymptom(tag)
	if err != nil || s.IsKnown() {
		return
	}
	known := patient.Known()
	names := make([]string, len(known))
	for i, k := range known {
		names[i] = string(k)
	}
	c.errs.AddWarning(perrors.ErrorTypeSemantic,
		fmt.Sprintf("Unknown symptom %q", s), loc,
		perrors.SuggestName(string(s), names))
}

// checkCycles reports reference cycles between definitions with a DFS.
func (c *semanticChecker) checkCycles() {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(c.p.Definitions))
	reported := make(map[string]bool)

	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		def, ok := c.p.Definitions[name]
		if !ok {
			return
		}
		state[name] = inProgress
		path = append(path, name)

		for _, ref := range def.Condition.Refs() {
			switch state[ref] {
			case inProgress:
				cycle := cycleFrom(path, ref)
				key := strings.Join(cycle, "->")
				if !reported[key] {
					reported[key] = true
					c.errs.AddErrorWithSuggestion(perrors.ErrorTypeSemantic,
						fmt.Sprintf("Circular definition reference: %s", strings.Join(append(cycle, ref), " -> ")),
						def.Location,
						"Remove the circular dependency between definitions")
				}
			case unvisited:
				visit(ref, path)
			}
		}
		state[name] = done
	}

	for _, name := range c.p.DefinitionOrder {
		if state[name] == unvisited {
			visit(name, nil)
		}
	}
}

func cycleFrom(path []string, start string) []string {
	for i, n := range path {
		if n == start {
			return append([]string(nil), path[i:]...)
		}
	}
	return append([]string(nil), path...)
}

func (c *semanticChecker) checkUnused() {
	for _, name := range c.p.DefinitionOrder {
		if !c.used[name] {
			c.errs.AddWarning(perrors.ErrorTypeSemantic,
				fmt.Sprintf("Definition %q is never referenced", name),
				c.p.Definitions[name].Location,
				"Remove it or reference it with ref")
		}
	}
}

func (c *semanticChecker) checkTests() {
	for _, test := range c.p.Tests {
		if test.Expect.Rule == "" {
			continue
		}
		if c.p.Rule(test.Expect.Rule) == nil {
			names := make([]string, 0, len(c.p.Rules))
			for _, r := range c.p.Rules {
				names = append(names, r.Name)
			}
			c.errs.AddErrorWithSuggestion(perrors.ErrorTypeSemantic,
				fmt.Sprintf("Test %q expects unknown rule %q", test.Name, test.Expect.Rule),
				test.Location,
				perrors.SuggestName(test.Expect.Rule, names))
		}
	}
}
