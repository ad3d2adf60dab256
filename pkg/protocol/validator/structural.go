package validator

import (
	"fmt"
	"regexp"

	"mercator-hq/triage/pkg/patient"
	"mercator-hq/triage/pkg/protocol/ast"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

func levelNames() []string {
	levels := ast.Levels()
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}
	return out
}

func validateStructure(p *ast.Protocol) *perrors.ErrorList {
	errs := perrors.NewErrorList()

	if p.Name == "" {
		errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			"Protocol name is required", p.Location,
			perrors.SuggestMissingField("name", "respiratory"))
	} else if !namePattern.MatchString(p.Name) {
		errs.AddError(perrors.ErrorTypeStructural,
			fmt.Sprintf("Invalid protocol name %q", p.Name), p.Location)
	}

	if p.DefaultLevel != "" {
		checkLevel(errs, p.DefaultLevel, p.Location)
	}

	for _, name := range p.DefinitionOrder {
		def := p.Definitions[name]
		if !namePattern.MatchString(name) {
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("Invalid definition name %q", name), def.Location)
		}
		if def.Condition == nil {
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("Definition %q has no condition", name), def.Location)
			continue
		}
		checkCondition(errs, def.Condition)
	}

	if len(p.Rules) == 0 {
		errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			"Protocol has no rules", p.Location,
			perrors.SuggestMissingField("rules", "[...]"))
	}

	seen := make(map[string]ast.Location, len(p.Rules))
	for i, rule := range p.Rules {
		if rule.Name == "" {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("Rule at index %d has no name", i), rule.Location,
				perrors.SuggestMissingField("name", ""))
		} else if prev, dup := seen[rule.Name]; dup {
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("Duplicate rule name %q (first defined at %s)", rule.Name, prev),
				rule.Location)
		} else {
			seen[rule.Name] = rule.Location
		}

		if rule.Level == "" {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("Rule %q has no level", rule.Name), rule.Location,
				perrors.SuggestMissingField("level", string(ast.LevelUrgent)))
		} else {
			checkLevel(errs, rule.Level, rule.Location)
		}

		if rule.When == nil {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("Rule %q has no condition", rule.Name), rule.Location,
				perrors.SuggestMissingField("when", "{has_any: [CHEST_PAIN]}"))
			continue
		}
		checkCondition(errs, rule.When)
	}

	for i, test := range p.Tests {
		if test.Name == "" {
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("Test at index %d has no name", i), test.Location)
		}
		if test.Expect.Level == "" && test.Expect.Rule == "" {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("Test %q expects nothing", test.Name), test.Location,
				perrors.SuggestMissingField("expect", "{level: urgent}"))
		}
		if test.Expect.Level != "" {
			checkLevel(errs, test.Expect.Level, test.Location)
		}
		for _, tag := range test.Patient.Symptoms {
			if _, err := patient.ParseSymptom(tag); err != nil {
				errs.AddError(perrors.ErrorTypeStructural, err.Error(), test.Location)
			}
		}
	}

	return errs
}

func checkLevel(errs *perrors.ErrorList, level string, loc ast.Location) {
	if _, err := ast.ParseLevel(level); err != nil {
		errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("Unknown level %q", level), loc,
			perrors.SuggestName(level, levelNames()))
	}
}

func checkCondition(errs *perrors.ErrorList, c *ast.Condition) {
	switch c.Type {
	case ast.ConditionTypeHasAll, ast.ConditionTypeHasAny:
		if len(c.Symptoms) == 0 {
			errs.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
				fmt.Sprintf("%q needs at least one symptom", c.Type), c.Location,
				"An empty has_all always matches and an empty has_any never does")
		}
		for _, tag := range c.Symptoms {
			if _, err := patient.ParseSymptom(tag); err != nil {
				errs.AddError(perrors.ErrorTypeStructural, err.Error(), c.Location)
			}
		}
	case ast.ConditionTypeAll, ast.ConditionTypeAny:
		if len(c.Children) == 0 {
			errs.AddWarning(perrors.ErrorTypeStructural,
				fmt.Sprintf("Empty %q is constant", c.Type), c.Location,
				"An empty all always matches and an empty any never does")
		}
	case ast.ConditionTypeNot:
		if len(c.Children) != 1 {
			errs.AddError(perrors.ErrorTypeStructural,
				fmt.Sprintf("\"not\" needs exactly one condition, got %d", len(c.Children)), c.Location)
		}
	case ast.ConditionTypeRef:
		if c.Ref == "" {
			errs.AddError(perrors.ErrorTypeStructural, "Empty reference", c.Location)
		}
	default:
		errs.AddError(perrors.ErrorTypeStructural,
			fmt.Sprintf("Unknown condition type %q", c.Type), c.Location)
	}

	for _, child := range c.Children {
		checkCondition(errs, child)
	}
}
