package parser

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mercator-hq/triage/pkg/protocol/ast"
	perrors "mercator-hq/triage/pkg/protocol/errors"
)

var (
	protocolKeys = []string{"name", "version", "description", "default_level", "definitions", "rules", "tests"}
	ruleKeys     = []string{"name", "description", "level", "priority", "enabled", "when"}
	testKeys     = []string{"name", "patient", "expect"}
)

// builder turns yaml nodes into AST nodes, collecting structural errors.
type builder struct {
	sourcePath string
	maxDepth   int
	errors     *perrors.ErrorList
}

func newBuilder(sourcePath string, maxDepth int) *builder {
	return &builder{
		sourcePath: sourcePath,
		maxDepth:   maxDepth,
		errors:     perrors.NewErrorList(),
	}
}

func (b *builder) loc(node *yaml.Node) ast.Location {
	return ast.Location{File: b.sourcePath, Line: node.Line, Column: node.Column}
}

func (b *builder) fail(node *yaml.Node, format string, args ...any) {
	b.errors.AddError(perrors.ErrorTypeStructural, fmt.Sprintf(format, args...), b.loc(node))
}

// fields returns the pairs of a field mapping, reporting repeated keys.
// Only the first occurrence of a key is kept.
func (b *builder) fields(node *yaml.Node) [][2]*yaml.Node {
	pairs := mappingPairs(node)
	seen := make(map[string]bool, len(pairs))
	out := pairs[:0]
	for _, pair := range pairs {
		key := pair[0]
		if seen[key.Value] {
			b.fail(key, "Duplicate field %q", key.Value)
			continue
		}
		seen[key.Value] = true
		out = append(out, pair)
	}
	return out
}

func (b *builder) buildProtocol(root *yaml.Node) (*ast.Protocol, error) {
	protocol := &ast.Protocol{
		SourceFile:  b.sourcePath,
		Definitions: make(map[string]*ast.Definition),
		Location:    b.loc(root),
	}

	if root.Kind != yaml.MappingNode {
		b.fail(root, "Protocol must be a mapping, got %s", kindName(root))
		return nil, b.errors
	}

	for _, pair := range b.fields(root) {
		key, value := pair[0], pair[1]
		switch key.Value {
		case "name":
			protocol.Name = b.scalarString(value, "name")
		case "version":
			protocol.Version = b.scalarString(value, "version")
		case "description":
			protocol.Description = b.scalarString(value, "description")
		case "default_level":
			protocol.DefaultLevel = b.scalarString(value, "default_level")
		case "definitions":
			b.buildDefinitions(value, protocol)
		case "rules":
			protocol.Rules = b.buildRules(value)
		case "tests":
			protocol.Tests = b.buildTests(value)
		default:
			b.unknownKey(key, protocolKeys)
		}
	}

	if b.errors.HasErrors() {
		return nil, b.errors
	}
	return protocol, nil
}

func (b *builder) unknownKey(key *yaml.Node, valid []string) {
	b.errors.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
		fmt.Sprintf("Unknown field %q", key.Value),
		b.loc(key),
		perrors.SuggestName(key.Value, valid))
}

func (b *builder) scalarString(node *yaml.Node, field string) string {
	if node.Kind != yaml.ScalarNode {
		b.fail(node, "Field %q must be a string, got %s", field, kindName(node))
		return ""
	}
	return node.Value
}

func (b *builder) scalarInt(node *yaml.Node, field string) int {
	var v int
	if node.Kind != yaml.ScalarNode || node.Decode(&v) != nil {
		b.fail(node, "Field %q must be an integer", field)
		return 0
	}
	return v
}

func (b *builder) scalarBool(node *yaml.Node, field string) bool {
	var v bool
	if node.Kind != yaml.ScalarNode || node.Decode(&v) != nil {
		b.fail(node, "Field %q must be a boolean", field)
		return false
	}
	return v
}

func (b *builder) stringList(node *yaml.Node, field string) []string {
	if node.Kind != yaml.SequenceNode {
		b.fail(node, "Field %q must be a list, got %s", field, kindName(node))
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode {
			b.fail(item, "Entries of %q must be strings, got %s", field, kindName(item))
			continue
		}
		out = append(out, item.Value)
	}
	return out
}

func (b *builder) buildDefinitions(node *yaml.Node, protocol *ast.Protocol) {
	if node.Kind != yaml.MappingNode {
		b.fail(node, "Field \"definitions\" must be a mapping, got %s", kindName(node))
		return
	}
	for _, pair := range mappingPairs(node) {
		key, value := pair[0], pair[1]
		name := key.Value
		if _, dup := protocol.Definitions[name]; dup {
			b.fail(key, "Duplicate definition %q", name)
			continue
		}
		protocol.Definitions[name] = &ast.Definition{
			Name:      name,
			Condition: b.buildCondition(value, 1),
			Location:  b.loc(key),
		}
		protocol.DefinitionOrder = append(protocol.DefinitionOrder, name)
	}
}

func (b *builder) buildRules(node *yaml.Node) []*ast.Rule {
	if node.Kind != yaml.SequenceNode {
		b.fail(node, "Field \"rules\" must be a list, got %s", kindName(node))
		return nil
	}

	rules := make([]*ast.Rule, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			b.fail(item, "Rule at index %d must be a mapping, got %s", i, kindName(item))
			continue
		}
		rules = append(rules, b.buildRule(item))
	}
	return rules
}

func (b *builder) buildRule(node *yaml.Node) *ast.Rule {
	rule := &ast.Rule{
		Enabled:  true,
		Location: b.loc(node),
	}

	for _, pair := range b.fields(node) {
		key, value := pair[0], pair[1]
		switch key.Value {
		case "name":
			rule.Name = b.scalarString(value, "name")
		case "description":
			rule.Description = b.scalarString(value, "description")
		case "level":
			rule.Level = b.scalarString(value, "level")
		case "priority":
			rule.Priority = b.scalarInt(value, "priority")
		case "enabled":
			rule.Enabled = b.scalarBool(value, "enabled")
		case "when":
			rule.When = b.buildCondition(value, 1)
		default:
			b.unknownKey(key, ruleKeys)
		}
	}
	return rule
}

// buildCondition builds a condition tree. depth is 1 for the root.
func (b *builder) buildCondition(node *yaml.Node, depth int) *ast.Condition {
	if depth > b.maxDepth {
		b.errors.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("Condition nesting exceeds maximum depth %d", b.maxDepth),
			b.loc(node),
			"Move part of the condition into a named definition and use ref")
		return nil
	}

	switch node.Kind {
	case yaml.SequenceNode:
		return b.buildImplicitAll(node, depth)
	case yaml.MappingNode:
	default:
		b.fail(node, "Condition must be a mapping or a list, got %s", kindName(node))
		return nil
	}

	pairs := mappingPairs(node)
	if len(pairs) != 1 {
		b.errors.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("Condition must have exactly one keyword, got %d", len(pairs)),
			b.loc(node),
			"Wrap several conditions in 'all' or 'any'")
		return nil
	}

	key, value := pairs[0][0], pairs[0][1]
	cond := &ast.Condition{
		Type:     ast.ConditionType(key.Value),
		Location: b.loc(key),
	}

	switch cond.Type {
	case ast.ConditionTypeHasAll, ast.ConditionTypeHasAny:
		cond.Symptoms = b.stringList(value, key.Value)

	case ast.ConditionTypeAll, ast.ConditionTypeAny:
		if value.Kind != yaml.SequenceNode {
			b.fail(value, "%q must have a list of conditions, got %s", key.Value, kindName(value))
			return nil
		}
		cond.Children = b.buildChildren(value, depth)

	case ast.ConditionTypeNot:
		child := value
		if value.Kind == yaml.SequenceNode {
			if len(value.Content) != 1 {
				b.fail(value, "\"not\" takes exactly one condition, got %d", len(value.Content))
				return nil
			}
			child = value.Content[0]
		}
		if c := b.buildCondition(child, depth+1); c != nil {
			cond.Children = []*ast.Condition{c}
		}

	case ast.ConditionTypeRef:
		cond.Ref = b.scalarString(value, "ref")

	default:
		b.errors.AddErrorWithSuggestion(perrors.ErrorTypeStructural,
			fmt.Sprintf("Unknown condition keyword %q", key.Value),
			b.loc(key),
			perrors.SuggestName(key.Value, conditionKeywords()))
		return nil
	}

	return cond
}

func (b *builder) buildChildren(node *yaml.Node, depth int) []*ast.Condition {
	children := make([]*ast.Condition, 0, len(node.Content))
	for _, item := range node.Content {
		if c := b.buildCondition(item, depth+1); c != nil {
			children = append(children, c)
		}
	}
	return children
}

func (b *builder) buildImplicitAll(node *yaml.Node, depth int) *ast.Condition {
	if len(node.Content) == 0 {
		b.fail(node, "Empty condition list")
		return nil
	}
	if len(node.Content) == 1 {
		return b.buildCondition(node.Content[0], depth)
	}
	return &ast.Condition{
		Type:     ast.ConditionTypeAll,
		Children: b.buildChildren(node, depth),
		Location: b.loc(node),
	}
}

func (b *builder) buildTests(node *yaml.Node) []*ast.Test {
	if node.Kind != yaml.SequenceNode {
		b.fail(node, "Field \"tests\" must be a list, got %s", kindName(node))
		return nil
	}

	tests := make([]*ast.Test, 0, len(node.Content))
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			b.fail(item, "Test at index %d must be a mapping, got %s", i, kindName(item))
			continue
		}
		tests = append(tests, b.buildTest(item))
	}
	return tests
}

func (b *builder) buildTest(node *yaml.Node) *ast.Test {
	test := &ast.Test{Location: b.loc(node)}

	for _, pair := range b.fields(node) {
		key, value := pair[0], pair[1]
		switch key.Value {
		case "name":
			test.Name = b.scalarString(value, "name")
		case "patient":
			test.Patient = b.buildTestPatient(value)
		case "expect":
			test.Expect = b.buildExpectation(value)
		default:
			b.unknownKey(key, testKeys)
		}
	}
	return test
}

func (b *builder) buildTestPatient(node *yaml.Node) ast.TestPatient {
	var tp ast.TestPatient
	if node.Kind != yaml.MappingNode {
		b.fail(node, "Field \"patient\" must be a mapping, got %s", kindName(node))
		return tp
	}
	for _, pair := range b.fields(node) {
		key, value := pair[0], pair[1]
		switch key.Value {
		case "name":
			tp.Name = b.scalarString(value, "name")
		case "symptoms":
			tp.Symptoms = b.stringList(value, "symptoms")
		default:
			b.unknownKey(key, []string{"name", "symptoms"})
		}
	}
	return tp
}

func (b *builder) buildExpectation(node *yaml.Node) ast.TestExpectation {
	var exp ast.TestExpectation
	if node.Kind != yaml.MappingNode {
		b.fail(node, "Field \"expect\" must be a mapping, got %s", kindName(node))
		return exp
	}
	for _, pair := range b.fields(node) {
		key, value := pair[0], pair[1]
		switch key.Value {
		case "level":
			exp.Level = b.scalarString(value, "level")
		case "rule":
			exp.Rule = b.scalarString(value, "rule")
		default:
			b.unknownKey(key, []string{"level", "rule"})
		}
	}
	return exp
}

func conditionKeywords() []string {
	types := ast.ConditionTypes()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// String renders a condition back into the compact keyword form, e.g.
// "all(has_any[CHEST_PAIN], not(ref:mild))". Useful in logs and tests.
func String(c *ast.Condition) string {
	if c == nil {
		return "<nil>"
	}
	switch c.Type {
	case ast.ConditionTypeHasAll, ast.ConditionTypeHasAny:
		return string(c.Type) + "[" + strings.Join(c.Symptoms, ",") + "]"
	case ast.ConditionTypeRef:
		return "ref:" + c.Ref
	default:
		parts := make([]string, len(c.Children))
		for i, child := range c.Children {
			parts[i] = String(child)
		}
		return string(c.Type) + "(" + strings.Join(parts, ", ") + ")"
	}
}
