// Package parser reads triage protocol YAML into an ast.Protocol.
//
// The parser works on the yaml.v3 node tree so every AST node keeps the
// line and column it came from. Structural problems are accumulated into
// an errors.ErrorList rather than aborting at the first one.
//
// # Condition syntax
//
// A condition is a mapping with exactly one keyword:
//
//	has_all: [FEVER, DRY_COUGH]   # every symptom present
//	has_any: [CHEST_PAIN]         # at least one present
//	all: [<cond>, <cond>]         # AND, left to right
//	any: [<cond>, <cond>]         # OR, left to right
//	not: <cond>                   # negation (a one-element list is accepted)
//	ref: definition_name          # reuse a named definition
//
// A bare list of conditions is an implicit all.
package parser
