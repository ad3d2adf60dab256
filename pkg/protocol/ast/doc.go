// Package ast defines the syntax tree of a triage protocol file.
//
// A protocol is parsed from YAML into a Protocol holding named
// Definitions, prioritised Rules and embedded Tests. Rule and definition
// bodies are Condition trees:
//
//	Protocol
//	├── Definitions (name -> Condition)
//	├── Rules ([]*Rule)
//	│   └── When (*Condition)
//	│       ├── has_all / has_any (symptom lists)
//	│       ├── all / any (children)
//	│       ├── not (one child)
//	│       └── ref (definition name)
//	└── Tests ([]*Test)
//
// Every node carries the Location it was parsed from so validators can
// report precise errors. Nodes are treated as immutable once built.
package ast
