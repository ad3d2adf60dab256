// Package spec provides composable specifications: boolean predicates over a
// typed subject that combine into larger predicates with AND, OR and NOT.
//
// A specification is anything implementing Spec[T]. Leaves are usually
// built with NewAtomic (a named test) or Func (an anonymous one), and
// compound specifications are built with And, Or, Not, All and Any. Every
// combinator is itself a Spec[T], so trees nest arbitrarily.
//
// # Evaluation
//
// Evaluation is a synchronous depth-first walk. And evaluates its left
// operand first and skips the right one when the left is false; Or skips
// the right operand when the left is true. All and Any are left folds of
// And and Or, so they short-circuit the same way.
//
// # Fluent composition
//
// Of wraps a specification in a Composite that exposes And, Or and Not as
// methods. Each call wraps the current composite as the left operand:
//
//	urgent := spec.Of(hasAllCommon).And(hasFever).Or(hasAnyCritical)
//	// == Or(And(hasAllCommon, hasFever), hasAnyCritical)
//
// # Introspection
//
// Specifications built by this package are tagged variants (see Kind).
// Walk visits a tree, Describe renders it as an infix expression and
// Explain evaluates it while recording which nodes were visited:
//
//	ok, trace := spec.Explain(urgent, patient)
//	for _, step := range trace.Steps {
//	    fmt.Println(step.Path, step.Kind, step.Name, step.Result)
//	}
//
// # Concurrency
//
// Nothing in this package holds mutable state after construction. A
// specification may be evaluated from any number of goroutines as long as
// its leaf functions are pure.
package spec
