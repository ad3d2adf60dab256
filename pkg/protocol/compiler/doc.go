// Package compiler turns a validated protocol into specifications over
// patients.
//
// Symptom tests become leaf predicates, all and any become n-ary
// conjunctions and disjunctions, not becomes a negation and a ref becomes
// the named specification compiled from the referenced definition. Each
// definition is compiled once and shared by every rule that refers to it.
//
// Enabled rules are ordered by descending priority, ties keeping source
// order, which is the order the triage engine tries them in:
//
//	compiled, err := compiler.Compile(protocol)
//	for _, rule := range compiled.Rules {
//	    if rule.Spec.IsSatisfiedBy(p) {
//	        return rule.Level
//	    }
//	}
//	return compiled.DefaultLevel
package compiler
