// Package triage evaluates patients against compiled triage protocols.
//
// An Engine loads protocols from a Source, validates and compiles them,
// and keeps the compiled set behind a read-write lock so evaluations never
// block each other and a reload swaps the whole set at once.
//
// # Evaluation
//
// Within a protocol, rules are checked in descending priority (ties keep
// declaration order) and the first rule whose condition holds decides the
// level. When no rule holds, the protocol's default level applies. Across
// protocols the most severe outcome wins; equally severe outcomes resolve
// to the protocol that sorts first by name.
//
//	engine, err := triage.NewEngine(triage.DefaultConfig(), source.NewFileSource("protocols/", logger), logger)
//	if err != nil {
//		return err
//	}
//	decision, err := engine.Evaluate(ctx, patient.New("Ana", patient.Fever, patient.DryCough, patient.Fatigue))
//	// decision.Level == triage.LevelUrgent
//
// EvaluateBatch evaluates many patients concurrently with a bounded number
// of workers and returns decisions in input order.
//
// # Hot Reload
//
// Reload re-reads the source. A reload that fails to load, validate or
// compile keeps the previous protocol set. Watch subscribes to the
// source's change events and reloads on each one until its context ends.
package triage
