// Package patient provides the subject model for triage: a named patient
// with a deduplicated set of symptom tags, plus the symptom predicates that
// triage rules are built from.
//
// # Subjects
//
//	p := patient.New("Ana", patient.Fever, patient.DryCough, patient.Fatigue)
//	p.HasSymptom(patient.Fever) // true
//
// A Patient is a value type. Its SymptomSet is never modified after
// construction, so patients can be shared between goroutines freely.
//
// # Predicates
//
// HasAllOf and HasAnyOf build spec.Spec[Patient] leaves. The catalog
// predicates HasAllCommon, HasAnyCritical, Urgent and LessUrgent compose
// them for the respiratory triage example:
//
//	urgent := patient.Urgent() // HasAnyCritical OR HasAllCommon
//	urgent.IsSatisfiedBy(p)
package patient
