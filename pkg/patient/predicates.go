package patient

import (
	"strings"

	"mercator-hq/triage/pkg/spec"
)

// HasAllOf is satisfied when the patient presents every listed symptom.
// With no symptoms it is satisfied by every patient.
func HasAllOf(symptoms ...Symptom) spec.Spec[Patient] {
	want := append([]Symptom(nil), symptoms...)
	return spec.NewAtomic("has_all"+listName(want), func(p Patient) bool {
		return p.Symptoms.ContainsAll(want...)
	})
}

// HasAnyOf is satisfied when the patient presents at least one listed
// symptom. With no symptoms it is satisfied by no patient.
func HasAnyOf(symptoms ...Symptom) spec.Spec[Patient] {
	want := append([]Symptom(nil), symptoms...)
	return spec.NewAtomic("has_any"+listName(want), func(p Patient) bool {
		return p.Symptoms.ContainsAny(want...)
	})
}

// HasAllCommon is satisfied when the patient presents every common symptom.
func HasAllCommon() spec.Spec[Patient] {
	return spec.Named("HasAllCommon", HasAllOf(CommonSymptoms()...))
}

// HasAnyCritical is satisfied when the patient presents a critical symptom.
func HasAnyCritical() spec.Spec[Patient] {
	return spec.Named("HasAnyCritical", HasAnyOf(CriticalSymptoms()...))
}

// Urgent is HasAnyCritical OR HasAllCommon.
func Urgent() spec.Spec[Patient] {
	return spec.Of(HasAnyCritical()).Or(HasAllCommon()).Named("Urgent").Unwrap()
}

// LessUrgent is NOT Urgent.
func LessUrgent() spec.Spec[Patient] {
	return spec.Of(Urgent()).Not().Named("LessUrgent").Unwrap()
}

func listName(symptoms []Symptom) string {
	parts := make([]string, len(symptoms))
	for i, s := range symptoms {
		parts[i] = string(s)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
