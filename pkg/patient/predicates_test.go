package patient

import (
	"testing"

	"mercator-hq/triage/pkg/spec"
)

func TestScenario_AllCommonNoCritical(t *testing.T) {
	p := New("Ana", Fever, DryCough, Fatigue)

	if !HasAllCommon().IsSatisfiedBy(p) {
		t.Error("HasAllCommon should be true")
	}
	if HasAnyCritical().IsSatisfiedBy(p) {
		t.Error("HasAnyCritical should be false")
	}
	if spec.And(HasAllCommon(), HasAnyCritical()).IsSatisfiedBy(p) {
		t.Error("And(HasAllCommon, HasAnyCritical) should be false")
	}
	if !spec.Or(HasAllCommon(), HasAnyCritical()).IsSatisfiedBy(p) {
		t.Error("Or(HasAllCommon, HasAnyCritical) should be true")
	}
}

func TestScenario_OneCriticalOnly(t *testing.T) {
	p := New("Bruno", ChestPain)

	if HasAllCommon().IsSatisfiedBy(p) {
		t.Error("HasAllCommon should be false")
	}
	if !HasAnyCritical().IsSatisfiedBy(p) {
		t.Error("HasAnyCritical should be true")
	}
	if spec.And(HasAllCommon(), HasAnyCritical()).IsSatisfiedBy(p) {
		t.Error("And(HasAllCommon, HasAnyCritical) should be false")
	}
	if !spec.Or(HasAllCommon(), HasAnyCritical()).IsSatisfiedBy(p) {
		t.Error("Or(HasAllCommon, HasAnyCritical) should be true")
	}
}

func TestScenario_NoSymptoms(t *testing.T) {
	p := New("Carla")

	sets := [][]Symptom{
		CommonSymptoms(),
		CriticalSymptoms(),
		{Headache},
		Known(),
	}
	for _, set := range sets {
		if HasAnyOf(set...).IsSatisfiedBy(p) {
			t.Errorf("HasAnyOf(%v) should be false for empty patient", set)
		}
		if HasAllOf(set...).IsSatisfiedBy(p) {
			t.Errorf("HasAllOf(%v) should be false for empty patient", set)
		}
	}
}

func TestHasAllOfHasAnyOf(t *testing.T) {
	p := New("Davi", Fever, Headache)

	tests := []struct {
		name     string
		symptoms []Symptom
		wantAll  bool
		wantAny  bool
	}{
		{name: "empty list", symptoms: nil, wantAll: true, wantAny: false},
		{name: "subset", symptoms: []Symptom{Fever}, wantAll: true, wantAny: true},
		{name: "exact", symptoms: []Symptom{Fever, Headache}, wantAll: true, wantAny: true},
		{name: "superset", symptoms: []Symptom{Fever, Headache, DryCough}, wantAll: false, wantAny: true},
		{name: "disjoint", symptoms: []Symptom{ChestPain, DryCough}, wantAll: false, wantAny: false},
		{name: "duplicates", symptoms: []Symptom{Fever, Fever}, wantAll: true, wantAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAllOf(tt.symptoms...).IsSatisfiedBy(p); got != tt.wantAll {
				t.Errorf("HasAllOf = %v, want %v", got, tt.wantAll)
			}
			if got := HasAnyOf(tt.symptoms...).IsSatisfiedBy(p); got != tt.wantAny {
				t.Errorf("HasAnyOf = %v, want %v", got, tt.wantAny)
			}
		})
	}
}

func TestHasAllOf_CopiesInput(t *testing.T) {
	symptoms := []Symptom{Fever}
	pred := HasAllOf(symptoms...)
	symptoms[0] = ChestPain

	if !pred.IsSatisfiedBy(New("Eva", Fever)) {
		t.Error("predicate should not observe later changes to its input slice")
	}
}

func TestUrgentLessUrgent(t *testing.T) {
	tests := []struct {
		name       string
		patient    Patient
		wantUrgent bool
	}{
		{name: "all common", patient: New("a", Fever, DryCough, Fatigue), wantUrgent: true},
		{name: "one critical", patient: New("b", ShortnessOfBreath), wantUrgent: true},
		{name: "partial common", patient: New("c", Fever, DryCough), wantUrgent: false},
		{name: "less common only", patient: New("d", Headache, SoreThroat), wantUrgent: false},
		{name: "no symptoms", patient: New("e"), wantUrgent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Urgent().IsSatisfiedBy(tt.patient); got != tt.wantUrgent {
				t.Errorf("Urgent = %v, want %v", got, tt.wantUrgent)
			}
			if got := LessUrgent().IsSatisfiedBy(tt.patient); got != !tt.wantUrgent {
				t.Errorf("LessUrgent = %v, want %v", got, !tt.wantUrgent)
			}
		})
	}
}

func TestUrgent_Shape(t *testing.T) {
	if got, want := spec.Describe(Urgent()), "Urgent"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
	if got, want := spec.DescribeExpanded(LessUrgent()),
		"LessUrgent:NOT Urgent:(HasAnyCritical:has_any[SHORTNESS_OF_BREATH,CHEST_PAIN,LOSS_OF_SPEECH_OR_MOVEMENT] OR HasAllCommon:has_all[FEVER,DRY_COUGH,FATIGUE])"; got != want {
		t.Errorf("DescribeExpanded =\n%s\nwant\n%s", got, want)
	}
}

func TestUrgent_ShortCircuitsOnCritical(t *testing.T) {
	_, trace := spec.Explain(Urgent(), New("f", ChestPain))
	if trace.Visited("HasAllCommon") {
		t.Error("HasAllCommon should not be evaluated once a critical symptom matched")
	}
}
