package patient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Symptom is an upper snake case symptom tag such as "DRY_COUGH".
type Symptom string

// ErrInvalidSymptom is returned by ParseSymptom for malformed tags.
var ErrInvalidSymptom = errors.New("invalid symptom")

// Known symptoms.
const (
	// Common
	Fever    Symptom = "FEVER"
	DryCough Symptom = "DRY_COUGH"
	Fatigue  Symptom = "FATIGUE"

	// Less common
	Aches              Symptom = "ACHES"
	SoreThroat         Symptom = "SORE_THROAT"
	Diarrhea           Symptom = "DIARRHEA"
	Conjunctivitis     Symptom = "CONJUNCTIVITIS"
	Headache           Symptom = "HEADACHE"
	LossOfTasteOrSmell Symptom = "LOSS_OF_TASTE_OR_SMELL"
	SkinRash           Symptom = "SKIN_RASH"

	// Critical
	ShortnessOfBreath      Symptom = "SHORTNESS_OF_BREATH"
	ChestPain              Symptom = "CHEST_PAIN"
	LossOfSpeechOrMovement Symptom = "LOSS_OF_SPEECH_OR_MOVEMENT"
)

// Category groups known symptoms by severity.
type Category string

const (
	CategoryCommon     Category = "common"
	CategoryLessCommon Category = "less_common"
	CategoryCritical   Category = "critical"
)

var catalog = map[Symptom]Category{
	Fever:                  CategoryCommon,
	DryCough:               CategoryCommon,
	Fatigue:                CategoryCommon,
	Aches:                  CategoryLessCommon,
	SoreThroat:             CategoryLessCommon,
	Diarrhea:               CategoryLessCommon,
	Conjunctivitis:         CategoryLessCommon,
	Headache:               CategoryLessCommon,
	LossOfTasteOrSmell:     CategoryLessCommon,
	SkinRash:               CategoryLessCommon,
	ShortnessOfBreath:      CategoryCritical,
	ChestPain:              CategoryCritical,
	LossOfSpeechOrMovement: CategoryCritical,
}

// ParseSymptom normalises s into a Symptom. Case is folded to upper and
// spaces and dashes become underscores, so "dry cough" parses as DRY_COUGH.
// Unknown but well-formed tags are accepted.
func ParseSymptom(s string) (Symptom, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	if norm == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidSymptom)
	}
	for _, r := range norm {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidSymptom, s, r)
		}
	}
	return Symptom(norm), nil
}

// MustParseSymptom is like ParseSymptom but panics on error.
func MustParseSymptom(s string) Symptom {
	sym, err := ParseSymptom(s)
	if err != nil {
		panic(err)
	}
	return sym
}

// String returns the tag.
func (s Symptom) String() string { return string(s) }

// IsKnown reports whether s is in the built-in catalog.
func (s Symptom) IsKnown() bool {
	_, ok := catalog[s]
	return ok
}

// Category returns the catalog category of s.
func (s Symptom) Category() (Category, bool) {
	c, ok := catalog[s]
	return c, ok
}

// Known returns every catalog symptom, sorted.
func Known() []Symptom {
	out := make([]Symptom, 0, len(catalog))
	for s := range catalog {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// InCategory returns the catalog symptoms of category c, sorted.
func InCategory(c Category) []Symptom {
	var out []Symptom
	for s, cat := range catalog {
		if cat == c {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CommonSymptoms returns FEVER, DRY_COUGH and FATIGUE.
func CommonSymptoms() []Symptom { return []Symptom{Fever, DryCough, Fatigue} }

// CriticalSymptoms returns the symptoms that warrant immediate attention.
func CriticalSymptoms() []Symptom {
	return []Symptom{ShortnessOfBreath, ChestPain, LossOfSpeechOrMovement}
}
