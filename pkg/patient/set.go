package patient

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SymptomSet is an unordered, deduplicated set of symptoms. The zero value
// is an empty set. Sets are not modified after construction.
type SymptomSet struct {
	m map[Symptom]struct{}
}

// NewSymptomSet returns a set holding symptoms. Duplicates collapse.
func NewSymptomSet(symptoms ...Symptom) SymptomSet {
	m := make(map[Symptom]struct{}, len(symptoms))
	for _, s := range symptoms {
		m[s] = struct{}{}
	}
	return SymptomSet{m: m}
}

// ParseSymptomSet parses and normalises each tag with ParseSymptom.
func ParseSymptomSet(tags ...string) (SymptomSet, error) {
	symptoms := make([]Symptom, 0, len(tags))
	for _, t := range tags {
		s, err := ParseSymptom(t)
		if err != nil {
			return SymptomSet{}, err
		}
		symptoms = append(symptoms, s)
	}
	return NewSymptomSet(symptoms...), nil
}

// Has reports whether s is in the set.
func (set SymptomSet) Has(s Symptom) bool {
	_, ok := set.m[s]
	return ok
}

// Len returns the number of distinct symptoms.
func (set SymptomSet) Len() int { return len(set.m) }

// IsEmpty reports whether the set has no symptoms.
func (set SymptomSet) IsEmpty() bool { return len(set.m) == 0 }

// ContainsAll reports whether every symptom in want is in the set.
// It is true for an empty want.
func (set SymptomSet) ContainsAll(want ...Symptom) bool {
	for _, s := range want {
		if !set.Has(s) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one symptom in want is in the set.
// It is false for an empty want.
func (set SymptomSet) ContainsAny(want ...Symptom) bool {
	for _, s := range want {
		if set.Has(s) {
			return true
		}
	}
	return false
}

// Sorted returns the symptoms in lexical order.
func (set SymptomSet) Sorted() []Symptom {
	out := make([]Symptom, 0, len(set.m))
	for s := range set.m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Unknown returns the symptoms not present in the catalog, sorted.
func (set SymptomSet) Unknown() []Symptom {
	var out []Symptom
	for _, s := range set.Sorted() {
		if !s.IsKnown() {
			out = append(out, s)
		}
	}
	return out
}

// String renders the set as "{A, B}".
func (set SymptomSet) String() string {
	parts := make([]string, 0, len(set.m))
	for _, s := range set.Sorted() {
		parts = append(parts, string(s))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalYAML encodes the set as a sorted list.
func (set SymptomSet) MarshalYAML() (interface{}, error) {
	out := make([]string, 0, set.Len())
	for _, s := range set.Sorted() {
		out = append(out, string(s))
	}
	return out, nil
}

// UnmarshalYAML decodes a list of tags, normalising each one.
func (set *SymptomSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: symptoms must be a list", value.Line)
	}
	var tags []string
	if err := value.Decode(&tags); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	parsed, err := ParseSymptomSet(tags...)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*set = parsed
	return nil
}

// MarshalJSON encodes the set as a sorted list.
func (set SymptomSet) MarshalJSON() ([]byte, error) {
	out := make([]string, 0, set.Len())
	for _, s := range set.Sorted() {
		out = append(out, string(s))
	}
	return json.Marshal(out)
}
