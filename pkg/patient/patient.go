package patient

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Patient is the subject triage rules are evaluated against.
type Patient struct {
	Name     string     `yaml:"name" json:"name"`
	Symptoms SymptomSet `yaml:"symptoms" json:"symptoms"`
}

// New returns a patient with the given symptoms. Duplicates collapse.
func New(name string, symptoms ...Symptom) Patient {
	return Patient{Name: name, Symptoms: NewSymptomSet(symptoms...)}
}

// HasSymptom reports whether the patient presents s.
func (p Patient) HasSymptom(s Symptom) bool {
	return p.Symptoms.Has(s)
}

// String renders the patient as "Name {A, B}".
func (p Patient) String() string {
	return fmt.Sprintf("%s %s", p.Name, p.Symptoms)
}

// Validate checks that the patient has a name.
func (p Patient) Validate() error {
	if p.Name == "" {
		return errors.New("patient name is required")
	}
	return nil
}

// LoadFile reads patients from a YAML file. See Decode for the accepted
// document shapes.
func LoadFile(path string) ([]Patient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patient file %q: %w", path, err)
	}
	patients, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse patient file %q: %w", path, err)
	}
	return patients, nil
}

// Decode parses one or more YAML documents. Each document is either a
// single patient mapping or a list of patients.
func Decode(data []byte) ([]Patient, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var patients []Patient
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if len(node.Content) == 0 {
			continue
		}

		doc := node.Content[0]
		switch doc.Kind {
		case yaml.MappingNode:
			var p Patient
			if err := doc.Decode(&p); err != nil {
				return nil, err
			}
			patients = append(patients, p)
		case yaml.SequenceNode:
			var list []Patient
			if err := doc.Decode(&list); err != nil {
				return nil, err
			}
			patients = append(patients, list...)
		default:
			return nil, fmt.Errorf("line %d: expected a patient or a list of patients", doc.Line)
		}
	}

	for i, p := range patients {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("patient %d: %w", i, err)
		}
	}
	return patients, nil
}
