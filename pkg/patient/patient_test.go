package patient

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseSymptom(t *testing.T) {
	tests := []struct {
		in      string
		want    Symptom
		wantErr bool
	}{
		{in: "FEVER", want: Fever},
		{in: "fever", want: Fever},
		{in: " dry cough ", want: DryCough},
		{in: "loss-of-taste-or-smell", want: LossOfTasteOrSmell},
		{in: "NEW_TAG_2", want: Symptom("NEW_TAG_2")},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "fever!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSymptom(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSymptom) {
					t.Fatalf("err = %v, want ErrInvalidSymptom", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	if c, ok := ChestPain.Category(); !ok || c != CategoryCritical {
		t.Errorf("ChestPain category = %q, %v", c, ok)
	}
	if Symptom("HICCUPS").IsKnown() {
		t.Error("HICCUPS should be unknown")
	}
	if got := len(Known()); got != 13 {
		t.Errorf("len(Known()) = %d, want 13", got)
	}
	if got := InCategory(CategoryCommon); !reflect.DeepEqual(got, []Symptom{DryCough, Fatigue, Fever}) {
		t.Errorf("InCategory(common) = %v", got)
	}
}

func TestSymptomSet(t *testing.T) {
	set := NewSymptomSet(Fever, DryCough, Fever)

	if set.Len() != 2 {
		t.Errorf("Len = %d, want 2", set.Len())
	}
	if !set.Has(Fever) || set.Has(ChestPain) {
		t.Error("Has returned wrong result")
	}
	if got := set.String(); got != "{DRY_COUGH, FEVER}" {
		t.Errorf("String = %q", got)
	}

	var zero SymptomSet
	if !zero.IsEmpty() || zero.Has(Fever) || zero.Len() != 0 {
		t.Error("zero value should behave as an empty set")
	}

	withUnknown := NewSymptomSet(Fever, "HICCUPS")
	if got := withUnknown.Unknown(); !reflect.DeepEqual(got, []Symptom{"HICCUPS"}) {
		t.Errorf("Unknown = %v", got)
	}
}

func TestPatientJSON(t *testing.T) {
	data, err := json.Marshal(New("Ana", Fever, ChestPain))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"name":"Ana","symptoms":["CHEST_PAIN","FEVER"]}`; got != want {
		t.Errorf("json = %s, want %s", got, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Patient
		wantErr bool
	}{
		{
			name:  "single mapping",
			input: "name: Ana\nsymptoms: [fever, dry cough]\n",
			want:  []Patient{New("Ana", Fever, DryCough)},
		},
		{
			name:  "list",
			input: "- name: Ana\n  symptoms: [CHEST_PAIN]\n- name: Bruno\n",
			want:  []Patient{New("Ana", ChestPain), {Name: "Bruno"}},
		},
		{
			name:  "multiple documents",
			input: "name: Ana\nsymptoms: [FEVER]\n---\nname: Bruno\nsymptoms: []\n",
			want:  []Patient{New("Ana", Fever), New("Bruno")},
		},
		{
			name:    "missing name",
			input:   "symptoms: [FEVER]\n",
			wantErr: true,
		},
		{
			name:    "symptoms not a list",
			input:   "name: Ana\nsymptoms: FEVER\n",
			wantErr: true,
		},
		{
			name:    "invalid symptom",
			input:   "name: Ana\nsymptoms: [\"fe/ver\"]\n",
			wantErr: true,
		},
		{
			name:    "scalar document",
			input:   "just a string\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d patients, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Name != tt.want[i].Name {
					t.Errorf("patient %d name = %q, want %q", i, got[i].Name, tt.want[i].Name)
				}
				if !reflect.DeepEqual(got[i].Symptoms.Sorted(), tt.want[i].Symptoms.Sorted()) {
					t.Errorf("patient %d symptoms = %v, want %v", i, got[i].Symptoms, tt.want[i].Symptoms)
				}
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patients.yaml")
	if err := os.WriteFile(path, []byte("- name: Ana\n  symptoms: [FEVER]\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(got) != 1 || !got[0].HasSymptom(Fever) {
		t.Errorf("got %v", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
