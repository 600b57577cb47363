package intake

import (
	"errors"
	"testing"
)

func TestValidatePrimarySymptom(t *testing.T) {
	cases := []struct {
		name    string
		symptom string
		ok      bool
	}{
		{"empty is optional", "", true},
		{"whitespace only counts as empty", "   ", true},
		{"one character rejected", "x", false},
		{"one rune rejected", "è", false},
		{"two characters accepted", "ma", true},
		{"full symptom accepted", "mal di testa", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Draft{PrimarySymptom: tc.symptom}
			err := d.Validate()
			if tc.ok {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("err = %v, want *FieldError", err)
			}
			if fe.Field != "primary_symptom" {
				t.Errorf("Field = %q, want primary_symptom", fe.Field)
			}
		})
	}
}

func TestValidateIntensityRange(t *testing.T) {
	for _, intensity := range []int{-1, 11, 100} {
		d := &Draft{Intensity: intensity}
		var fe *FieldError
		if err := d.Validate(); !errors.As(err, &fe) || fe.Field != "intensity" {
			t.Errorf("Intensity=%d: err = %v, want intensity FieldError", intensity, err)
		}
	}
	for _, intensity := range []int{0, 1, 7, 10} {
		d := &Draft{Intensity: intensity}
		if err := d.Validate(); err != nil {
			t.Errorf("Intensity=%d: %v", intensity, err)
		}
	}
}

func TestBuildCopiesSelections(t *testing.T) {
	d := &Draft{
		PrimarySymptom:     "  mal di testa ",
		Intensity:          7,
		AssociatedSymptoms: []string{"fever", "nausea"},
		KnownConditions:    []string{"asthma"},
	}
	p, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.PrimarySymptom != "mal di testa" {
		t.Errorf("PrimarySymptom = %q", p.PrimarySymptom)
	}
	// Mutating the draft afterwards must not reach the built profile.
	d.AssociatedSymptoms[0] = "cough"
	if p.AssociatedSymptoms[0] != "fever" {
		t.Error("built profile shares storage with draft")
	}
}

func TestBuildRejectsInvalidDraft(t *testing.T) {
	d := &Draft{PrimarySymptom: "x"}
	if _, err := d.Build(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestToggle(t *testing.T) {
	sel := []string{}
	sel = Toggle(sel, "fever")
	sel = Toggle(sel, "nausea")
	sel = Toggle(sel, "fever")
	if len(sel) != 1 || sel[0] != "nausea" {
		t.Errorf("selection = %v, want [nausea]", sel)
	}
}
