// Package intake validates the typed profile draft and promotes it to the
// immutable profile submitted at session start.  Validation here is the
// client-side minimum; the server stays authoritative for anything deeper.
package intake

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"medagent/pkg"
)

// FieldError names the offending field of an invalid draft.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid profile field %q: %s", e.Field, e.Reason)
}

// Draft is the mutable intake form state.  All fields are optional;
// associated symptoms and known conditions hold option ids, not labels.
type Draft struct {
	Age                pkg.AgeBracket
	Gender             pkg.Gender
	PrimarySymptom     string
	Duration           pkg.Duration
	Intensity          int
	AssociatedSymptoms []string
	KnownConditions    []string
	FamilyHistory      string
}

// Validate checks the draft against the intake rules.  It returns a
// *FieldError naming the first offending field, or nil.
func (d *Draft) Validate() error {
	symptom := strings.TrimSpace(d.PrimarySymptom)
	if symptom != "" && utf8.RuneCountInString(symptom) < 2 {
		return &FieldError{Field: "primary_symptom", Reason: "must be at least 2 characters"}
	}
	if d.Intensity != 0 && (d.Intensity < 1 || d.Intensity > 10) {
		return &FieldError{Field: "intensity", Reason: "must be between 1 and 10"}
	}
	return nil
}

// Build validates the draft and promotes it to an immutable profile.  The
// returned profile owns copies of the option slices so later edits to the
// draft cannot leak into a submitted profile.
func (d *Draft) Build() (*pkg.Profile, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	p := &pkg.Profile{
		Age:            d.Age,
		Gender:         d.Gender,
		PrimarySymptom: strings.TrimSpace(d.PrimarySymptom),
		Duration:       d.Duration,
		Intensity:      d.Intensity,
		FamilyHistory:  strings.TrimSpace(d.FamilyHistory),
	}
	if len(d.AssociatedSymptoms) > 0 {
		p.AssociatedSymptoms = append([]string(nil), d.AssociatedSymptoms...)
	}
	if len(d.KnownConditions) > 0 {
		p.KnownConditions = append([]string(nil), d.KnownConditions...)
	}
	return p, nil
}

// Toggle flips the presence of an option id in a selection, preserving the
// order of the remaining entries.  Used by both checkbox vocabularies.
func Toggle(selection []string, id string) []string {
	for i, v := range selection {
		if v == id {
			return append(selection[:i:i], selection[i+1:]...)
		}
	}
	return append(selection, id)
}
