// Package i18n resolves display strings and option vocabularies for the two
// supported languages.  Option selections are keyed by stable semantic ids so
// that switching the active language never changes what the user selected,
// only how it is displayed.
package i18n

// Language is a supported language tag.
type Language string

const (
	Italian Language = "it"
	English Language = "en"
)

// Default is the language used when none is chosen.
const Default = Italian

// Valid reports whether l is a supported tag.
func (l Language) Valid() bool {
	return l == Italian || l == English
}

// Resolve returns the display string for key in the given language.  Unknown
// keys resolve to the key itself so a missing entry is visible in the UI
// instead of crashing it; unsupported languages fall back to the default.
func Resolve(lang Language, key string) string {
	table, ok := tables[lang]
	if !ok {
		table = tables[Default]
	}
	if s, ok := table[key]; ok {
		return s
	}
	return key
}

// ListName identifies one of the enumerated option vocabularies.
type ListName string

const (
	AssociatedSymptoms ListName = "associated_symptoms"
	KnownConditions    ListName = "known_conditions"
)

// Option is a selectable vocabulary entry.  ID is language-independent and is
// what gets stored; the label is what gets shown.
type Option struct {
	ID    string
	Label string
}

// Options returns the ordered option list for the vocabulary in the given
// language.  The ids and their order are identical across languages.
func Options(lang Language, list ListName) []Option {
	ids, ok := vocabularies[list]
	if !ok {
		return nil
	}
	out := make([]Option, 0, len(ids))
	for _, id := range ids {
		out = append(out, Option{ID: id, Label: Resolve(lang, "option."+id)})
	}
	return out
}

// Label resolves a single option id to its display label.
func Label(lang Language, id string) string {
	return Resolve(lang, "option."+id)
}

// vocabularies lists option ids in display order.  Identical across languages.
var vocabularies = map[ListName][]string{
	AssociatedSymptoms: {
		"fever", "headache", "nausea", "vomiting", "dizziness",
		"weakness", "abdominal_pain", "breathing_difficulty",
		"cough", "sore_throat", "diarrhea", "constipation",
		"muscle_pain", "joint_pain", "appetite_loss",
		"insomnia", "anxiety", "palpitations", "sweating",
	},
	KnownConditions: {
		"diabetes", "hypertension", "asthma", "allergies", "hypothyroidism",
		"hyperthyroidism", "heart_disease", "depression", "anxiety_disorder",
		"arthritis", "osteoporosis", "none_known",
	},
}
