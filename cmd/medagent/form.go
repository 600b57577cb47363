package main

import (
	"medagent/internal/i18n"
	"medagent/pkg"
)

// Ordered intake form choices.
var (
	ageBrackets = []pkg.AgeBracket{
		pkg.AgeUnder12, pkg.Age12to18, pkg.Age19to30,
		pkg.Age31to50, pkg.Age51to70, pkg.AgeOver70,
	}

	genders = []pkg.Gender{
		pkg.GenderMale, pkg.GenderFemale, pkg.GenderOther, pkg.GenderUnspecified,
	}

	durations = []pkg.Duration{
		pkg.DurationOneDay, pkg.DurationTwoThreeDays,
		pkg.DurationOverThree, pkg.DurationChronic,
	}
)

// ageLabels returns the bracket strings themselves; they read the same in
// both languages.
func ageLabels() []string {
	out := make([]string, len(ageBrackets))
	for i, b := range ageBrackets {
		out[i] = string(b)
	}
	return out
}

func genderLabels(lang i18n.Language) []string {
	out := make([]string, len(genders))
	for i, g := range genders {
		out[i] = i18n.Resolve(lang, "enum.gender."+string(g))
	}
	return out
}

func durationLabels(lang i18n.Language) []string {
	out := make([]string, len(durations))
	for i, d := range durations {
		out[i] = i18n.Resolve(lang, "enum.duration."+string(d))
	}
	return out
}
