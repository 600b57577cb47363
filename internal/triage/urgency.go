package triage

import (
	"strings"

	"medagent/pkg"
)

// urgencyKeywords maps symptom wording in an assistant reply to an urgency
// level.  Ordered by severity: the first list with a match wins, so an
// emergency phrase can never be downgraded by a reassuring one later in the
// same reply.
var urgencyKeywords = []struct {
	level    pkg.UrgencyLevel
	keywords []string
}{
	{pkg.UrgencyHigh, []string{
		"dolore toracico", "difficoltà respiratorie", "perdita coscienza",
		"emorragia", "trauma", "avvelenamento", "118",
	}},
	{pkg.UrgencyMedium, []string{
		"febbre alta", "dolore intenso", "vomito persistente",
		"difficoltà", "preoccupante",
	}},
	{pkg.UrgencyLow, []string{
		"lieve", "normale", "comune", "non preoccupante",
	}},
}

// ClassifyUrgency derives the urgency level from the assistant's reply text.
// Replies matching no keyword default to low.
func ClassifyUrgency(reply string) pkg.UrgencyLevel {
	lower := strings.ToLower(reply)
	for _, group := range urgencyKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.level
			}
		}
	}
	return pkg.UrgencyLow
}

// followUpQuestions picks 2-3 suggested replies keyed on the user's message.
func followUpQuestions(userMessage string) []string {
	lower := strings.ToLower(userMessage)
	switch {
	case strings.Contains(lower, "dolore"):
		return []string{
			"Il dolore è costante o intermittente?",
			"Su una scala da 1 a 10, quanto è intenso?",
			"Hai preso qualche farmaco per il dolore?",
		}
	case strings.Contains(lower, "febbre"):
		return []string{
			"Hai misurato la temperatura?",
			"Da quanto tempo hai la febbre?",
			"Hai altri sintomi come mal di testa o debolezza?",
		}
	default:
		return []string{
			"Puoi dirmi di più su questo sintomo?",
			"È la prima volta che ti succede?",
			"C'è qualcos'altro che ti preoccupa?",
		}
	}
}
