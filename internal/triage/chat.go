// Package triage generates the assistant side of a consultation: the
// personalized welcome turn, LLM-backed replies with urgency classification
// and suggested follow-ups, and the terminal session summary.
package triage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medagent/internal/llm"
	"medagent/pkg"
)

// historyWindow bounds how many recent messages are replayed to the model.
const historyWindow = 4

// Service orchestrates the conversation between a patient and the
// assistant.  The conversation state itself lives in the repository; Reply
// receives the relevant slice of it on each call.
type Service struct {
	LLM llm.Client
	now func() time.Time
}

// NewService constructs a Service with the given LLM client.
func NewService(client llm.Client) *Service {
	return &Service{LLM: client, now: time.Now}
}

// Welcome builds the opening assistant turn.  It is generated without the
// model: a fixed greeting, personalized with the declared primary symptom
// when the profile carries one.
func (s *Service) Welcome(profile *pkg.Profile) *pkg.AssistantTurn {
	text := WelcomeDefault
	if profile != nil && profile.PrimarySymptom != "" {
		text = fmt.Sprintf(WelcomeSymptom, profile.PrimarySymptom)
	}
	return &pkg.AssistantTurn{
		Message: text,
		Urgency: pkg.UrgencyLow,
		Suggestions: []string{
			"Puoi descrivermi il sintomo che ti preoccupa?",
			"Da quando hai notato questo problema?",
			"C'è qualcos'altro che ti fa stare male?",
		},
		Timestamp: s.now(),
	}
}

// Reply answers one user message.  It frames the profile and the recent
// history as context for the model, classifies the urgency of the reply and
// attaches suggested follow-ups.  On model failure a canned fallback turn is
// returned together with the error so the caller can log it; the
// conversation stays usable either way.
func (s *Service) Reply(ctx context.Context, profile *pkg.Profile, history []pkg.StoredMessage, userMessage string) (*pkg.AssistantTurn, error) {
	prompt := buildContext(profile, history, userMessage)

	text, err := s.LLM.Chat(ctx, []llm.Message{
		{Role: "system", Content: SystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil || strings.TrimSpace(text) == "" {
		return &pkg.AssistantTurn{
			Message:     FallbackReply,
			Urgency:     pkg.UrgencyLow,
			Suggestions: followUpQuestions(userMessage),
			Timestamp:   s.now(),
		}, err
	}

	return &pkg.AssistantTurn{
		Message:     text,
		Urgency:     ClassifyUrgency(text),
		Suggestions: followUpQuestions(userMessage),
		Timestamp:   s.now(),
	}, nil
}

// buildContext frames the profile and the last few turns ahead of the new
// user message, mirroring what the assistant would see in a live chat.
func buildContext(profile *pkg.Profile, history []pkg.StoredMessage, userMessage string) string {
	var parts []string
	if profile != nil {
		parts = append(parts, fmt.Sprintf("Profilo utente: Età: %s, Genere: %s",
			orNone(string(profile.Age)), orNone(string(profile.Gender))))
		if profile.PrimarySymptom != "" {
			parts = append(parts, "Sintomo principale: "+profile.PrimarySymptom)
		}
		if len(profile.KnownConditions) > 0 {
			parts = append(parts, "Condizioni note: "+strings.Join(profile.KnownConditions, ", "))
		}
	}

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if len(history) > 0 {
		var lines []string
		for _, m := range history {
			speaker := "Utente"
			if m.Origin == pkg.OriginAssistant {
				speaker = "Assistente"
			}
			lines = append(lines, speaker+": "+m.Content)
		}
		parts = append(parts, "Conversazione recente:\n"+strings.Join(lines, "\n"))
	}

	parts = append(parts, "Nuovo messaggio utente: "+userMessage)
	return strings.Join(parts, "\n")
}

func orNone(v string) string {
	if v == "" {
		return "Non specificato"
	}
	return v
}
