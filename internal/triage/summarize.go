package triage

import (
	"time"

	"medagent/pkg"
)

// BuildSummary aggregates one session into the terminal summary: message
// counts by origin, the maximum urgency observed across assistant turns, the
// session duration and the recommendation texts.  It is a pure computation
// over the transcript; nothing here calls the model.
func BuildSummary(sess *pkg.Session, profile *pkg.Profile, msgs []pkg.StoredMessage, now time.Time) *pkg.Summary {
	var userCount, assistantCount int
	maxUrgency := pkg.UrgencyLow
	for _, m := range msgs {
		switch m.Origin {
		case pkg.OriginUser:
			userCount++
		case pkg.OriginAssistant:
			assistantCount++
		}
		if m.Urgency != "" {
			maxUrgency = pkg.MaxUrgency(maxUrgency, m.Urgency)
		}
	}

	end := now
	if sess.EndTime != nil {
		end = *sess.EndTime
	}

	nextSteps := NextStepsLow
	if maxUrgency != pkg.UrgencyLow {
		nextSteps = NextStepsElevated
	}

	return &pkg.Summary{
		SessionInfo: pkg.SessionInfo{
			SessionID:       sess.ID,
			StartTime:       sess.StartTime,
			DurationMinutes: end.Sub(sess.StartTime).Minutes(),
			Status:          sess.Status,
		},
		Stats: pkg.ConversationStats{
			TotalMessages:     len(msgs),
			UserMessages:      userCount,
			AssistantMessages: assistantCount,
			MaxUrgency:        maxUrgency,
		},
		Recommendations: pkg.Recommendations{
			Urgency:   maxUrgency,
			NextSteps: nextSteps,
		},
		Profile: profile,
	}
}
