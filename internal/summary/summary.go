// Package summary fetches and renders the terminal session summary in its
// two audiences: a lay view for the user and a technical view echoing the
// full session record.  It is read-only and drives no state transitions
// beyond the controller's own summarize step.
package summary

import (
	"context"
	"fmt"
	"strings"

	"medagent/internal/i18n"
	"medagent/internal/session"
	"medagent/pkg"
)

// Presenter renders the summary of one session.
type Presenter struct {
	ctrl *session.Controller
	lang i18n.Language
}

// NewPresenter builds a presenter over the given controller.
func NewPresenter(ctrl *session.Controller, lang i18n.Language) *Presenter {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return &Presenter{ctrl: ctrl, lang: lang}
}

// Fetch requests the summary through the controller.  Safe to repeat; the
// fetch has no side effects beyond the first summarize transition.
func (p *Presenter) Fetch(ctx context.Context) (*pkg.Summary, error) {
	return p.ctrl.RequestSummary(ctx)
}

// RenderLay produces the user-facing view: urgency, recommendations and the
// headline numbers, nothing clinical.
func (p *Presenter) RenderLay(sum *pkg.Summary) string {
	t := func(key string) string { return i18n.Resolve(p.lang, key) }
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", t("summary.title"))
	fmt.Fprintf(&b, "%s: %s\n", t("summary.urgency"), strings.ToUpper(string(sum.Recommendations.Urgency)))
	fmt.Fprintf(&b, "%s: %s\n", t("summary.recommendations"), sum.Recommendations.NextSteps)
	fmt.Fprintf(&b, "%s: %.0f min\n", t("summary.duration"), sum.SessionInfo.DurationMinutes)
	fmt.Fprintf(&b, "%s: %d\n", t("summary.messages"), sum.Stats.TotalMessages)
	return b.String()
}

// RenderTechnical produces the professional view: session metadata,
// conversation statistics and the profile echo with localized labels.
func (p *Presenter) RenderTechnical(sum *pkg.Summary) string {
	t := func(key string) string { return i18n.Resolve(p.lang, key) }
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s ===\n", t("summary.session_data"))
	fmt.Fprintf(&b, "Session ID: %s\n", sum.SessionInfo.SessionID)
	fmt.Fprintf(&b, "%s: %s\n", t("summary.session"), sum.SessionInfo.StartTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "%s: %.1f min\n", t("summary.duration"), sum.SessionInfo.DurationMinutes)
	fmt.Fprintf(&b, "Status: %s\n", sum.SessionInfo.Status)

	fmt.Fprintf(&b, "\n=== %s ===\n", t("summary.stats"))
	fmt.Fprintf(&b, "%s: %d\n", t("summary.user_messages"), sum.Stats.UserMessages)
	fmt.Fprintf(&b, "%s: %d\n", t("summary.assistant_msgs"), sum.Stats.AssistantMessages)
	fmt.Fprintf(&b, "%s: %s\n", t("summary.max_urgency"), strings.ToUpper(string(sum.Stats.MaxUrgency)))

	if sum.Profile != nil {
		fmt.Fprintf(&b, "\n=== %s ===\n", t("summary.profile"))
		fmt.Fprintf(&b, "%s: %s\n", t("intake.age"), orUnspecified(p.lang, string(sum.Profile.Age)))
		fmt.Fprintf(&b, "%s: %s\n", t("intake.gender"), orUnspecified(p.lang, string(sum.Profile.Gender)))
		fmt.Fprintf(&b, "%s: %s\n", t("intake.main_symptom"), orUnspecified(p.lang, sum.Profile.PrimarySymptom))
		if len(sum.Profile.KnownConditions) > 0 {
			labels := make([]string, 0, len(sum.Profile.KnownConditions))
			for _, id := range sum.Profile.KnownConditions {
				labels = append(labels, i18n.Label(p.lang, id))
			}
			fmt.Fprintf(&b, "%s: %s\n", t("intake.known_conditions"), strings.Join(labels, ", "))
		}
	}
	return b.String()
}

func orUnspecified(lang i18n.Language, v string) string {
	if v == "" {
		return i18n.Resolve(lang, "summary.not_specified")
	}
	return v
}
