package triage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"medagent/internal/llm"
	"medagent/pkg"
)

type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	return s.reply, s.err
}

func TestClassifyUrgency(t *testing.T) {
	cases := []struct {
		reply string
		want  pkg.UrgencyLevel
	}{
		{"Un fastidio lieve e piuttosto comune.", pkg.UrgencyLow},
		{"La febbre alta va monitorata con attenzione.", pkg.UrgencyMedium},
		{"Il dolore toracico richiede una chiamata al 118.", pkg.UrgencyHigh},
		{"Consiglio di riposare e bere acqua.", pkg.UrgencyLow},
		// A high keyword wins even when reassuring wording follows.
		{"Nulla di lieve: con difficoltà respiratorie chiama il 118.", pkg.UrgencyHigh},
	}
	for _, tc := range cases {
		if got := ClassifyUrgency(tc.reply); got != tc.want {
			t.Errorf("ClassifyUrgency(%q) = %q, want %q", tc.reply, got, tc.want)
		}
	}
}

func TestFollowUpQuestionsKeyedOnUserMessage(t *testing.T) {
	pain := followUpQuestions("ho un dolore al ginocchio")
	if len(pain) != 3 || !strings.Contains(pain[1], "scala da 1 a 10") {
		t.Errorf("pain questions = %v", pain)
	}
	fever := followUpQuestions("ho la febbre da ieri")
	if len(fever) != 3 || !strings.Contains(fever[0], "temperatura") {
		t.Errorf("fever questions = %v", fever)
	}
	other := followUpQuestions("mi gira la testa")
	if len(other) != 3 {
		t.Errorf("default questions = %v", other)
	}
}

func TestWelcomePersonalization(t *testing.T) {
	svc := NewService(&stubLLM{})

	plain := svc.Welcome(nil)
	if plain.Message != WelcomeDefault {
		t.Errorf("welcome without profile = %q", plain.Message)
	}
	if plain.Urgency != pkg.UrgencyLow || len(plain.Suggestions) != 3 {
		t.Errorf("welcome turn = %+v", plain)
	}

	withSymptom := svc.Welcome(&pkg.Profile{PrimarySymptom: "mal di testa"})
	if !strings.Contains(withSymptom.Message, "mal di testa") {
		t.Errorf("welcome should mention the declared symptom: %q", withSymptom.Message)
	}
}

func TestReplyClassifiesAndSuggests(t *testing.T) {
	svc := NewService(&stubLLM{reply: "La febbre alta per più giorni è preoccupante, consulta un medico."})

	turn, err := svc.Reply(context.Background(), nil, nil, "ho la febbre da tre giorni")
	if err != nil {
		t.Fatalf("Reply: %v", err)
	}
	if turn.Urgency != pkg.UrgencyMedium {
		t.Errorf("urgency = %q, want medium", turn.Urgency)
	}
	if len(turn.Suggestions) != 3 || !strings.Contains(turn.Suggestions[0], "temperatura") {
		t.Errorf("suggestions = %v", turn.Suggestions)
	}
}

func TestReplyFallsBackOnModelFailure(t *testing.T) {
	svc := NewService(&stubLLM{err: errors.New("rate limited")})

	turn, err := svc.Reply(context.Background(), nil, nil, "sto male")
	if err == nil {
		t.Fatal("expected error to surface for logging")
	}
	if turn == nil || turn.Message != FallbackReply {
		t.Fatalf("fallback turn = %+v", turn)
	}
	if turn.Urgency != pkg.UrgencyLow {
		t.Errorf("fallback urgency = %q", turn.Urgency)
	}
}

func TestReplyContextIncludesProfileAndHistory(t *testing.T) {
	profile := &pkg.Profile{
		Age:             pkg.Age31to50,
		PrimarySymptom:  "mal di testa",
		KnownConditions: []string{"hypertension"},
	}
	history := []pkg.StoredMessage{
		{Origin: pkg.OriginAssistant, Content: "Ciao!"},
		{Origin: pkg.OriginUser, Content: "ho mal di testa"},
	}
	got := buildContext(profile, history, "è da due giorni")
	for _, want := range []string{"31-50", "mal di testa", "hypertension", "Utente: ho mal di testa", "Assistente: Ciao!", "Nuovo messaggio utente: è da due giorni"} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q:\n%s", want, got)
		}
	}
}

func TestBuildSummary(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	sess := &pkg.Session{ID: "s1", StartTime: start, Status: pkg.SessionActive}
	msgs := []pkg.StoredMessage{
		{Origin: pkg.OriginAssistant, Urgency: pkg.UrgencyLow},
		{Origin: pkg.OriginUser},
		{Origin: pkg.OriginAssistant, Urgency: pkg.UrgencyMedium},
		{Origin: pkg.OriginUser},
		{Origin: pkg.OriginAssistant, Urgency: pkg.UrgencyLow},
	}
	now := start.Add(15 * time.Minute)

	sum := BuildSummary(sess, &pkg.Profile{PrimarySymptom: "mal di testa"}, msgs, now)

	if sum.Stats.UserMessages != 2 || sum.Stats.AssistantMessages != 3 {
		t.Errorf("stats = %+v", sum.Stats)
	}
	// The summary maximum spans the whole session even though the latest
	// assistant message dropped back to low.
	if sum.Stats.MaxUrgency != pkg.UrgencyMedium {
		t.Errorf("max urgency = %q, want medium", sum.Stats.MaxUrgency)
	}
	if sum.Recommendations.NextSteps != NextStepsElevated {
		t.Errorf("next steps = %q", sum.Recommendations.NextSteps)
	}
	if sum.SessionInfo.DurationMinutes != 15 {
		t.Errorf("duration = %v", sum.SessionInfo.DurationMinutes)
	}
	if sum.Profile == nil || sum.Profile.PrimarySymptom != "mal di testa" {
		t.Errorf("profile echo = %+v", sum.Profile)
	}
}

func TestBuildSummaryAllLowRecommendsMonitoring(t *testing.T) {
	start := time.Now()
	sess := &pkg.Session{ID: "s1", StartTime: start, Status: pkg.SessionActive}
	msgs := []pkg.StoredMessage{{Origin: pkg.OriginAssistant, Urgency: pkg.UrgencyLow}}
	sum := BuildSummary(sess, nil, msgs, start.Add(time.Minute))
	if sum.Recommendations.NextSteps != NextStepsLow {
		t.Errorf("next steps = %q", sum.Recommendations.NextSteps)
	}
}
