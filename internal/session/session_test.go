package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medagent/internal/agentapi"
	"medagent/internal/i18n"
	"medagent/internal/intake"
	"medagent/internal/session"
	"medagent/pkg"
)

// fakeClient is a controllable agentapi.Client.  Error fields make the next
// call of that operation fail; blockSend, when set, makes SendMessage wait
// until released.
type fakeClient struct {
	mu sync.Mutex

	createErr  error
	submitErr  error
	welcomeErr error
	sendErr    error
	summaryErr error

	blockCreate chan struct{}
	blockSend   chan struct{}

	createCalls  int
	summaryCalls int
	submitted    []*pkg.Profile
	sent         []string

	reply pkg.AssistantTurn
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		reply: pkg.AssistantTurn{
			Message:     "Capisco. Puoi dirmi di più?",
			Urgency:     pkg.UrgencyLow,
			Suggestions: []string{"È la prima volta che ti succede?"},
		},
	}
}

func (f *fakeClient) CreateSession(ctx context.Context) (string, error) {
	f.mu.Lock()
	block := f.blockCreate
	f.createCalls++
	err := f.createErr
	f.createErr = nil
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return "", err
	}
	return "sess-1", nil
}

func (f *fakeClient) GetSession(ctx context.Context, id string) (*pkg.GetSessionResponse, error) {
	return &pkg.GetSessionResponse{Session: &pkg.Session{ID: id, Status: pkg.SessionActive}}, nil
}

func (f *fakeClient) SubmitProfile(ctx context.Context, id string, p *pkg.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		err := f.submitErr
		f.submitErr = nil
		return err
	}
	f.submitted = append(f.submitted, p)
	return nil
}

func (f *fakeClient) FetchWelcome(ctx context.Context, id string) (*pkg.AssistantTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.welcomeErr != nil {
		err := f.welcomeErr
		f.welcomeErr = nil
		return nil, err
	}
	return &pkg.AssistantTurn{
		Message:     "Ciao! Come posso aiutarti oggi?",
		Urgency:     pkg.UrgencyLow,
		Suggestions: []string{"Puoi descrivermi il sintomo che ti preoccupa?"},
	}, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, id, text string) (*pkg.AssistantTurn, error) {
	f.mu.Lock()
	block := f.blockSend
	err := f.sendErr
	f.sendErr = nil
	reply := f.reply
	if err == nil {
		f.sent = append(f.sent, text)
	}
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

func (f *fakeClient) FetchSummary(ctx context.Context, id string) (*pkg.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaryCalls++
	if f.summaryErr != nil {
		err := f.summaryErr
		f.summaryErr = nil
		return nil, err
	}
	return &pkg.Summary{
		SessionInfo:     pkg.SessionInfo{SessionID: id, Status: pkg.SessionActive},
		Stats:           pkg.ConversationStats{MaxUrgency: pkg.UrgencyMedium},
		Recommendations: pkg.Recommendations{Urgency: pkg.UrgencyMedium},
	}, nil
}

func (f *fakeClient) CloseSession(ctx context.Context, id string) error { return nil }

// activate walks a controller to the active state.
func activate(t *testing.T, client agentapi.Client) *session.Controller {
	t.Helper()
	ctx := context.Background()
	ctrl := session.NewController(client, i18n.Italian)
	if err := ctrl.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	draft := &intake.Draft{PrimarySymptom: "mal di testa", Intensity: 7}
	if err := ctrl.SubmitProfile(ctx, draft); err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	if err := ctrl.FetchWelcome(ctx); err != nil {
		t.Fatalf("FetchWelcome: %v", err)
	}
	return ctrl
}

func TestLifecycleHappyPath(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.reply.Urgency = pkg.UrgencyMedium

	ctrl := session.NewController(client, i18n.Italian)
	if got := ctrl.Status(); got != session.StatusUninitialized {
		t.Fatalf("initial status = %q", got)
	}

	if err := ctrl.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ctrl.Status() != session.StatusCreated || ctrl.SessionID() != "sess-1" {
		t.Fatalf("after create: status=%q id=%q", ctrl.Status(), ctrl.SessionID())
	}

	draft := &intake.Draft{PrimarySymptom: "mal di testa", Intensity: 7}
	if err := ctrl.SubmitProfile(ctx, draft); err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	if ctrl.Status() != session.StatusProfileSubmitted {
		t.Fatalf("after submit: status=%q", ctrl.Status())
	}
	if p := ctrl.Profile(); p == nil || p.PrimarySymptom != "mal di testa" || p.Intensity != 7 {
		t.Fatalf("stored profile = %+v", ctrl.Profile())
	}

	if err := ctrl.FetchWelcome(ctx); err != nil {
		t.Fatalf("FetchWelcome: %v", err)
	}
	if ctrl.Status() != session.StatusActive {
		t.Fatalf("after welcome: status=%q", ctrl.Status())
	}

	conv := ctrl.Conversation()
	if conv.Len() != 1 {
		t.Fatalf("log after welcome = %d entries", conv.Len())
	}
	if err := conv.SendUserTurn(ctx, "è da due giorni"); err != nil {
		t.Fatalf("SendUserTurn: %v", err)
	}
	if got := conv.CurrentUrgency(); got != pkg.UrgencyMedium {
		t.Errorf("current urgency = %q, want medium", got)
	}
	if conv.Len() != 3 {
		t.Errorf("log length = %d, want 3", conv.Len())
	}
}

func TestCreateFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.createErr = errors.New("transport down")

	ctrl := session.NewController(client, i18n.Italian)
	if err := ctrl.Create(ctx); err == nil {
		t.Fatal("expected create failure")
	}
	if ctrl.Status() != session.StatusUninitialized {
		t.Fatalf("status after failure = %q, want uninitialized", ctrl.Status())
	}
	if err := ctrl.Create(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if ctrl.Status() != session.StatusCreated {
		t.Fatalf("status after retry = %q", ctrl.Status())
	}
}

func TestInvalidProfileMakesNoNetworkCall(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := session.NewController(client, i18n.Italian)
	if err := ctrl.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	draft := &intake.Draft{PrimarySymptom: "x"}
	err := ctrl.SubmitProfile(ctx, draft)
	var fe *intake.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *intake.FieldError", err)
	}
	if fe.Field != "primary_symptom" {
		t.Errorf("Field = %q", fe.Field)
	}
	if len(client.submitted) != 0 {
		t.Error("invalid profile must not reach the network")
	}
	if ctrl.Status() != session.StatusCreated {
		t.Errorf("status = %q, want created", ctrl.Status())
	}
}

func TestProfileRejectionAllowsResubmission(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.submitErr = &agentapi.APIError{Status: 422, Detail: "bad profile"}

	ctrl := session.NewController(client, i18n.Italian)
	if err := ctrl.Create(ctx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	draft := &intake.Draft{PrimarySymptom: "mal di testa"}
	if err := ctrl.SubmitProfile(ctx, draft); !errors.Is(err, session.ErrProfileRejected) {
		t.Fatalf("err = %v, want ErrProfileRejected", err)
	}
	if ctrl.Status() != session.StatusCreated {
		t.Fatalf("status = %q, want created", ctrl.Status())
	}
	if err := ctrl.SubmitProfile(ctx, draft); err != nil {
		t.Fatalf("resubmission: %v", err)
	}
}

func TestWelcomeFailureIsRetryable(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := session.NewController(client, i18n.Italian)
	if err := ctrl.Create(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.SubmitProfile(ctx, &intake.Draft{}); err != nil {
		t.Fatal(err)
	}

	client.welcomeErr = errors.New("timeout")
	if err := ctrl.FetchWelcome(ctx); err == nil {
		t.Fatal("expected welcome failure")
	}
	if ctrl.Status() != session.StatusProfileSubmitted {
		t.Fatalf("status = %q, want profile_submitted", ctrl.Status())
	}
	if err := ctrl.FetchWelcome(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if ctrl.Status() != session.StatusActive {
		t.Fatalf("status = %q, want active", ctrl.Status())
	}
}

func TestOutOfOrderOperationsRejected(t *testing.T) {
	ctx := context.Background()
	ctrl := session.NewController(newFakeClient(), i18n.Italian)

	var se *session.StateError
	if err := ctrl.FetchWelcome(ctx); !errors.As(err, &se) {
		t.Errorf("FetchWelcome from uninitialized: err = %v", err)
	}
	if _, err := ctrl.RequestSummary(ctx); !errors.As(err, &se) {
		t.Errorf("RequestSummary from uninitialized: err = %v", err)
	}
	if err := ctrl.SubmitProfile(ctx, &intake.Draft{}); !errors.As(err, &se) {
		t.Errorf("SubmitProfile from uninitialized: err = %v", err)
	}
}

func TestLifecycleOperationsSerialized(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.blockCreate = make(chan struct{})

	ctrl := session.NewController(client, i18n.Italian)

	done := make(chan error, 1)
	go func() { done <- ctrl.Create(ctx) }()

	// Wait until the first call has claimed the in-flight slot.
	waitFor(t, func() bool {
		client.mu.Lock()
		defer client.mu.Unlock()
		return client.createCalls == 1
	})

	if err := ctrl.Create(ctx); !errors.Is(err, session.ErrOperationInFlight) {
		t.Fatalf("second create: err = %v, want ErrOperationInFlight", err)
	}

	close(client.blockCreate)
	if err := <-done; err != nil {
		t.Fatalf("first create: %v", err)
	}
	if ctrl.Status() != session.StatusCreated {
		t.Fatalf("status = %q", ctrl.Status())
	}
}

func TestSendUserTurnRejectsEmptyInput(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := activate(t, client)
	conv := ctrl.Conversation()

	for _, text := range []string{"", "   ", "\n\t"} {
		if err := conv.SendUserTurn(ctx, text); !errors.Is(err, session.ErrEmptyInput) {
			t.Errorf("SendUserTurn(%q): err = %v, want ErrEmptyInput", text, err)
		}
	}
	if conv.Len() != 1 {
		t.Errorf("log length = %d, empty input must not append", conv.Len())
	}
	if len(client.sent) != 0 {
		t.Error("empty input must not reach the network")
	}
}

func TestSendUserTurnSerialized(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.blockSend = make(chan struct{})
	ctrl := activate(t, client)
	conv := ctrl.Conversation()

	done := make(chan error, 1)
	go func() { done <- conv.SendUserTurn(ctx, "primo messaggio") }()

	waitFor(t, func() bool { return conv.Len() == 2 }) // optimistic user append

	if err := conv.SendUserTurn(ctx, "secondo messaggio"); !errors.Is(err, session.ErrTurnInFlight) {
		t.Fatalf("concurrent turn: err = %v, want ErrTurnInFlight", err)
	}

	close(client.blockSend)
	if err := <-done; err != nil {
		t.Fatalf("first turn: %v", err)
	}

	// The rejected turn left no trace; the next send is accepted.
	client.mu.Lock()
	client.blockSend = nil
	client.mu.Unlock()
	if err := conv.SendUserTurn(ctx, "terzo messaggio"); err != nil {
		t.Fatalf("turn after release: %v", err)
	}
	if conv.Len() != 5 { // welcome + 2 completed turns
		t.Errorf("log length = %d, want 5", conv.Len())
	}
}

func TestLogIsAppendOnlyInCausalOrder(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := activate(t, client)
	conv := ctrl.Conversation()

	const turns = 4
	for i := 0; i < turns; i++ {
		if err := conv.SendUserTurn(ctx, "ancora sintomi"); err != nil {
			t.Fatalf("turn %d: %v", i, err)
		}
	}

	msgs := conv.Messages()
	if len(msgs) != 2*turns+1 {
		t.Fatalf("log length = %d, want %d", len(msgs), 2*turns+1)
	}
	if _, ok := msgs[0].(*session.AssistantMessage); !ok {
		t.Fatal("log must start with the welcome turn")
	}
	var lastID int64
	for i, m := range msgs {
		if m.MessageID() <= lastID {
			t.Errorf("message %d: id %d not monotonic", i, m.MessageID())
		}
		lastID = m.MessageID()
		if i == 0 {
			continue
		}
		// After the welcome: odd positions are user turns, even assistant.
		_, isUser := m.(*session.UserMessage)
		if (i%2 == 1) != isUser {
			t.Errorf("message %d: wrong origin in causal order", i)
		}
	}
}

func TestTurnFailureAppendsSingleFallback(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := activate(t, client)
	conv := ctrl.Conversation()

	client.mu.Lock()
	client.reply.Urgency = pkg.UrgencyMedium
	client.mu.Unlock()
	if err := conv.SendUserTurn(ctx, "ho un forte dolore"); err != nil {
		t.Fatalf("SendUserTurn: %v", err)
	}

	client.mu.Lock()
	client.sendErr = errors.New("connection reset")
	client.mu.Unlock()

	if err := conv.SendUserTurn(ctx, "mi fa male la testa"); err == nil {
		t.Fatal("expected turn failure to surface")
	}

	msgs := conv.Messages()
	if len(msgs) != 5 { // welcome + ok turn pair + user + fallback
		t.Fatalf("log length = %d, want 5", len(msgs))
	}
	last, ok := msgs[4].(*session.AssistantMessage)
	if !ok {
		t.Fatal("fallback must be an assistant message")
	}
	if last.Urgency != pkg.UrgencyLow {
		t.Errorf("fallback urgency = %q, want low", last.Urgency)
	}
	if last.Text != i18n.Resolve(i18n.Italian, "chat.error_fallback") {
		t.Errorf("fallback text = %q", last.Text)
	}
	// The displayed urgency tracks received responses only; the synthetic
	// fallback does not overwrite it.
	if got := conv.CurrentUrgency(); got != pkg.UrgencyMedium {
		t.Errorf("current urgency after failure = %q, want medium", got)
	}

	// In-flight flag cleared: a subsequent turn is accepted.
	if err := conv.SendUserTurn(ctx, "riprovo"); err != nil {
		t.Fatalf("turn after failure: %v", err)
	}
	if conv.Len() != 7 {
		t.Errorf("log length = %d, want 7", conv.Len())
	}
}

func TestSelectSuggestedReplyHasNoSideEffects(t *testing.T) {
	client := newFakeClient()
	ctrl := activate(t, client)
	conv := ctrl.Conversation()

	suggestions := conv.LastSuggestions()
	if len(suggestions) == 0 {
		t.Fatal("welcome turn should carry suggestions")
	}
	conv.SelectSuggestedReply(suggestions[0])
	if conv.PendingInput() != suggestions[0] {
		t.Errorf("pending input = %q", conv.PendingInput())
	}
	if conv.Len() != 1 {
		t.Error("selecting a suggestion must not touch the log")
	}
	if len(client.sent) != 0 {
		t.Error("selecting a suggestion must not touch the network")
	}
	if got := conv.TakePendingInput(); got != suggestions[0] {
		t.Errorf("TakePendingInput = %q", got)
	}
	if conv.PendingInput() != "" {
		t.Error("pending input not cleared")
	}
}

func TestRequestSummaryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	ctrl := activate(t, client)

	first, err := ctrl.RequestSummary(ctx)
	if err != nil {
		t.Fatalf("RequestSummary: %v", err)
	}
	if ctrl.Status() != session.StatusSummarized {
		t.Fatalf("status = %q, want summarized", ctrl.Status())
	}
	second, err := ctrl.RequestSummary(ctx)
	if err != nil {
		t.Fatalf("repeat RequestSummary: %v", err)
	}
	if first.Stats.MaxUrgency != second.Stats.MaxUrgency {
		t.Error("repeated fetch should return the same aggregate")
	}
	if ctrl.Status() != session.StatusSummarized {
		t.Errorf("status = %q after repeat", ctrl.Status())
	}
}

func TestCloseOnlyAfterSummary(t *testing.T) {
	ctx := context.Background()
	ctrl := activate(t, newFakeClient())

	var se *session.StateError
	if err := ctrl.Close(ctx); !errors.As(err, &se) {
		t.Fatalf("close while active: err = %v", err)
	}
	if _, err := ctrl.RequestSummary(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctrl.Close(ctx); err != nil {
		t.Fatalf("close after summary: %v", err)
	}
}

// waitFor polls cond for a short while; the fake client has no other way to
// signal that a blocked call is holding the in-flight slot.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}
