package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medagent/internal/agentapi"
	"medagent/internal/i18n"
	"medagent/pkg"
)

var (
	// ErrEmptyInput rejects a turn whose text trims to nothing.  No message
	// is appended and no network call is made.
	ErrEmptyInput = errors.New("empty input")
	// ErrTurnInFlight rejects a turn while a previous one is still pending.
	// Turns are never queued: interleaved assistant responses would break
	// the causal order of the log.
	ErrTurnInFlight = errors.New("a chat turn is already in flight")
)

// Conversation owns the append-only message log, the current urgency signal
// and the pending input buffer while the session is active.  Messages are
// only ever appended, in causal order: each user message precedes its
// assistant response, enforced by the single-in-flight rule.
type Conversation struct {
	client    agentapi.Client
	sessionID string
	fallback  string
	now       func() time.Time

	mu       sync.Mutex
	inFlight bool
	nextID   int64
	log      []Message
	urgency  pkg.UrgencyLevel
	pending  string
}

// newConversation seeds the log with the welcome turn.  Only the controller
// constructs conversations, on the transition into the active state.
func newConversation(client agentapi.Client, sessionID string, lang i18n.Language, welcome *pkg.AssistantTurn, now func() time.Time) *Conversation {
	c := &Conversation{
		client:    client,
		sessionID: sessionID,
		fallback:  i18n.Resolve(lang, "chat.error_fallback"),
		now:       now,
		urgency:   pkg.UrgencyLow,
	}
	c.appendAssistantLocked(welcome)
	return c
}

// appendAssistantLocked appends an assistant message built from a turn and
// updates the current urgency.  Caller holds mu (or owns c exclusively).
func (c *Conversation) appendAssistantLocked(turn *pkg.AssistantTurn) {
	urgency := turn.Urgency
	if !urgency.Valid() {
		urgency = pkg.UrgencyLow
	}
	c.nextID++
	c.log = append(c.log, &AssistantMessage{
		ID:          c.nextID,
		Text:        turn.Message,
		Urgency:     urgency,
		Suggestions: append([]string(nil), turn.Suggestions...),
		At:          c.now(),
	})
	c.urgency = urgency
}

// SendUserTurn appends the user message optimistically, performs one round
// trip to the agent service and appends the assistant response.  On
// transport failure a single synthetic apology message with urgency low is
// appended instead, the in-flight flag clears, and the next send is
// accepted; there is no automatic retry.
func (c *Conversation) SendUserTurn(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.inFlight = true
	c.nextID++
	c.log = append(c.log, &UserMessage{ID: c.nextID, Text: trimmed, At: c.now()})
	c.mu.Unlock()

	turn, err := c.client.SendMessage(ctx, c.sessionID, trimmed)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		// The synthetic message carries urgency low, but the session's
		// current signal only tracks responses actually received.
		c.nextID++
		c.log = append(c.log, &AssistantMessage{
			ID:      c.nextID,
			Text:    c.fallback,
			Urgency: pkg.UrgencyLow,
			At:      c.now(),
		})
		return fmt.Errorf("send turn: %w", err)
	}
	c.appendAssistantLocked(turn)
	return nil
}

// SelectSuggestedReply copies a suggested follow-up into the pending input
// buffer.  It touches neither the log nor the network; nothing happens until
// the user explicitly sends it.
func (c *Conversation) SelectSuggestedReply(question string) {
	c.mu.Lock()
	c.pending = question
	c.mu.Unlock()
}

// PendingInput returns the pending input buffer.
func (c *Conversation) PendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// TakePendingInput returns and clears the pending input buffer.
func (c *Conversation) TakePendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = ""
	return p
}

// CurrentUrgency is the urgency carried on the most recently received
// assistant message, not a running maximum.
func (c *Conversation) CurrentUrgency() pkg.UrgencyLevel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.urgency
}

// Messages returns a snapshot of the log in display order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.log...)
}

// Len returns the number of logged messages.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.log)
}

// LastSuggestions returns the suggested replies on the most recent assistant
// message, nil when the last assistant turn carried none.
func (c *Conversation) LastSuggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.log) - 1; i >= 0; i-- {
		if m, ok := c.log[i].(*AssistantMessage); ok {
			return append([]string(nil), m.Suggestions...)
		}
	}
	return nil
}
