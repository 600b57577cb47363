// Package session drives one end-to-end triage session: the lifecycle
// controller walks create → profile → welcome → active → summarized against
// the remote agent service, and the conversation state machine owns the
// append-only message log while the session is active.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"medagent/internal/agentapi"
	"medagent/internal/i18n"
	"medagent/internal/intake"
	"medagent/pkg"
)

// Status is the client-side lifecycle state of a session.
type Status string

const (
	StatusUninitialized    Status = "uninitialized"
	StatusCreated          Status = "created"
	StatusProfileSubmitted Status = "profile_submitted"
	StatusActive           Status = "active"
	StatusSummarized       Status = "summarized"
)

var (
	// ErrOperationInFlight rejects a lifecycle call while another is pending.
	ErrOperationInFlight = errors.New("another session operation is in flight")
	// ErrProfileRejected wraps a server-side profile rejection; the session
	// stays in the created state and resubmission is allowed.
	ErrProfileRejected = errors.New("profile rejected by agent service")
)

// StateError reports an operation invoked from the wrong lifecycle state.
type StateError struct {
	Op     string
	Status Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s in state %q", e.Op, e.Status)
}

// Controller owns the opaque session id and serializes lifecycle
// transitions against the remote agent service.  One controller handles one
// session; abandoning a session means dropping the controller and building a
// new one, which does not notify the service.
type Controller struct {
	client agentapi.Client
	lang   i18n.Language
	now    func() time.Time

	mu       sync.Mutex
	status   Status
	inFlight bool
	id       string
	profile  *pkg.Profile
	conv     *Conversation
	summary  *pkg.Summary
}

// NewController builds a controller in the uninitialized state.
func NewController(client agentapi.Client, lang i18n.Language) *Controller {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return &Controller{
		client: client,
		lang:   lang,
		now:    time.Now,
		status: StatusUninitialized,
	}
}

// Status returns the current lifecycle state.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// SessionID returns the remote session id, empty before creation.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Profile returns the submitted profile, nil before submission.  The
// returned value must not be mutated.
func (c *Controller) Profile() *pkg.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// Conversation returns the active conversation, nil before the welcome turn.
func (c *Controller) Conversation() *Conversation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv
}

// Summary returns the last fetched summary, nil before RequestSummary.
func (c *Controller) Summary() *pkg.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summary
}

// begin claims the single in-flight slot after checking the state gate.
func (c *Controller) begin(op string, from ...Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return ErrOperationInFlight
	}
	for _, s := range from {
		if c.status == s {
			c.inFlight = true
			return nil
		}
	}
	return &StateError{Op: op, Status: c.status}
}

func (c *Controller) finish() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Create obtains a session id from the remote service.  On failure the
// controller stays uninitialized and the call may be retried.
func (c *Controller) Create(ctx context.Context) error {
	if err := c.begin("create session", StatusUninitialized); err != nil {
		return err
	}
	defer c.finish()

	id, err := c.client.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	c.mu.Lock()
	c.id = id
	c.status = StatusCreated
	c.mu.Unlock()
	return nil
}

// SubmitProfile validates the draft client-side and submits the resulting
// profile.  Validation failures surface as *intake.FieldError without any
// network call; a server rejection wraps ErrProfileRejected and leaves the
// session in the created state for resubmission.
func (c *Controller) SubmitProfile(ctx context.Context, draft *intake.Draft) error {
	profile, err := draft.Build()
	if err != nil {
		return err
	}
	if err := c.begin("submit profile", StatusCreated); err != nil {
		return err
	}
	defer c.finish()

	if err := c.client.SubmitProfile(ctx, c.id, profile); err != nil {
		var apiErr *agentapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			return fmt.Errorf("%w: %v", ErrProfileRejected, err)
		}
		return fmt.Errorf("submit profile: %w", err)
	}

	c.mu.Lock()
	c.profile = profile
	c.status = StatusProfileSubmitted
	c.mu.Unlock()
	return nil
}

// FetchWelcome requests the opening assistant turn and activates the
// conversation.  On failure the session stays profile_submitted and the call
// may be retried.
func (c *Controller) FetchWelcome(ctx context.Context) error {
	if err := c.begin("fetch welcome", StatusProfileSubmitted); err != nil {
		return err
	}
	defer c.finish()

	turn, err := c.client.FetchWelcome(ctx, c.id)
	if err != nil {
		return fmt.Errorf("fetch welcome: %w", err)
	}

	c.mu.Lock()
	c.conv = newConversation(c.client, c.id, c.lang, turn, c.now)
	c.status = StatusActive
	c.mu.Unlock()
	return nil
}

// RequestSummary fetches the terminal session summary.  The first success
// moves the session to its terminal state; repeating the call refetches the
// summary without further transitions or side effects.
func (c *Controller) RequestSummary(ctx context.Context) (*pkg.Summary, error) {
	if err := c.begin("request summary", StatusActive, StatusSummarized); err != nil {
		return nil, err
	}
	defer c.finish()

	sum, err := c.client.FetchSummary(ctx, c.id)
	if err != nil {
		return nil, fmt.Errorf("fetch summary: %w", err)
	}

	c.mu.Lock()
	c.summary = sum
	c.status = StatusSummarized
	c.mu.Unlock()
	return sum, nil
}

// Close tells the service the session is finished.  Only meaningful after
// summarizing; the client-side state stays summarized either way.
func (c *Controller) Close(ctx context.Context) error {
	if err := c.begin("close session", StatusSummarized); err != nil {
		return err
	}
	defer c.finish()

	if err := c.client.CloseSession(ctx, c.id); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
