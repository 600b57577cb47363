// Package agentapi defines the contract the client core consumes from the
// remote agent service, plus the HTTP implementation speaking its JSON API.
// The natural-language triage itself lives behind this boundary; the core
// only ever sees session ids, assistant turns and summaries.
package agentapi

import (
	"context"
	"fmt"

	"medagent/pkg"
)

// Client is the remote-service contract.  Every method is a single round
// trip; callers serialize invocations per session.
type Client interface {
	CreateSession(ctx context.Context) (sessionID string, err error)
	GetSession(ctx context.Context, sessionID string) (*pkg.GetSessionResponse, error)
	SubmitProfile(ctx context.Context, sessionID string, profile *pkg.Profile) error
	FetchWelcome(ctx context.Context, sessionID string) (*pkg.AssistantTurn, error)
	SendMessage(ctx context.Context, sessionID, text string) (*pkg.AssistantTurn, error)
	FetchSummary(ctx context.Context, sessionID string) (*pkg.Summary, error)
	CloseSession(ctx context.Context, sessionID string) error
}

// APIError is a non-2xx response from the remote service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("agent service returned status %d", e.Status)
	}
	return fmt.Sprintf("agent service returned status %d: %s", e.Status, e.Detail)
}
