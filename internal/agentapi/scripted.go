package agentapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"medagent/pkg"
)

// ErrSessionNotFound is returned by Scripted for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

// Scripted is a deterministic in-process Client used by the offline client
// mode and by tests.  It keeps per-session state and answers with canned
// triage-shaped turns: messages mentioning pain escalate to medium urgency,
// emergency wording escalates to high.
type Scripted struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*scriptedSession
	now      func() time.Time
}

type scriptedSession struct {
	profile  *pkg.Profile
	start    time.Time
	status   pkg.SessionStatus
	userMsgs int
	botMsgs  int
	maxSeen  pkg.UrgencyLevel
}

// NewScripted builds an empty scripted service.
func NewScripted() *Scripted {
	return &Scripted{
		sessions: make(map[string]*scriptedSession),
		now:      time.Now,
	}
}

func (s *Scripted) CreateSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := fmt.Sprintf("offline-%04d", s.nextID)
	s.sessions[id] = &scriptedSession{
		start:   s.now(),
		status:  pkg.SessionActive,
		maxSeen: pkg.UrgencyLow,
	}
	return id, nil
}

func (s *Scripted) GetSession(ctx context.Context, sessionID string) (*pkg.GetSessionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &pkg.GetSessionResponse{
		Session: &pkg.Session{
			ID:             sessionID,
			StartTime:      sess.start,
			Status:         sess.status,
			MessageCount:   sess.userMsgs + sess.botMsgs,
			CurrentUrgency: sess.maxSeen,
		},
		Profile: sess.profile,
	}, nil
}

func (s *Scripted) SubmitProfile(ctx context.Context, sessionID string, profile *pkg.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.profile = profile
	return nil
}

func (s *Scripted) FetchWelcome(ctx context.Context, sessionID string) (*pkg.AssistantTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	text := "Ciao! Sono MedAgent, il tuo assistente sanitario digitale. Come posso aiutarti oggi?"
	if sess.profile != nil && sess.profile.PrimarySymptom != "" {
		text = fmt.Sprintf("Ciao! Ho visto che hai menzionato %q. Puoi raccontarmi di più su quello che stai vivendo?", sess.profile.PrimarySymptom)
	}
	sess.botMsgs++
	return &pkg.AssistantTurn{
		Message: text,
		Urgency: pkg.UrgencyLow,
		Suggestions: []string{
			"Puoi descrivermi il sintomo che ti preoccupa?",
			"Da quando hai notato questo problema?",
			"C'è qualcos'altro che ti fa stare male?",
		},
		Timestamp: s.now(),
	}, nil
}

func (s *Scripted) SendMessage(ctx context.Context, sessionID, text string) (*pkg.AssistantTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	lower := strings.ToLower(text)
	urgency := pkg.UrgencyLow
	switch {
	case strings.Contains(lower, "dolore toracico") || strings.Contains(lower, "respirare"):
		urgency = pkg.UrgencyHigh
	case strings.Contains(lower, "dolore") || strings.Contains(lower, "febbre"):
		urgency = pkg.UrgencyMedium
	}
	sess.userMsgs++
	sess.botMsgs++
	sess.maxSeen = pkg.MaxUrgency(sess.maxSeen, urgency)
	return &pkg.AssistantTurn{
		Message: fmt.Sprintf("Capisco, mi hai detto: %q. Puoi darmi qualche dettaglio in più?", text),
		Urgency: urgency,
		Suggestions: []string{
			"È la prima volta che ti succede?",
			"C'è qualcos'altro che ti preoccupa?",
		},
		Timestamp: s.now(),
	}, nil
}

func (s *Scripted) FetchSummary(ctx context.Context, sessionID string) (*pkg.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	nextSteps := "Monitora i sintomi e cerca assistenza se necessario"
	if sess.maxSeen != pkg.UrgencyLow {
		nextSteps = "Consulta il tuo medico se i sintomi persistono o peggiorano"
	}
	return &pkg.Summary{
		SessionInfo: pkg.SessionInfo{
			SessionID:       sessionID,
			StartTime:       sess.start,
			DurationMinutes: s.now().Sub(sess.start).Minutes(),
			Status:          sess.status,
		},
		Stats: pkg.ConversationStats{
			TotalMessages:     sess.userMsgs + sess.botMsgs,
			UserMessages:      sess.userMsgs,
			AssistantMessages: sess.botMsgs,
			MaxUrgency:        sess.maxSeen,
		},
		Recommendations: pkg.Recommendations{
			Urgency:   sess.maxSeen,
			NextSteps: nextSteps,
		},
		Profile: sess.profile,
	}, nil
}

func (s *Scripted) CloseSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.status = pkg.SessionClosed
	return nil
}
