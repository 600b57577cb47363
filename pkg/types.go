package pkg

import "time"

// UrgencyLevel is the three-step severity indicator attached to assistant
// turns.  The zero value is not valid; use UrgencyLow as the default.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// Severity maps the level onto a total order (low < medium < high) used for
// display colouring and for computing the session maximum.
func (u UrgencyLevel) Severity() int {
	switch u {
	case UrgencyMedium:
		return 1
	case UrgencyHigh:
		return 2
	default:
		return 0
	}
}

// Valid reports whether u is one of the three known levels.
func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ParseUrgency normalises a wire value, falling back to low for anything
// unknown so a misbehaving upstream can never escalate by accident.
func ParseUrgency(s string) UrgencyLevel {
	u := UrgencyLevel(s)
	if !u.Valid() {
		return UrgencyLow
	}
	return u
}

// MaxUrgency returns the more severe of a and b.
func MaxUrgency(a, b UrgencyLevel) UrgencyLevel {
	if b.Severity() > a.Severity() {
		return b
	}
	return a
}

// AgeBracket buckets the patient's age.  Brackets match the intake form.
type AgeBracket string

const (
	AgeUnder12 AgeBracket = "<12"
	Age12to18  AgeBracket = "12-18"
	Age19to30  AgeBracket = "19-30"
	Age31to50  AgeBracket = "31-50"
	Age51to70  AgeBracket = "51-70"
	AgeOver70  AgeBracket = ">70"
)

// Gender is the self-reported gender option.
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderOther       Gender = "other"
	GenderUnspecified Gender = "unspecified"
)

// Duration buckets how long the primary symptom has been present.
type Duration string

const (
	DurationOneDay       Duration = "one_day"
	DurationTwoThreeDays Duration = "two_three_days"
	DurationOverThree    Duration = "over_three_days"
	DurationChronic      Duration = "chronic"
)

// Profile is the structured intake profile submitted once per session.
// Associated symptoms and known conditions are stored as stable option ids,
// never as display labels, so a selection survives a language switch.  The
// client treats a submitted profile as immutable.
type Profile struct {
	Age                AgeBracket `json:"age,omitempty"`
	Gender             Gender     `json:"gender,omitempty"`
	PrimarySymptom     string     `json:"primary_symptom,omitempty"`
	Duration           Duration   `json:"duration,omitempty"`
	Intensity          int        `json:"intensity,omitempty"` // 1-10, 0 = unset
	AssociatedSymptoms []string   `json:"associated_symptoms,omitempty"`
	KnownConditions    []string   `json:"known_conditions,omitempty"`
	FamilyHistory      string     `json:"family_history,omitempty"`
}

// SessionStatus is the server-side session state.
type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionClosed SessionStatus = "closed"
)

// Session is the server-side session record.
type Session struct {
	ID             string        `json:"session_id"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
	Status         SessionStatus `json:"status"`
	MessageCount   int           `json:"message_count"`
	CurrentUrgency UrgencyLevel  `json:"current_urgency_level"`
}

// MessageOrigin tags who authored a stored message.
type MessageOrigin string

const (
	OriginUser      MessageOrigin = "user"
	OriginAssistant MessageOrigin = "assistant"
)

// StoredMessage is a message as persisted and returned by the history
// endpoint.  Urgency and suggestions are only present on assistant messages.
type StoredMessage struct {
	ID          int64         `json:"id"`
	SessionID   string        `json:"session_id"`
	Origin      MessageOrigin `json:"origin"`
	Content     string        `json:"content"`
	Urgency     UrgencyLevel  `json:"urgency_level,omitempty"`
	Suggestions []string      `json:"next_questions,omitempty"`
	CreatedAt   time.Time     `json:"timestamp"`
}

// SessionInfo is the session metadata block of a summary.
type SessionInfo struct {
	SessionID       string        `json:"session_id"`
	StartTime       time.Time     `json:"start_time"`
	DurationMinutes float64       `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
}

// ConversationStats aggregates the conversation for the summary.
type ConversationStats struct {
	TotalMessages     int          `json:"total_messages"`
	UserMessages      int          `json:"user_messages"`
	AssistantMessages int          `json:"assistant_messages"`
	MaxUrgency        UrgencyLevel `json:"max_urgency_level"`
}

// Recommendations carries the closing advice of a summary.
type Recommendations struct {
	Urgency   UrgencyLevel `json:"urgency_level"`
	NextSteps string       `json:"next_steps"`
}

// Summary is the terminal, read-only aggregate of a session.  It is produced
// by the remote service on demand and never mutated by the client.
type Summary struct {
	SessionInfo     SessionInfo       `json:"session_info"`
	Stats           ConversationStats `json:"conversation_stats"`
	Recommendations Recommendations   `json:"recommendations"`
	Profile         *Profile          `json:"profile_summary,omitempty"`
}

// CreateSessionResponse acknowledges session creation.
type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

// GetSessionResponse returns the session record and, if submitted, the profile.
type GetSessionResponse struct {
	Session *Session `json:"session"`
	Profile *Profile `json:"profile,omitempty"`
}

// SubmitProfileResponse acknowledges a profile submission.
type SubmitProfileResponse struct {
	Status  string   `json:"status"`
	Profile *Profile `json:"profile,omitempty"`
}

// ChatRequest is the body of a chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// AssistantTurn is the response shape shared by the welcome and chat
// endpoints: the assistant text plus its urgency signal and suggested
// follow-up replies.
type AssistantTurn struct {
	Message     string       `json:"message"`
	Urgency     UrgencyLevel `json:"urgency_level"`
	Suggestions []string     `json:"next_questions,omitempty"`
	Timestamp   time.Time    `json:"timestamp,omitempty"`
}

// HistoryResponse returns a session transcript in causal order.
type HistoryResponse struct {
	Messages []StoredMessage `json:"messages"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	AIService string    `json:"ai_service"`
	Timestamp time.Time `json:"timestamp"`
}
