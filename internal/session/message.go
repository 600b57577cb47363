package session

import (
	"time"

	"medagent/pkg"
)

// Message is the closed variant of conversation log entries.  Only
// UserMessage and AssistantMessage implement it; the unexported method seals
// the set so a log entry is always one of the two.
type Message interface {
	MessageID() int64
	Timestamp() time.Time
	isMessage()
}

// UserMessage is a turn authored by the user.
type UserMessage struct {
	ID   int64
	Text string
	At   time.Time
}

func (m *UserMessage) MessageID() int64     { return m.ID }
func (m *UserMessage) Timestamp() time.Time { return m.At }
func (m *UserMessage) isMessage()           {}

// AssistantMessage is a turn received from (or synthesised on behalf of) the
// assistant, carrying the urgency signal and suggested follow-up replies.
type AssistantMessage struct {
	ID          int64
	Text        string
	Urgency     pkg.UrgencyLevel
	Suggestions []string
	At          time.Time
}

func (m *AssistantMessage) MessageID() int64     { return m.ID }
func (m *AssistantMessage) Timestamp() time.Time { return m.At }
func (m *AssistantMessage) isMessage()           {}
