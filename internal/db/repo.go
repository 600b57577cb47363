package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"medagent/pkg"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = errors.New("db: session not found")

// Repository wraps database operations for sessions, profiles and messages.
// A single postgres database backs all three tables.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a new Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// Ping verifies the database connection is alive.
func (r *Repository) Ping(ctx context.Context) error { return r.DB.PingContext(ctx) }

// CreateSession inserts a new active session and returns its record.
func (r *Repository) CreateSession(ctx context.Context) (*pkg.Session, error) {
	id := uuid.New()
	var s pkg.Session
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO sessions (id) VALUES ($1)
         RETURNING id, status, current_urgency, start_time`,
		id,
	).Scan(&s.ID, &s.Status, &s.CurrentUrgency, &s.StartTime)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSession retrieves a session record by id, with its message count.
func (r *Repository) GetSession(ctx context.Context, id string) (*pkg.Session, error) {
	var s pkg.Session
	var endTime sql.NullTime
	err := r.DB.QueryRowContext(ctx,
		`SELECT s.id, s.status, s.current_urgency, s.start_time, s.end_time,
                (SELECT COUNT(*) FROM messages m WHERE m.session_id = s.id)
         FROM sessions s
         WHERE s.id = $1`,
		id,
	).Scan(&s.ID, &s.Status, &s.CurrentUrgency, &s.StartTime, &endTime, &s.MessageCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if endTime.Valid {
		s.EndTime = &endTime.Time
	}
	return &s, nil
}

// SaveProfile stores the intake profile for a session. A resubmission
// replaces the previous one.
func (r *Repository) SaveProfile(ctx context.Context, sessionID string, p *pkg.Profile) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO profiles
             (session_id, age, gender, primary_symptom, duration, intensity,
              associated_symptoms, known_conditions, family_history)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         ON CONFLICT (session_id) DO UPDATE SET
             age = EXCLUDED.age,
             gender = EXCLUDED.gender,
             primary_symptom = EXCLUDED.primary_symptom,
             duration = EXCLUDED.duration,
             intensity = EXCLUDED.intensity,
             associated_symptoms = EXCLUDED.associated_symptoms,
             known_conditions = EXCLUDED.known_conditions,
             family_history = EXCLUDED.family_history`,
		sessionID, p.Age, p.Gender, p.PrimarySymptom, p.Duration, p.Intensity,
		pq.Array(p.AssociatedSymptoms), pq.Array(p.KnownConditions), p.FamilyHistory,
	)
	return err
}

// GetProfile retrieves the profile for a session. It returns (nil, nil) when
// the session exists but no profile has been submitted yet.
func (r *Repository) GetProfile(ctx context.Context, sessionID string) (*pkg.Profile, error) {
	var p pkg.Profile
	err := r.DB.QueryRowContext(ctx,
		`SELECT age, gender, primary_symptom, duration, intensity,
                associated_symptoms, known_conditions, family_history
         FROM profiles
         WHERE session_id = $1`,
		sessionID,
	).Scan(&p.Age, &p.Gender, &p.PrimarySymptom, &p.Duration, &p.Intensity,
		pq.Array(&p.AssociatedSymptoms), pq.Array(&p.KnownConditions), &p.FamilyHistory)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AppendMessage stores one message for a session and returns it as persisted.
// Urgency and suggestions only carry meaning for assistant messages; pass the
// zero values for user messages.
func (r *Repository) AppendMessage(ctx context.Context, sessionID string, origin pkg.MessageOrigin, content string, urgency pkg.UrgencyLevel, suggestions []string) (*pkg.StoredMessage, error) {
	var m pkg.StoredMessage
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO messages (session_id, origin, content, urgency, suggestions)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, session_id, origin, content, urgency, suggestions, created_at`,
		sessionID, origin, content, urgency, pq.Array(suggestions),
	).Scan(&m.ID, &m.SessionID, &m.Origin, &m.Content, &m.Urgency,
		pq.Array(&m.Suggestions), &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetHistory returns all messages of a session ordered by creation time.
func (r *Repository) GetHistory(ctx context.Context, sessionID string) ([]pkg.StoredMessage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, session_id, origin, content, urgency, suggestions, created_at
         FROM messages
         WHERE session_id = $1
         ORDER BY created_at ASC, id ASC`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var history []pkg.StoredMessage
	for rows.Next() {
		var m pkg.StoredMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Origin, &m.Content, &m.Urgency,
			pq.Array(&m.Suggestions), &m.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, m)
	}
	return history, rows.Err()
}

// UpdateUrgency records the urgency of the latest assistant turn on the
// session row so GetSession can report it without scanning messages.
func (r *Repository) UpdateUrgency(ctx context.Context, sessionID string, level pkg.UrgencyLevel) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions SET current_urgency = $1 WHERE id = $2`,
		level, sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseSession marks a session closed and stamps its end time. Closing an
// already closed session is a no-op.
func (r *Repository) CloseSession(ctx context.Context, sessionID string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sessions
         SET status = 'closed', end_time = COALESCE(end_time, NOW())
         WHERE id = $1`,
		sessionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
