// Package server exposes the consultation API over HTTP: session lifecycle,
// intake profile, chat turns, history and the terminal summary.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"medagent/internal/triage"
	"medagent/pkg"
)

// Store is the persistence surface the handlers need. *db.Repository
// implements it; tests substitute an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error
	CreateSession(ctx context.Context) (*pkg.Session, error)
	GetSession(ctx context.Context, id string) (*pkg.Session, error)
	SaveProfile(ctx context.Context, sessionID string, p *pkg.Profile) error
	GetProfile(ctx context.Context, sessionID string) (*pkg.Profile, error)
	AppendMessage(ctx context.Context, sessionID string, origin pkg.MessageOrigin, content string, urgency pkg.UrgencyLevel, suggestions []string) (*pkg.StoredMessage, error)
	GetHistory(ctx context.Context, sessionID string) ([]pkg.StoredMessage, error)
	UpdateUrgency(ctx context.Context, sessionID string, level pkg.UrgencyLevel) error
	CloseSession(ctx context.Context, sessionID string) error
}

// Handler bundles together the dependencies required by the HTTP handlers.
type Handler struct {
	store  Store
	triage *triage.Service
	now    func() time.Time
}

// NewHandler constructs a Handler.
func NewHandler(store Store, svc *triage.Service) *Handler {
	return &Handler{store: store, triage: svc, now: time.Now}
}

// Router builds the chi router with all routes registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", h.Root)
	r.Get("/api/health", h.Health)
	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/session", h.CreateSession)
		r.Get("/session/{id}", h.GetSession)
		r.Post("/profile/{id}", h.SubmitProfile)
		r.Get("/profile/{id}", h.GetProfile)
		r.Post("/welcome/{id}", h.Welcome)
		r.Post("/message", h.Message)
		r.Get("/history/{id}", h.History)
		r.Get("/summary/{id}", h.Summary)
		r.Post("/close/{id}", h.Close)
	})
	return r
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
