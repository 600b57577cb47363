package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"medagent/internal/db"
	"medagent/internal/triage"
	"medagent/pkg"
)

// Root describes the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{
		"service": "MedAgent API",
		"version": "1.0.0",
		"docs":    "/api/health",
	})
}

// Health reports the state of the database and the AI backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := pkg.HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		AIService: "configured",
		Timestamp: h.now(),
	}
	if err := h.store.Ping(r.Context()); err != nil {
		slog.Error("health: database ping failed", "error", err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
	}
	if h.triage.LLM == nil {
		resp.AIService = "unconfigured"
	}
	JSON(w, http.StatusOK, resp)
}

// CreateSession opens a new consultation session.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.CreateSession(r.Context())
	if err != nil {
		slog.Error("create session", "error", err)
		Error(w, http.StatusInternalServerError, "could not create session")
		return
	}
	slog.Info("session created", "session_id", sess.ID)
	JSON(w, http.StatusOK, pkg.CreateSessionResponse{
		SessionID: sess.ID,
		Status:    string(sess.Status),
	})
}

// GetSession returns the session record and, if submitted, its profile.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, err := h.store.GetSession(r.Context(), id)
	if err != nil {
		h.storeError(w, "get session", id, err)
		return
	}
	profile, err := h.store.GetProfile(r.Context(), id)
	if err != nil {
		h.storeError(w, "get profile", id, err)
		return
	}
	JSON(w, http.StatusOK, pkg.GetSessionResponse{Session: sess, Profile: profile})
}

// SubmitProfile validates and stores the intake profile for a session.
func (h *Handler) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var profile pkg.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		Error(w, http.StatusBadRequest, "invalid profile body")
		return
	}
	if reason := validateProfile(&profile); reason != "" {
		Error(w, http.StatusUnprocessableEntity, reason)
		return
	}
	if _, err := h.store.GetSession(r.Context(), id); err != nil {
		h.storeError(w, "submit profile", id, err)
		return
	}
	if err := h.store.SaveProfile(r.Context(), id, &profile); err != nil {
		h.storeError(w, "submit profile", id, err)
		return
	}
	slog.Info("profile submitted", "session_id", id, "primary_symptom", profile.PrimarySymptom)
	JSON(w, http.StatusOK, pkg.SubmitProfileResponse{Status: "profile_saved", Profile: &profile})
}

// GetProfile returns the stored intake profile for a session.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.GetSession(r.Context(), id); err != nil {
		h.storeError(w, "get profile", id, err)
		return
	}
	profile, err := h.store.GetProfile(r.Context(), id)
	if err != nil {
		h.storeError(w, "get profile", id, err)
		return
	}
	if profile == nil {
		Error(w, http.StatusNotFound, "profile not submitted")
		return
	}
	JSON(w, http.StatusOK, profile)
}

// Welcome generates the opening assistant turn, persists it and returns it.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()
	if _, err := h.store.GetSession(ctx, id); err != nil {
		h.storeError(w, "welcome", id, err)
		return
	}
	profile, err := h.store.GetProfile(ctx, id)
	if err != nil {
		h.storeError(w, "welcome", id, err)
		return
	}

	turn := h.triage.Welcome(profile)
	if _, err := h.store.AppendMessage(ctx, id, pkg.OriginAssistant, turn.Message, turn.Urgency, turn.Suggestions); err != nil {
		h.storeError(w, "welcome", id, err)
		return
	}
	if err := h.store.UpdateUrgency(ctx, id, turn.Urgency); err != nil {
		h.storeError(w, "welcome", id, err)
		return
	}
	JSON(w, http.StatusOK, turn)
}

// Message handles one chat turn: it persists the user message, asks the
// triage service for a reply and persists that too.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req pkg.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		Error(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	ctx := r.Context()
	sess, err := h.store.GetSession(ctx, req.SessionID)
	if err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}
	if sess.Status == pkg.SessionClosed {
		Error(w, http.StatusBadRequest, "session is closed")
		return
	}

	profile, err := h.store.GetProfile(ctx, req.SessionID)
	if err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}
	history, err := h.store.GetHistory(ctx, req.SessionID)
	if err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}

	if _, err := h.store.AppendMessage(ctx, req.SessionID, pkg.OriginUser, text, "", nil); err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}

	turn, replyErr := h.triage.Reply(ctx, profile, history, text)
	if replyErr != nil {
		// The fallback turn keeps the conversation usable.
		slog.Warn("model reply failed", "session_id", req.SessionID, "error", replyErr)
	}
	if _, err := h.store.AppendMessage(ctx, req.SessionID, pkg.OriginAssistant, turn.Message, turn.Urgency, turn.Suggestions); err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}
	if err := h.store.UpdateUrgency(ctx, req.SessionID, turn.Urgency); err != nil {
		h.storeError(w, "message", req.SessionID, err)
		return
	}
	JSON(w, http.StatusOK, turn)
}

// History returns the full transcript of a session in causal order.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.GetSession(r.Context(), id); err != nil {
		h.storeError(w, "history", id, err)
		return
	}
	msgs, err := h.store.GetHistory(r.Context(), id)
	if err != nil {
		h.storeError(w, "history", id, err)
		return
	}
	if msgs == nil {
		msgs = []pkg.StoredMessage{}
	}
	JSON(w, http.StatusOK, pkg.HistoryResponse{Messages: msgs})
}

// Summary aggregates the session into its terminal summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()
	sess, err := h.store.GetSession(ctx, id)
	if err != nil {
		h.storeError(w, "summary", id, err)
		return
	}
	profile, err := h.store.GetProfile(ctx, id)
	if err != nil {
		h.storeError(w, "summary", id, err)
		return
	}
	msgs, err := h.store.GetHistory(ctx, id)
	if err != nil {
		h.storeError(w, "summary", id, err)
		return
	}
	JSON(w, http.StatusOK, triage.BuildSummary(sess, profile, msgs, h.now()))
}

// Close marks a session closed.
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.CloseSession(r.Context(), id); err != nil {
		h.storeError(w, "close", id, err)
		return
	}
	slog.Info("session closed", "session_id", id)
	JSON(w, http.StatusOK, map[string]string{"status": "closed", "session_id": id})
}

// storeError maps repository failures onto HTTP responses.
func (h *Handler) storeError(w http.ResponseWriter, op, sessionID string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		Error(w, http.StatusNotFound, "session not found")
		return
	}
	slog.Error(op, "session_id", sessionID, "error", err)
	Error(w, http.StatusInternalServerError, "internal error")
}

// validateProfile applies the intake constraints the form enforces client
// side, so a direct API caller cannot bypass them.
func validateProfile(p *pkg.Profile) string {
	symptom := strings.TrimSpace(p.PrimarySymptom)
	if symptom != "" && utf8.RuneCountInString(symptom) < 2 {
		return "primary symptom must be at least 2 characters"
	}
	if p.Intensity != 0 && (p.Intensity < 1 || p.Intensity > 10) {
		return "intensity must be between 1 and 10"
	}
	return ""
}
