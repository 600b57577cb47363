package agentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medagent/pkg"
)

func TestHTTPClientCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/chat/session" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(pkg.CreateSessionResponse{SessionID: "abc-123", Status: "created"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	id, err := c.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if id != "abc-123" {
		t.Errorf("session id = %q", id)
	}
}

func TestHTTPClientSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/message" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req pkg.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.SessionID != "s1" || req.Message != "è da due giorni" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(pkg.AssistantTurn{
			Message:     "Capisco.",
			Urgency:     pkg.UrgencyMedium,
			Suggestions: []string{"Hai misurato la temperatura?"},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	turn, err := c.SendMessage(context.Background(), "s1", "è da due giorni")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if turn.Urgency != pkg.UrgencyMedium {
		t.Errorf("urgency = %q", turn.Urgency)
	}
	if len(turn.Suggestions) != 1 {
		t.Errorf("suggestions = %v", turn.Suggestions)
	}
}

func TestHTTPClientSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	_, err := c.GetSession(context.Background(), "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Detail != "session not found" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestHTTPClientSubmitProfileRoundTrip(t *testing.T) {
	var got pkg.Profile
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/profile/s1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(pkg.SubmitProfileResponse{Status: "created"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil)
	profile := &pkg.Profile{PrimarySymptom: "mal di testa", Intensity: 7}
	if err := c.SubmitProfile(context.Background(), "s1", profile); err != nil {
		t.Fatalf("SubmitProfile: %v", err)
	}
	if got.PrimarySymptom != "mal di testa" || got.Intensity != 7 {
		t.Errorf("server received %+v", got)
	}
}
