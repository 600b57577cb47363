package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"medagent/pkg"
)

// HTTPClient talks to the agent service over its /api JSON routes.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the service at baseURL (no trailing
// slash required).  A nil httpClient uses http.DefaultClient; timeouts are
// the transport's concern.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// CreateSession asks the service for a fresh session id.
func (c *HTTPClient) CreateSession(ctx context.Context) (string, error) {
	var resp pkg.CreateSessionResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/session", nil, &resp); err != nil {
		return "", err
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("agent service returned no session id")
	}
	return resp.SessionID, nil
}

// GetSession fetches the session record and any submitted profile.
func (c *HTTPClient) GetSession(ctx context.Context, sessionID string) (*pkg.GetSessionResponse, error) {
	var resp pkg.GetSessionResponse
	if err := c.do(ctx, http.MethodGet, "/api/chat/session/"+sessionID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubmitProfile posts the intake profile for the session.
func (c *HTTPClient) SubmitProfile(ctx context.Context, sessionID string, profile *pkg.Profile) error {
	var resp pkg.SubmitProfileResponse
	return c.do(ctx, http.MethodPost, "/api/chat/profile/"+sessionID, profile, &resp)
}

// FetchWelcome requests the opening assistant turn.
func (c *HTTPClient) FetchWelcome(ctx context.Context, sessionID string) (*pkg.AssistantTurn, error) {
	var turn pkg.AssistantTurn
	if err := c.do(ctx, http.MethodPost, "/api/chat/welcome/"+sessionID, nil, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// SendMessage posts one user chat turn and returns the assistant response.
func (c *HTTPClient) SendMessage(ctx context.Context, sessionID, text string) (*pkg.AssistantTurn, error) {
	req := pkg.ChatRequest{SessionID: sessionID, Message: text}
	var turn pkg.AssistantTurn
	if err := c.do(ctx, http.MethodPost, "/api/chat/message", req, &turn); err != nil {
		return nil, err
	}
	return &turn, nil
}

// FetchSummary retrieves the terminal session summary.  Safe to repeat.
func (c *HTTPClient) FetchSummary(ctx context.Context, sessionID string) (*pkg.Summary, error) {
	var sum pkg.Summary
	if err := c.do(ctx, http.MethodGet, "/api/chat/summary/"+sessionID, nil, &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// CloseSession marks the session closed on the service side.
func (c *HTTPClient) CloseSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/api/chat/close/"+sessionID, nil, nil)
}

// Health checks the service health endpoint.
func (c *HTTPClient) Health(ctx context.Context) (*pkg.HealthResponse, error) {
	var h pkg.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// do performs one JSON round trip.  A nil body sends no payload; a nil out
// discards the response body.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := readErrorDetail(resp.Body)
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", path, err)
	}
	return nil
}

func readErrorDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Detail != "" {
			return payload.Detail
		}
	}
	return strings.TrimSpace(string(data))
}
