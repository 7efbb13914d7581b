package chatcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gradebot/internal/domain/types"
)

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// do sends a request with an optional JSON body. When out is non-nil the
// answer is checked against schema and decoded into out.
func (c *HTTPClient) do(ctx context.Context, method, path, schema string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := validateResponse(schema, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// RemoteConversation talks to a running server through its JSON API.
type RemoteConversation struct {
	client    *HTTPClient
	sessionID string
}

// NewRemoteConversation opens a session on the server at cfg.BaseURL.
func NewRemoteConversation(ctx context.Context, cfg *Config) (*RemoteConversation, error) {
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)
	var view types.SessionView
	if err := client.do(ctx, http.MethodPost, "/sessions", schemaSession, nil, &view); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &RemoteConversation{client: client, sessionID: view.ID}, nil
}

// SessionID returns the server-side session id.
func (c *RemoteConversation) SessionID() string { return c.sessionID }

// Send implements Conversation.Send. Every line gets a fresh message id so
// a retried request is never applied twice.
func (c *RemoteConversation) Send(ctx context.Context, text string) (types.Reply, error) {
	req := struct {
		Text      string `json:"text"`
		MessageID string `json:"message_id"`
	}{Text: text, MessageID: uuid.NewString()}

	var reply types.Reply
	err := c.client.do(ctx, http.MethodPost, "/sessions/"+c.sessionID+"/messages", schemaReply, req, &reply)
	return reply, err
}

// Summary implements Conversation.Summary.
func (c *RemoteConversation) Summary(ctx context.Context) (types.Summary, error) {
	var sum types.Summary
	err := c.client.do(ctx, http.MethodGet, "/sessions/"+c.sessionID+"/summary", schemaSummary, nil, &sum)
	return sum, err
}

// Close implements Conversation.Close by deleting the server-side session.
func (c *RemoteConversation) Close(ctx context.Context) error {
	return c.client.do(ctx, http.MethodDelete, "/sessions/"+c.sessionID, "", nil, nil)
}
