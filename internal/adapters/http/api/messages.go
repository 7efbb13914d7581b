package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// MessageDependencies defines the turn operation.
type MessageDependencies interface {
	// Send runs one turn. A repeated non-empty messageID is rejected.
	Send(ctx context.Context, id, messageID, text string) (Reply, error)
}

// messageRequest mirrors the OpenAPI schema for POST /sessions/{id}/messages.
type messageRequest struct {
	Text      string `json:"text"`
	MessageID string `json:"message_id"`
}

func (m messageRequest) validate() error {
	if strings.TrimSpace(m.Text) == "" {
		return errors.New("missing text")
	}
	return nil
}

// MessagesHandler handles chat turns.
type MessagesHandler struct {
	deps MessageDependencies
}

// NewMessagesHandler creates a new messages handler.
func NewMessagesHandler(deps MessageDependencies) *MessagesHandler {
	return &MessagesHandler{deps: deps}
}

// HandlePostMessage handles POST /sessions/{id}/messages requests.
func (h *MessagesHandler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_message"
	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	reply, err := h.deps.Send(r.Context(), r.PathValue("id"), req.MessageID, req.Text)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
