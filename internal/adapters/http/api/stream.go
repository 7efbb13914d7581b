package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/gradebot/pkg/logger"
)

const (
	streamReadLimit    = maxBodyBytes
	streamWriteTimeout = 10 * time.Second
	streamIdleTimeout  = 10 * time.Minute
)

// StreamDependencies defines what a turn stream needs.
type StreamDependencies interface {
	Session(ctx context.Context, id string) (SessionView, error)
	MessageDependencies
}

// streamFrame is sent for every inbound frame: a reply or an error.
type streamFrame struct {
	Reply *Reply         `json:"reply,omitempty"`
	Error *errorResponse `json:"error,omitempty"`
}

// StreamHandler runs chat turns over a WebSocket.
type StreamHandler struct {
	deps     StreamDependencies
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new stream handler.
func NewStreamHandler(deps StreamDependencies) *StreamHandler {
	return &StreamHandler{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// HandleStream handles GET /sessions/{id}/stream. Each text frame carries a
// message request and is answered with one frame. The server closes the
// connection after an exit reply.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.stream"
	id := r.PathValue("id")
	if _, err := h.deps.Session(r.Context(), id); err != nil {
		writeServiceError(w, op, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client.
		return
	}
	defer conn.Close()
	conn.SetReadLimit(streamReadLimit)

	ctx := r.Context()
	log := logger.Named("stream")
	for {
		_ = conn.SetReadDeadline(time.Now().Add(streamIdleTimeout))
		var req messageRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug(ctx, "stream read ended", logger.String("sessionID", id), logger.Error(err))
			}
			return
		}

		frame := h.turn(ctx, op, id, req)
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			log.Debug(ctx, "stream write failed", logger.String("sessionID", id), logger.Error(err))
			return
		}

		if frame.Reply != nil && frame.Reply.Intent == "exit" {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteTimeout))
			return
		}
		if frame.Error != nil && frame.Error.Code == "not_found" {
			msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session ended")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteTimeout))
			return
		}
	}
}

func (h *StreamHandler) turn(ctx context.Context, op, id string, req messageRequest) streamFrame {
	if err := req.validate(); err != nil {
		_, body := classify(op, WrapKind(op, ErrBadRequest, err))
		return streamFrame{Error: &body}
	}
	reply, err := h.deps.Send(ctx, id, req.MessageID, req.Text)
	if err != nil {
		_, body := classify(op, err)
		return streamFrame{Error: &body}
	}
	return streamFrame{Reply: &reply}
}
