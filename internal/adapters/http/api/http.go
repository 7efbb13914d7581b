// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	repository "github.com/okian/gradebot/internal/adapters/repository"
	service "github.com/okian/gradebot/internal/app"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/internal/domain/types"
)

// maxBodyBytes caps request bodies; a chat line or a profile is far smaller.
const maxBodyBytes = 64 << 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SessionDependencies
	MessageDependencies
	ProfileDependencies
	SummaryDependencies
	StreamDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	sessionsHandler  *SessionsHandler
	messagesHandler  *MessagesHandler
	profileHandler   *ProfileHandler
	summaryHandler   *SummaryHandler
	streamHandler    *StreamHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		sessionsHandler:  NewSessionsHandler(deps),
		messagesHandler:  NewMessagesHandler(deps),
		profileHandler:   NewProfileHandler(deps),
		summaryHandler:   NewSummaryHandler(deps),
		streamHandler:    NewStreamHandler(deps),
		dashboardHandler: newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /dashboard", s.dashboardHandler.HandleDashboard)

	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleDelete, "session"))
	mux.HandleFunc("POST /sessions/{id}/reset", MetricsMiddleware(s.sessionsHandler.HandleReset, "reset"))
	mux.HandleFunc("POST /sessions/{id}/messages", MetricsMiddleware(s.messagesHandler.HandlePostMessage, "messages"))
	mux.HandleFunc("PUT /sessions/{id}/profile", MetricsMiddleware(s.profileHandler.HandlePutProfile, "profile"))
	mux.HandleFunc("GET /sessions/{id}/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("GET /sessions/{id}/stream", MetricsMiddleware(s.streamHandler.HandleStream, "stream"))
}

// Read shapes re-exported for handler signatures.
type (
	SessionView = types.SessionView
	Reply       = types.Reply
	Summary     = types.Summary
	Profile     = model.Profile
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates a service error into a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, body := classify(op, err)
	writeJSON(w, status, body)
}

// classify maps a service error to its status code and error body.
func classify(op string, err error) (int, errorResponse) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrEmptyText):
		status, code = http.StatusBadRequest, "bad_request"
		if !errors.Is(err, ErrBadRequest) {
			err = WrapKind(op, ErrBadRequest, err)
		}
	case errors.Is(err, repository.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrDuplicateMessage):
		status, code = http.StatusConflict, "duplicate"
	case errors.Is(err, service.ErrNotStarted), errors.Is(err, repository.ErrClosed):
		status, code = http.StatusServiceUnavailable, "unavailable"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		err = Wrap(op, err)
	}
	return status, errorResponse{Code: code, Message: err.Error()}
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}
