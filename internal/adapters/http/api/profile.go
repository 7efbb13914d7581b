package api

import (
	"context"
	"net/http"

	"github.com/okian/gradebot/internal/domain/model"
)

// ProfileDependencies defines the sidebar profile operation.
type ProfileDependencies interface {
	UpdateProfile(ctx context.Context, id string, p Profile) (SessionView, error)
}

// ProfileHandler handles profile requests.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandlePutProfile handles PUT /sessions/{id}/profile requests.
func (h *ProfileHandler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_profile"
	// Fields left out of the body keep their form defaults.
	p := model.DefaultProfile()
	if err := decodeJSON(w, r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.UpdateProfile(r.Context(), r.PathValue("id"), p)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
