package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// UserHandler serves the authenticated caller's own record.
type UserHandler struct {
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(logger *slog.Logger) *UserHandler {
	return &UserHandler{logger: logger}
}

// Me returns the live user record resolved during authentication. The token
// snapshot may be stale; this is always the row as stored.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := httputil.GetIdentity(r)
	if user == nil {
		respondError(w, r, domain.NewUnauthorizedError(""), h.logger)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, user)
}
