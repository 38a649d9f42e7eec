package handler

import (
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// Status reports service liveness. No credential required.
func Status(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers every unrouted path with the fixed error body instead of
// the stdlib plaintext 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	httputil.RespondHTTPError(w, &domain.EndpointNotFoundError{})
}
