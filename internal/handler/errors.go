package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// respondError translates a service error into the fixed error body. Typed
// HTTP errors pass through with their own status and kind; wrapped sentinels
// collapse to the default message for their class; everything else is logged
// with full detail and surfaces as an opaque ApplicationError.
func respondError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondHTTPError(w, httpErr)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpErr = domain.NewResourceNotFoundError("")
	case errors.Is(err, domain.ErrBadRequest):
		httpErr = domain.NewBadRequestError("")
	case errors.Is(err, domain.ErrUnauthorized):
		httpErr = domain.NewUnauthorizedError("")
	case errors.Is(err, domain.ErrForbidden):
		httpErr = domain.NewForbiddenError("")
	default:
		logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		httpErr = domain.NewApplicationError("")
	}

	httputil.RespondHTTPError(w, httpErr)
}
