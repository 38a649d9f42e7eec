package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// Recovery middleware recovers from panics and returns a normalized 500.
// The stack trace stays on the operator side.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"stack", string(debug.Stack()),
					)

					httputil.RespondHTTPError(w, domain.NewApplicationError(""))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
