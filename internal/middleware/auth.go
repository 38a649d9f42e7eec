package middleware

import (
	"log/slog"
	"net/http"

	"giftlist/internal/auth"
	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// Authenticate extracts and verifies the capability token, resolves the live
// user behind it and attaches both to the request context. Any failure ends
// the request with a 401; nothing downstream runs without an identity.
func Authenticate(codec *auth.TokenCodec, resolver *auth.IdentityResolver, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := auth.FromHeader(r.Header.Get("Authorization"))
			if err != nil {
				respondAuthFailure(w, r, err, logger)
				return
			}

			claims, err := codec.Verify(raw)
			if err != nil {
				respondAuthFailure(w, r, err, logger)
				return
			}

			user, err := resolver.ResolveByToken(r.Context(), claims)
			if err != nil {
				respondAuthFailure(w, r, err, logger)
				return
			}

			next.ServeHTTP(w, httputil.WithIdentity(r, user, claims))
		})
	}
}

func respondAuthFailure(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var httpErr domain.HTTPError
	if unauth, ok := err.(*domain.UnauthorizedError); ok {
		httpErr = unauth
	} else {
		logger.Error("authentication failed unexpectedly",
			"error", err,
			"path", r.URL.Path,
			"method", r.Method,
		)
		httpErr = domain.NewApplicationError("")
	}
	httputil.RespondHTTPError(w, httpErr)
}
