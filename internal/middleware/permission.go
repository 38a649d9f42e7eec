package middleware

import (
	"net/http"

	"giftlist/internal/domain"
	"giftlist/internal/httputil"
)

// RequirePermission is the capability gate: the caller's permission snapshot
// must intersect the required list (OR semantics, not AND). It runs before
// any resource is loaded, so it can never confirm a resource's existence.
//
// A missing identity means Authenticate never ran or failed open, which is a
// different failure class from "authenticated but lacking permission": the
// former is a 401, the latter a 403.
func RequirePermission(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := httputil.GetClaims(r)
			if claims == nil {
				httputil.RespondHTTPError(w, domain.NewUnauthorizedError(""))
				return
			}

			allowed := false
			for _, p := range required {
				if claims.HasPermission(p) {
					allowed = true
					break
				}
			}

			if !allowed {
				httputil.RespondHTTPError(w, domain.NewForbiddenError(""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Chain composes middleware left to right: the first listed runs first.
func Chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
