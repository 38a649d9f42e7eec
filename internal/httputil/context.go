package httputil

import (
	"context"
	"net/http"

	"giftlist/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const (
	identityKey contextKey = "identity"
	claimsKey   contextKey = "claims"
)

// WithIdentity attaches the resolved user and verified token claims to the
// request context.
func WithIdentity(r *http.Request, user *models.User, claims *models.TokenClaims) *http.Request {
	ctx := context.WithValue(r.Context(), identityKey, user)
	ctx = context.WithValue(ctx, claimsKey, claims)
	return r.WithContext(ctx)
}

// GetIdentity retrieves the resolved user from context, or nil when the
// request never passed authentication.
func GetIdentity(r *http.Request) *models.User {
	user, _ := r.Context().Value(identityKey).(*models.User)
	return user
}

// GetClaims retrieves the verified token claims from context.
func GetClaims(r *http.Request) *models.TokenClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.TokenClaims)
	return claims
}
