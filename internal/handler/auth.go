package handler

import (
	"log/slog"
	"net/http"

	"giftlist/internal/auth"
	"giftlist/internal/domain/models"
	"giftlist/internal/httputil"
)

// loginResponse pairs a freshly issued capability token with the public user
// record it was issued for.
type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AuthHandler exchanges federated provider credentials for capability
// tokens.
type AuthHandler struct {
	verifier auth.ProviderVerifier
	resolver *auth.IdentityResolver
	codec    *auth.TokenCodec
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	verifier auth.ProviderVerifier,
	resolver *auth.IdentityResolver,
	codec *auth.TokenCodec,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		resolver: resolver,
		codec:    codec,
		logger:   logger,
	}
}

// FederatedLogin verifies a provider ID token from the Authorization header,
// resolves or creates the user behind its profile and issues a capability
// token for it. First login creates the user with the default role.
func (h *AuthHandler) FederatedLogin(w http.ResponseWriter, r *http.Request) {
	raw, err := auth.FromHeader(r.Header.Get("Authorization"))
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	profile, err := h.verifier.VerifyIDToken(raw)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	user, err := h.resolver.ResolveOrCreate(r.Context(), profile)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	role, err := h.resolver.RoleForUser(r.Context(), user)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	token, err := h.codec.Issue(user, role)
	if err != nil {
		respondError(w, r, err, h.logger)
		return
	}

	h.logger.Info("federated login",
		"uuid", user.UUID,
		"email", user.Email,
	)

	httputil.RespondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
