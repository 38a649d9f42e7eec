package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// ProviderVerifier verifies ID tokens issued by the federated identity
// provider and extracts a verified profile from them.
type ProviderVerifier interface {
	// VerifyIDToken validates a provider-issued ID token and returns the
	// profile it asserts.
	VerifyIDToken(tokenString string) (*models.ExternalProfile, error)
}

// providerClaims is the subset of OIDC ID token claims the resolver needs.
type providerClaims struct {
	jwt.RegisteredClaims
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Name       string `json:"name"`
}

// JWKSProviderVerifier implements ProviderVerifier using the provider's
// published JWKS. Keys are cached and refreshed by keyfunc based on HTTP
// cache headers.
type JWKSProviderVerifier struct {
	jwks     keyfunc.Keyfunc
	issuer   string
	audience string
	logger   *slog.Logger
}

// NewProviderVerifier creates a verifier over the provider's JWKS endpoint.
// Issuer and audience checks apply only when configured.
func NewProviderVerifier(jwksURL, issuer, audience string, logger *slog.Logger) (*JWKSProviderVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("provider JWKS URL cannot be empty")
	}

	ctx := context.Background()
	jwks, err := keyfunc.NewDefaultCtx(ctx, []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("create JWKS client: %w", err)
	}

	logger.Info("provider verifier initialized", "jwks_url", jwksURL)

	return &JWKSProviderVerifier{
		jwks:     jwks,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}, nil
}

// VerifyIDToken validates the token and returns the asserted profile.
// Failures map to BadRequestError: the caller presented an unusable
// provider credential, not a giftlist credential.
func (v *JWKSProviderVerifier) VerifyIDToken(tokenString string) (*models.ExternalProfile, error) {
	opts := []jwt.ParserOption{}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &providerClaims{}, v.jwks.Keyfunc, opts...)
	if err != nil {
		v.logger.Debug("provider token rejected", "error", err.Error())
		return nil, domain.NewBadRequestError("invalid provider token")
	}
	if !token.Valid {
		return nil, domain.NewBadRequestError("invalid provider token")
	}

	// Only asymmetric provider signatures are acceptable here.
	switch token.Method.Alg() {
	case "RS256", "ES256":
	default:
		v.logger.Warn("provider token uses unexpected algorithm", "algorithm", token.Method.Alg())
		return nil, domain.NewBadRequestError("invalid provider token")
	}

	claims, ok := token.Claims.(*providerClaims)
	if !ok {
		return nil, domain.NewBadRequestError("invalid provider token")
	}
	if claims.Email == "" {
		return nil, domain.NewBadRequestError("provider token missing email")
	}

	profile := &models.ExternalProfile{
		Email:       claims.Email,
		FirstName:   claims.GivenName,
		LastName:    claims.FamilyName,
		DisplayName: claims.Name,
	}
	if profile.DisplayName == "" {
		profile.DisplayName = strings.TrimSpace(claims.GivenName + " " + claims.FamilyName)
	}

	return profile, nil
}
