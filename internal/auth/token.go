package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL bounds the lifetime of issued capability tokens.
const TokenTTL = 4 * 7 * 24 * time.Hour

const bearerScheme = "bearer"

// TokenCodec signs and verifies capability tokens. The signing secret is
// process-wide immutable configuration resolved once at startup; the codec
// itself is stateless and safe for concurrent use.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec over the given signing secret.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token signing secret cannot be empty")
	}
	return &TokenCodec{secret: []byte(secret)}, nil
}

// Issue signs a capability token embedding the user's public snapshot, the
// role name and the role's permission bundle. A nil role signals a data
// integrity bug in the identity store.
func (c *TokenCodec) Issue(user *models.User, role *models.Role) (string, error) {
	if role == nil {
		return "", domain.NewApplicationError("could not find role for generating token")
	}

	permissions := role.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	now := time.Now()
	claims := &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
		Data:        *user,
		Permissions: permissions,
		Roles:       []string{role.Name},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// FromHeader extracts the raw token from an Authorization header value.
// The scheme is matched case-insensitively.
func FromHeader(header string) (string, error) {
	if header == "" {
		return "", domain.NewUnauthorizedError("No authorization token was found")
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", domain.NewUnauthorizedError("Format is Authorization: Bearer [token]")
	}

	return parts[1], nil
}

// Verify validates signature and expiry and returns the embedded claims.
// The failure reason distinguishes expired, malformed and bad-signature
// tokens; it never includes the signing secret or parser internals.
func (c *TokenCodec) Verify(raw string) (*models.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &models.TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Pin HMAC to rule out algorithm confusion with asymmetric keys.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.NewUnauthorizedError("jwt expired")
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.NewUnauthorizedError("jwt malformed")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.NewUnauthorizedError("invalid signature")
		default:
			return nil, domain.NewUnauthorizedError("invalid token")
		}
	}

	claims, ok := parsed.Claims.(*models.TokenClaims)
	if !ok || !parsed.Valid {
		return nil, domain.NewUnauthorizedError("invalid token")
	}
	if claims.Data.UUID == "" {
		return nil, domain.NewUnauthorizedError("token missing user data")
	}

	return claims, nil
}
