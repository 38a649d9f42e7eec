package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the capability token payload. It embeds a snapshot of the
// user's public attributes together with the resolved permission set and
// role names, so the capability gate never re-queries the identity store.
// The snapshot can go stale relative to the live role; resource-scope
// checks re-query live membership rows to compensate.
type TokenClaims struct {
	jwt.RegisteredClaims
	Data        User     `json:"data"`
	Permissions []string `json:"permissions"`
	Roles       []string `json:"roles"`
}

// GetUserUUID returns the durable identity id carried by the token.
func (c *TokenClaims) GetUserUUID() string {
	return c.Data.UUID
}

// HasPermission reports whether the token's permission snapshot contains
// the given permission string.
func (c *TokenClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// ExternalProfile is the verified identity a federated login yields. Only
// the fields needed to resolve or create a local user are carried.
type ExternalProfile struct {
	Email       string
	FirstName   string
	LastName    string
	DisplayName string
}
