package auth

import (
	"errors"
	"testing"
	"time"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

func testUser() *models.User {
	return &models.User{
		UUID:        "7f9c24e5-2f0b-4b1e-9c6a-111111111111",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DisplayName: "Ada",
		Email:       "ada@example.com",
		RoleUUID:    "7f9c24e5-2f0b-4b1e-9c6a-222222222222",
	}
}

func testRole() *models.Role {
	return &models.Role{
		UUID:        "7f9c24e5-2f0b-4b1e-9c6a-222222222222",
		Name:        "user",
		Permissions: []string{"group:read", "group:write"},
	}
}

func TestNewTokenCodec_EmptySecret(t *testing.T) {
	if _, err := NewTokenCodec(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	codec, err := NewTokenCodec("test-secret")
	if err != nil {
		t.Fatalf("NewTokenCodec: %v", err)
	}

	signed, err := codec.Issue(testUser(), testRole())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.GetUserUUID() != testUser().UUID {
		t.Errorf("expected user uuid %s, got %s", testUser().UUID, claims.GetUserUUID())
	}
	if claims.Data.Email != "ada@example.com" {
		t.Errorf("unexpected email in snapshot: %s", claims.Data.Email)
	}
	if !claims.HasPermission("group:write") {
		t.Error("expected group:write in permission snapshot")
	}
	if claims.HasPermission("user:write") {
		t.Error("did not expect user:write in permission snapshot")
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "user" {
		t.Errorf("unexpected roles: %v", claims.Roles)
	}

	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != TokenTTL {
		t.Errorf("expected ttl %v, got %v", TokenTTL, ttl)
	}
}

func TestTokenCodec_Issue_NilRole(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	_, err := codec.Issue(testUser(), nil)
	if err == nil {
		t.Fatal("expected error for nil role")
	}
	if !errors.Is(err, domain.ErrApplication) {
		t.Errorf("expected application error, got %v", err)
	}
}

func TestTokenCodec_Verify_Failures(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")

	expiredToken := func() string {
		claims := &models.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
			Data: *testUser(),
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign expired token: %v", err)
		}
		return signed
	}()

	otherCodec, _ := NewTokenCodec("other-secret")
	wrongSignature, err := otherCodec.Issue(testUser(), testRole())
	if err != nil {
		t.Fatalf("issue with other secret: %v", err)
	}

	noUserToken := func() string {
		claims := &models.TokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign empty token: %v", err)
		}
		return signed
	}()

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"expired", expiredToken, "jwt expired"},
		{"malformed", "not-a-jwt", "jwt malformed"},
		{"wrong signature", wrongSignature, "invalid signature"},
		{"missing user data", noUserToken, "token missing user data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Verify(tt.token)
			if err == nil {
				t.Fatal("expected verification failure")
			}

			var unauth *domain.UnauthorizedError
			if !errors.As(err, &unauth) {
				t.Fatalf("expected UnauthorizedError, got %T", err)
			}
			if unauth.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, unauth.Message)
			}
		})
	}
}

func TestFromHeader(t *testing.T) {
	codec, _ := NewTokenCodec("test-secret")
	signed, _ := codec.Issue(testUser(), testRole())

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr string
	}{
		{"missing header", "", "", "No authorization token was found"},
		{"wrong scheme", "Basic " + signed, "", "Format is Authorization: Bearer [token]"},
		{"no token", "Bearer", "", "Format is Authorization: Bearer [token]"},
		{"standard casing", "Bearer " + signed, signed, ""},
		{"lowercase scheme", "bearer " + signed, signed, ""},
		{"uppercase scheme", "BEARER " + signed, signed, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromHeader(tt.header)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if err.Error() != tt.wantErr {
					t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected raw token back, got %q", got)
			}
		})
	}
}
