package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
	"giftlist/internal/roles"
)

// IdentityResolver maps verified credentials (a token payload or a federated
// profile) onto durable user records.
type IdentityResolver struct {
	users     repositories.UserRepository
	roleStore repositories.RoleRepository
	logger    *slog.Logger
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(
	users repositories.UserRepository,
	roleStore repositories.RoleRepository,
	logger *slog.Logger,
) *IdentityResolver {
	return &IdentityResolver{
		users:     users,
		roleStore: roleStore,
		logger:    logger,
	}
}

// ResolveOrCreate looks a user up by the verified profile's email, creating
// the user with the default role on first login. Idempotent on email.
func (r *IdentityResolver) ResolveOrCreate(ctx context.Context, profile *models.ExternalProfile) (*models.User, error) {
	user, err := r.users.GetByEmail(ctx, profile.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve user by email: %w", err)
	}

	defaultRole, err := r.roleStore.GetByName(ctx, roles.RoleUser)
	if err != nil {
		// Seed data is broken; this state should never happen.
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewApplicationError("default role missing from seed data")
		}
		return nil, fmt.Errorf("resolve default role: %w", err)
	}

	user = &models.User{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		RoleUUID:    defaultRole.UUID,
	}
	if err := r.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user on first login: %w", err)
	}

	r.logger.Info("user created on first login",
		"uuid", user.UUID,
		"email", user.Email,
	)

	return user, nil
}

// ResolveByToken loads the live user record behind a verified token payload.
// Fails closed when the identity no longer resolves, e.g. the user was
// deleted after the token was issued.
func (r *IdentityResolver) ResolveByToken(ctx context.Context, claims *models.TokenClaims) (*models.User, error) {
	user, err := r.users.GetByUUID(ctx, claims.GetUserUUID())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("Could not find user in token")
		}
		return nil, fmt.Errorf("resolve user by token: %w", err)
	}
	return user, nil
}

// RoleForUser loads the role referenced by a user record. A dangling role
// reference is a data integrity bug, not a client error.
func (r *IdentityResolver) RoleForUser(ctx context.Context, user *models.User) (*models.Role, error) {
	role, err := r.roleStore.GetByUUID(ctx, user.RoleUUID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewApplicationError("could not find role for generating token")
		}
		return nil, fmt.Errorf("resolve role for user: %w", err)
	}
	return role, nil
}
