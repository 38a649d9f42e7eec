package repositories

import (
	"context"

	"giftlist/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user and fills in generated id and timestamps
	Create(ctx context.Context, user *models.User) error

	// GetByUUID retrieves a user by primary key
	GetByUUID(ctx context.Context, uuid string) (*models.User, error)

	// GetByEmail retrieves a user by their unique email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleRepository defines data access operations for roles. Roles are seeded
// once at initialization and only read afterwards.
type RoleRepository interface {
	// Upsert inserts a role or refreshes its permission bundle by name
	Upsert(ctx context.Context, role *models.Role) error

	// GetByUUID retrieves a role by primary key
	GetByUUID(ctx context.Context, uuid string) (*models.Role, error)

	// GetByName retrieves a role by its unique name
	GetByName(ctx context.Context, name string) (*models.Role, error)
}
