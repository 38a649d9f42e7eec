package repositories

import (
	"context"

	"giftlist/internal/domain/models"
)

// GroupRepository defines data access operations for groups and their
// membership join rows.
type GroupRepository interface {
	// Create inserts a group and enrolls the creator as a member in the
	// same transaction.
	Create(ctx context.Context, group *models.Group) error

	// GetByUUID retrieves a group by primary key with the requested
	// associations eager-loaded.
	GetByUUID(ctx context.Context, uuid string, include []string) (*models.Group, error)

	// List retrieves all groups, ordered by creation time.
	List(ctx context.Context, include []string) ([]models.Group, error)

	// Update persists name, icon and admin changes.
	Update(ctx context.Context, group *models.Group) error

	// Delete removes a group. Membership rows, invitations and wishlist
	// items go with it via FK cascade.
	Delete(ctx context.Context, uuid string) error

	// AddMember inserts a membership row. Idempotent.
	AddMember(ctx context.Context, groupUUID, userUUID string) error

	// RemoveMember deletes a membership row.
	RemoveMember(ctx context.Context, groupUUID, userUUID string) error

	// IsMember reports whether a membership row exists.
	IsMember(ctx context.Context, groupUUID, userUUID string) (bool, error)

	// IsAdmin reports whether a live group row names the user as admin.
	IsAdmin(ctx context.Context, groupUUID, userUUID string) (bool, error)
}
