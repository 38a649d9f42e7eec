package repositories

import (
	"context"

	"giftlist/internal/domain/models"
)

// InvitationRepository defines data access operations for invitations
type InvitationRepository interface {
	// Create inserts an invitation. A (email, group) duplicate surfaces as
	// a conflict the service resolves by re-sending instead.
	Create(ctx context.Context, invitation *models.Invitation) error

	// GetByUUID retrieves an invitation with requested associations.
	GetByUUID(ctx context.Context, uuid string, include []string) (*models.Invitation, error)

	// GetByEmailAndGroup retrieves the outstanding invitation for an
	// (email, group) pair, if any.
	GetByEmailAndGroup(ctx context.Context, email, groupUUID string) (*models.Invitation, error)

	// ListByGroup retrieves all invitations for a group.
	ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.Invitation, error)

	// Update persists the mutable fields (email only; read-only fields are
	// filtered upstream).
	Update(ctx context.Context, invitation *models.Invitation) error

	// MarkResent bumps times_sent and sent_at for a re-send.
	MarkResent(ctx context.Context, uuid string) (*models.Invitation, error)

	// Delete removes an invitation.
	Delete(ctx context.Context, uuid string) error
}

// WishListRepository defines data access operations for wishlist items
type WishListRepository interface {
	// Create inserts a wishlist item.
	Create(ctx context.Context, item *models.WishList) error

	// GetByUUID retrieves an item with requested associations.
	GetByUUID(ctx context.Context, uuid string, include []string) (*models.WishList, error)

	// ListByGroup retrieves a group's wishlist ordered by rank.
	ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.WishList, error)

	// Update persists rank and description changes.
	Update(ctx context.Context, item *models.WishList) error

	// Delete removes an item.
	Delete(ctx context.Context, uuid string) error
}
