// Package policy implements the resource-scope checks that run after the
// capability gate: per-resource ownership and membership rules evaluated
// against live rows, with existence-hiding denial semantics.
package policy

import (
	"context"
	"fmt"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
)

// GroupScope evaluates group-scoped access. All predicates are live point
// reads; the token's permission snapshot is never consulted here. The small
// race window between a scope check and the following mutation is an
// accepted trade-off given the access patterns.
type GroupScope struct {
	groups repositories.GroupRepository
}

// NewGroupScope creates a new group scope evaluator
func NewGroupScope(groups repositories.GroupRepository) *GroupScope {
	return &GroupScope{groups: groups}
}

// IsAdmin reports whether a live group row names the user as admin.
// (false, nil) means "not authorized"; a non-nil error means the check
// itself failed and the caller must fail closed.
func (s *GroupScope) IsAdmin(ctx context.Context, userUUID, groupUUID string) (bool, error) {
	ok, err := s.groups.IsAdmin(ctx, groupUUID, userUUID)
	if err != nil {
		return false, fmt.Errorf("group admin check: %w", err)
	}
	return ok, nil
}

// IsMember reports whether a membership row exists for the user and group.
func (s *GroupScope) IsMember(ctx context.Context, userUUID, groupUUID string) (bool, error) {
	ok, err := s.groups.IsMember(ctx, groupUUID, userUUID)
	if err != nil {
		return false, fmt.Errorf("group membership check: %w", err)
	}
	return ok, nil
}

// AuthorizeMemberRead gates read access to a group-scoped resource. A
// non-member gets the same not-found a nonexistent id would produce: a 401
// against a valid id would confirm the resource exists.
func (s *GroupScope) AuthorizeMemberRead(ctx context.Context, userUUID, groupUUID string) error {
	ok, err := s.IsMember(ctx, userUUID, groupUUID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewResourceNotFoundError("")
	}
	return nil
}

// AuthorizeAdminWrite gates management mutations. A member lacking admin
// gets a 401: membership already confirmed the resource's existence to
// them, so there is nothing left to hide. A non-member still gets the
// hiding 404.
func (s *GroupScope) AuthorizeAdminWrite(ctx context.Context, userUUID, groupUUID string) error {
	isAdmin, err := s.IsAdmin(ctx, userUUID, groupUUID)
	if err != nil {
		return err
	}
	if isAdmin {
		return nil
	}

	isMember, err := s.IsMember(ctx, userUUID, groupUUID)
	if err != nil {
		return err
	}
	if isMember {
		return domain.NewUnauthorizedError("")
	}
	return domain.NewResourceNotFoundError("")
}

// AuthorizeCreatorWrite gates wishlist mutations, which are narrower than
// membership: any member may read, only the creator may mutate.
func (s *GroupScope) AuthorizeCreatorWrite(ctx context.Context, user *models.User, item *models.WishList) error {
	if IsCreator(user, item) {
		return nil
	}

	isMember, err := s.IsMember(ctx, user.UUID, item.GroupUUID)
	if err != nil {
		return err
	}
	if isMember {
		return domain.NewUnauthorizedError("")
	}
	return domain.NewResourceNotFoundError("")
}

// IsCreator reports whether the user created the wishlist item. Pure; the
// loaded row already carries the creator.
func IsCreator(user *models.User, item *models.WishList) bool {
	return item.CreatorUUID == user.UUID
}
