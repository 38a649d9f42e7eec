package service

import (
	"context"
	"log/slog"
	"strings"

	"giftlist/internal/config"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
	"giftlist/internal/httputil"
	"giftlist/internal/policy"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateGroupRequest carries the caller-supplied fields for a new group.
// Creator and admin are stamped from the authenticated caller, never taken
// from the body.
type CreateGroupRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// UpdateGroupRequest carries a partial or full group update. The creator
// reference and server-assigned fields have no counterpart here, which is
// what silently drops them from hostile payloads.
type UpdateGroupRequest struct {
	Name      httputil.OptionalString `json:"name"`
	Icon      httputil.OptionalString `json:"icon"`
	AdminUUID httputil.OptionalString `json:"adminUuid"`
}

// GroupService implements group operations behind the capability gate.
type GroupService struct {
	groups    repositories.GroupRepository
	scope     *policy.GroupScope
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewGroupService creates a new group service
func NewGroupService(
	groups repositories.GroupRepository,
	scope *policy.GroupScope,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) *GroupService {
	return &GroupService{
		groups:    groups,
		scope:     scope,
		txManager: txManager,
		logger:    logger,
	}
}

// Create creates a group and enrolls the creator as its first member. The
// caller becomes both creator and admin.
func (s *GroupService) Create(ctx context.Context, caller *models.User, req *CreateGroupRequest) (*models.Group, error) {
	if err := asBadRequest(s.validateCreate(req)); err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:        strings.TrimSpace(req.Name),
		Icon:        req.Icon,
		CreatorUUID: caller.UUID,
		AdminUUID:   caller.UUID,
	}

	// Group row and creator membership land atomically.
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.groups.Create(txCtx, group)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("group created",
		"uuid", group.UUID,
		"creator", caller.UUID,
	)

	return group, nil
}

// List retrieves all groups with the requested associations.
func (s *GroupService) List(ctx context.Context, include string) ([]models.Group, error) {
	groups, err := s.groups.List(ctx, parseInclude(include, groupIncludes))
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// Get retrieves one group. Membership gates the read; non-members get the
// hiding not-found.
func (s *GroupService) Get(ctx context.Context, caller *models.User, id, include string) (*models.Group, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeMemberRead(ctx, caller.UUID, id); err != nil {
		return nil, err
	}
	return s.groups.GetByUUID(ctx, id, parseInclude(include, groupIncludes))
}

// Update applies a full or partial group update. Admin only: a plain member
// gets a 401, a non-member the hiding 404.
func (s *GroupService) Update(ctx context.Context, caller *models.User, id string, req *UpdateGroupRequest, full bool) (*models.Group, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeAdminWrite(ctx, caller.UUID, id); err != nil {
		return nil, err
	}

	if full {
		var missing []string
		if !req.Name.Present || req.Name.Value == nil {
			missing = append(missing, "name")
		}
		if !req.Icon.Present || req.Icon.Value == nil {
			missing = append(missing, "icon")
		}
		if !req.AdminUUID.Present || req.AdminUUID.Value == nil {
			missing = append(missing, "adminUuid")
		}
		if len(missing) > 0 {
			return nil, missingFields(missing...)
		}
	}

	group, err := s.groups.GetByUUID(ctx, id, nil)
	if err != nil {
		return nil, err
	}

	if req.Name.Present && req.Name.Value != nil {
		group.Name = strings.TrimSpace(*req.Name.Value)
	}
	if req.Icon.Present && req.Icon.Value != nil {
		group.Icon = *req.Icon.Value
	}
	if req.AdminUUID.Present && req.AdminUUID.Value != nil {
		group.AdminUUID = *req.AdminUUID.Value
	}

	if err := asBadRequest(s.validateGroup(group)); err != nil {
		return nil, err
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("group updated",
		"uuid", group.UUID,
		"by", caller.UUID,
	)

	return group, nil
}

// Delete removes a group and, via schema cascade, everything scoped to it.
func (s *GroupService) Delete(ctx context.Context, caller *models.User, id string) error {
	if err := validateResourceUUID(id); err != nil {
		return err
	}
	if err := s.scope.AuthorizeAdminWrite(ctx, caller.UUID, id); err != nil {
		return err
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("group deleted",
		"uuid", id,
		"by", caller.UUID,
	)

	return nil
}

func (s *GroupService) validateCreate(req *CreateGroupRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, config.MaxGroupNameLength)),
		validation.Field(&req.Icon, validation.Required, validation.Length(1, config.MaxIconLength)),
	)
}

func (s *GroupService) validateGroup(group *models.Group) error {
	return validation.ValidateStruct(group,
		validation.Field(&group.Name, validation.Required, validation.Length(1, config.MaxGroupNameLength)),
		validation.Field(&group.Icon, validation.Required, validation.Length(1, config.MaxIconLength)),
		validation.Field(&group.AdminUUID, validation.Required, is.UUIDv4),
	)
}
