package service

import (
	"context"
	"log/slog"

	"giftlist/internal/config"
	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
	"giftlist/internal/httputil"
	"giftlist/internal/policy"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateWishListRequest carries the caller-supplied fields for a new
// wishlist item. The creator is stamped from the authenticated caller.
type CreateWishListRequest struct {
	GroupUUID   string `json:"groupUuid"`
	Rank        int    `json:"rank"`
	Description string `json:"description"`
}

// UpdateWishListRequest carries a wishlist item update. Group and creator
// bindings are fixed at creation and have no counterpart here.
type UpdateWishListRequest struct {
	Rank        httputil.OptionalInt    `json:"rank"`
	Description httputil.OptionalString `json:"description"`
}

// WishListService implements wishlist item operations. Any member of the
// owning group may read items; mutation is reserved for the item's creator.
type WishListService struct {
	wishLists repositories.WishListRepository
	scope     *policy.GroupScope
	logger    *slog.Logger
}

// NewWishListService creates a new wishlist service
func NewWishListService(
	wishLists repositories.WishListRepository,
	scope *policy.GroupScope,
	logger *slog.Logger,
) *WishListService {
	return &WishListService{
		wishLists: wishLists,
		scope:     scope,
		logger:    logger,
	}
}

// Create adds an item to a group's wishlist. The caller must already be a
// member of the group; targeting a group the caller does not belong to is
// rejected as a bad request rather than hidden, because the group id came
// from the caller's own body.
func (s *WishListService) Create(ctx context.Context, caller *models.User, req *CreateWishListRequest) (*models.WishList, error) {
	if err := asBadRequest(s.validateCreate(req)); err != nil {
		return nil, err
	}

	isMember, err := s.scope.IsMember(ctx, caller.UUID, req.GroupUUID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, domain.NewBadRequestError("Validation error", domain.FieldError{
			Property: "groupUuid",
			Message:  "user is not a member of this group",
		})
	}

	item := &models.WishList{
		GroupUUID:   req.GroupUUID,
		CreatorUUID: caller.UUID,
		Rank:        req.Rank,
		Description: req.Description,
	}

	if err := s.wishLists.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("wishlist item created",
		"uuid", item.UUID,
		"group", item.GroupUUID,
		"by", caller.UUID,
	)

	return item, nil
}

// List retrieves a group's wishlist items ordered by rank. Membership gates
// the read.
func (s *WishListService) List(ctx context.Context, caller *models.User, groupUUID, include string) ([]models.WishList, error) {
	if err := requireGroupParam(groupUUID); err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeMemberRead(ctx, caller.UUID, groupUUID); err != nil {
		return nil, err
	}

	items, err := s.wishLists.ListByGroup(ctx, groupUUID, parseInclude(include, wishListIncludes))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.WishList{}
	}
	return items, nil
}

// Get retrieves one wishlist item; member-of-group or the hiding not-found.
func (s *WishListService) Get(ctx context.Context, caller *models.User, id, include string) (*models.WishList, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}

	item, err := s.wishLists.GetByUUID(ctx, id, parseInclude(include, wishListIncludes))
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeMemberRead(ctx, caller.UUID, item.GroupUUID); err != nil {
		return nil, err
	}

	return item, nil
}

// Update applies a full or partial item update. Creator only: a fellow
// member gets a 401, an outsider the hiding 404.
func (s *WishListService) Update(ctx context.Context, caller *models.User, id string, req *UpdateWishListRequest, full bool) (*models.WishList, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}

	item, err := s.wishLists.GetByUUID(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeCreatorWrite(ctx, caller, item); err != nil {
		return nil, err
	}

	if full {
		var missing []string
		if !req.Rank.Present || req.Rank.Value == nil {
			missing = append(missing, "rank")
		}
		if !req.Description.Present || req.Description.Value == nil {
			missing = append(missing, "description")
		}
		if len(missing) > 0 {
			return nil, missingFields(missing...)
		}
	}

	if req.Rank.Present && req.Rank.Value != nil {
		item.Rank = *req.Rank.Value
	}
	if req.Description.Present && req.Description.Value != nil {
		item.Description = *req.Description.Value
	}

	if err := asBadRequest(s.validateItem(item)); err != nil {
		return nil, err
	}

	if err := s.wishLists.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("wishlist item updated",
		"uuid", item.UUID,
		"by", caller.UUID,
	)

	return item, nil
}

// Delete removes a wishlist item. Creator only.
func (s *WishListService) Delete(ctx context.Context, caller *models.User, id string) error {
	if err := validateResourceUUID(id); err != nil {
		return err
	}

	item, err := s.wishLists.GetByUUID(ctx, id, nil)
	if err != nil {
		return err
	}
	if err := s.scope.AuthorizeCreatorWrite(ctx, caller, item); err != nil {
		return err
	}

	if err := s.wishLists.Delete(ctx, item.UUID); err != nil {
		return err
	}

	s.logger.Info("wishlist item deleted",
		"uuid", item.UUID,
		"by", caller.UUID,
	)

	return nil
}

func (s *WishListService) validateCreate(req *CreateWishListRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.GroupUUID, validation.Required, is.UUIDv4),
		validation.Field(&req.Rank, validation.Required,
			validation.Min(config.MinWishListRank), validation.Max(config.MaxWishListRank)),
		validation.Field(&req.Description, validation.Required,
			validation.Length(1, config.MaxWishListDescriptionLength)),
	)
}

func (s *WishListService) validateItem(item *models.WishList) error {
	return validation.ValidateStruct(item,
		validation.Field(&item.Rank, validation.Required,
			validation.Min(config.MinWishListRank), validation.Max(config.MaxWishListRank)),
		validation.Field(&item.Description, validation.Required,
			validation.Length(1, config.MaxWishListDescriptionLength)),
	)
}
