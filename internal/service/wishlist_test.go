package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"giftlist/internal/domain"
)

func newWishListService(groups *mockGroupRepo, items *mockWishListRepo) *WishListService {
	return NewWishListService(items, scopeOver(groups), discardLogger())
}

func seedItem(t *testing.T, svc *WishListService) string {
	t.Helper()
	item, err := svc.Create(context.Background(), memberUser(), &CreateWishListRequest{
		GroupUUID:   groupID,
		Rank:        1,
		Description: "wool socks",
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item.UUID
}

func TestWishListService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("member creates", func(t *testing.T) {
		groups := newMockGroupRepo()
		groups.seed()
		svc := newWishListService(groups, newMockWishListRepo())

		item, err := svc.Create(ctx, memberUser(), &CreateWishListRequest{
			GroupUUID:   groupID,
			Rank:        3,
			Description: "wool socks",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if item.CreatorUUID != memberID {
			t.Errorf("creator not stamped from caller: %s", item.CreatorUUID)
		}
	})

	t.Run("non-member gets bad request", func(t *testing.T) {
		groups := newMockGroupRepo()
		groups.seed()
		svc := newWishListService(groups, newMockWishListRepo())

		_, err := svc.Create(ctx, outsiderUser(), &CreateWishListRequest{
			GroupUUID:   groupID,
			Rank:        1,
			Description: "x",
		})
		var badReq *domain.BadRequestError
		if !errors.As(err, &badReq) {
			t.Fatalf("expected BadRequestError, got %v", err)
		}
	})

	t.Run("rank and description bounds", func(t *testing.T) {
		groups := newMockGroupRepo()
		groups.seed()
		svc := newWishListService(groups, newMockWishListRepo())

		for _, tt := range []struct {
			name string
			req  CreateWishListRequest
		}{
			{"rank zero", CreateWishListRequest{GroupUUID: groupID, Rank: 0, Description: "x"}},
			{"rank too high", CreateWishListRequest{GroupUUID: groupID, Rank: 256, Description: "x"}},
			{"description too long", CreateWishListRequest{GroupUUID: groupID, Rank: 1, Description: strings.Repeat("x", 513)}},
		} {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := svc.Create(ctx, memberUser(), &tt.req); !errors.Is(err, domain.ErrBadRequest) {
					t.Errorf("expected bad request, got %v", err)
				}
			})
		}
	})
}

func TestWishListService_Get(t *testing.T) {
	ctx := context.Background()
	groups := newMockGroupRepo()
	groups.seed()
	svc := newWishListService(groups, newMockWishListRepo())
	id := seedItem(t, svc)

	t.Run("fellow member reads", func(t *testing.T) {
		item, err := svc.Get(ctx, adminUser(), id, "")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if item.Description != "wool socks" {
			t.Errorf("unexpected item: %q", item.Description)
		}
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		if _, err := svc.Get(ctx, outsiderUser(), id, ""); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not-found, got %v", err)
		}
	})
}

func TestWishListService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*WishListService, string) {
		t.Helper()
		groups := newMockGroupRepo()
		groups.seed()
		svc := newWishListService(groups, newMockWishListRepo())
		return svc, seedItem(t, svc)
	}

	t.Run("creator patches", func(t *testing.T) {
		svc, id := seed(t)
		item, err := svc.Update(ctx, memberUser(), id, &UpdateWishListRequest{Rank: optInt(5)}, false)
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if item.Rank != 5 {
			t.Errorf("rank not applied: %d", item.Rank)
		}
		if item.Description != "wool socks" {
			t.Errorf("description should be untouched: %q", item.Description)
		}
	})

	t.Run("fellow member gets unauthorized", func(t *testing.T) {
		svc, id := seed(t)
		_, err := svc.Update(ctx, adminUser(), id, &UpdateWishListRequest{Rank: optInt(5)}, false)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for non-creator member, got %v", err)
		}
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		svc, id := seed(t)
		_, err := svc.Update(ctx, outsiderUser(), id, &UpdateWishListRequest{Rank: optInt(5)}, false)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not-found, got %v", err)
		}
	})

	t.Run("full replace requires rank and description", func(t *testing.T) {
		svc, id := seed(t)
		_, err := svc.Update(ctx, memberUser(), id, &UpdateWishListRequest{Rank: optInt(5)}, true)
		var badReq *domain.BadRequestError
		if !errors.As(err, &badReq) {
			t.Fatalf("expected BadRequestError, got %v", err)
		}
		if len(badReq.Errors) != 1 || badReq.Errors[0].Message != "description cannot be null" {
			t.Errorf("unexpected field errors: %v", badReq.Errors)
		}
	})
}

func TestWishListService_Delete(t *testing.T) {
	ctx := context.Background()
	groups := newMockGroupRepo()
	groups.seed()
	items := newMockWishListRepo()
	svc := newWishListService(groups, items)
	id := seedItem(t, svc)

	if err := svc.Delete(ctx, adminUser(), id); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for non-creator, got %v", err)
	}
	if err := svc.Delete(ctx, memberUser(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(items.deleted) != 1 {
		t.Errorf("item not deleted: %v", items.deleted)
	}
}

func TestWishListService_List(t *testing.T) {
	ctx := context.Background()
	groups := newMockGroupRepo()
	groups.seed()
	svc := newWishListService(groups, newMockWishListRepo())
	seedItem(t, svc)

	t.Run("member lists", func(t *testing.T) {
		list, err := svc.List(ctx, adminUser(), groupID, "")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(list) != 1 {
			t.Errorf("expected 1 item, got %d", len(list))
		}
	})

	t.Run("malformed groupUuid is a bad request", func(t *testing.T) {
		_, err := svc.List(ctx, adminUser(), "nope", "")
		if !errors.Is(err, domain.ErrBadRequest) {
			t.Fatalf("expected bad request, got %v", err)
		}
	})
}
