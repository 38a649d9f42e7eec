package policy

import (
	"context"
	"errors"
	"testing"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
)

// mockGroupRepo answers membership and admin checks from fixed sets.
type mockGroupRepo struct {
	admins  map[string]string   // group uuid -> admin uuid
	members map[string][]string // group uuid -> member uuids
	failing bool
}

func (m *mockGroupRepo) Create(ctx context.Context, group *models.Group) error { return nil }
func (m *mockGroupRepo) GetByUUID(ctx context.Context, uuid string, include []string) (*models.Group, error) {
	return nil, domain.ErrNotFound
}
func (m *mockGroupRepo) List(ctx context.Context, include []string) ([]models.Group, error) {
	return nil, nil
}
func (m *mockGroupRepo) Update(ctx context.Context, group *models.Group) error { return nil }
func (m *mockGroupRepo) Delete(ctx context.Context, uuid string) error         { return nil }
func (m *mockGroupRepo) AddMember(ctx context.Context, groupUUID, userUUID string) error {
	return nil
}
func (m *mockGroupRepo) RemoveMember(ctx context.Context, groupUUID, userUUID string) error {
	return nil
}

func (m *mockGroupRepo) IsMember(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	if m.failing {
		return false, errors.New("connection reset")
	}
	for _, member := range m.members[groupUUID] {
		if member == userUUID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupRepo) IsAdmin(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	if m.failing {
		return false, errors.New("connection reset")
	}
	return m.admins[groupUUID] == userUUID, nil
}

const (
	groupID   = "b57a0a46-0000-4000-8000-000000000001"
	adminID   = "b57a0a46-0000-4000-8000-000000000002"
	memberID  = "b57a0a46-0000-4000-8000-000000000003"
	outsider  = "b57a0a46-0000-4000-8000-000000000004"
	creatorID = "b57a0a46-0000-4000-8000-000000000005"
)

func testScope() *GroupScope {
	return NewGroupScope(&mockGroupRepo{
		admins:  map[string]string{groupID: adminID},
		members: map[string][]string{groupID: {adminID, memberID, creatorID}},
	})
}

func TestGroupScope_AuthorizeMemberRead(t *testing.T) {
	ctx := context.Background()
	scope := testScope()

	t.Run("member reads", func(t *testing.T) {
		if err := scope.AuthorizeMemberRead(ctx, memberID, groupID); err != nil {
			t.Fatalf("expected member read allowed, got %v", err)
		}
	})

	t.Run("non-member gets not found", func(t *testing.T) {
		err := scope.AuthorizeMemberRead(ctx, outsider, groupID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not-found for non-member, got %v", err)
		}
	})

	t.Run("nonexistent group looks identical", func(t *testing.T) {
		missing := "b57a0a46-0000-4000-8000-0000000000ff"
		existsErr := scope.AuthorizeMemberRead(ctx, outsider, groupID)
		missingErr := scope.AuthorizeMemberRead(ctx, outsider, missing)
		if existsErr.Error() != missingErr.Error() {
			t.Errorf("denial leaks existence: %q vs %q", existsErr, missingErr)
		}
	})

	t.Run("store failure fails closed", func(t *testing.T) {
		broken := NewGroupScope(&mockGroupRepo{failing: true})
		if err := broken.AuthorizeMemberRead(ctx, memberID, groupID); err == nil {
			t.Fatal("expected error when membership check fails")
		}
	})
}

func TestGroupScope_AuthorizeAdminWrite(t *testing.T) {
	ctx := context.Background()
	scope := testScope()

	t.Run("admin writes", func(t *testing.T) {
		if err := scope.AuthorizeAdminWrite(ctx, adminID, groupID); err != nil {
			t.Fatalf("expected admin write allowed, got %v", err)
		}
	})

	t.Run("member gets unauthorized", func(t *testing.T) {
		err := scope.AuthorizeAdminWrite(ctx, memberID, groupID)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for plain member, got %v", err)
		}
	})

	t.Run("non-member gets not found", func(t *testing.T) {
		err := scope.AuthorizeAdminWrite(ctx, outsider, groupID)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not-found for non-member, got %v", err)
		}
	})
}

func TestGroupScope_AuthorizeCreatorWrite(t *testing.T) {
	ctx := context.Background()
	scope := testScope()
	item := &models.WishList{
		UUID:        "b57a0a46-0000-4000-8000-000000000010",
		GroupUUID:   groupID,
		CreatorUUID: creatorID,
	}

	t.Run("creator mutates", func(t *testing.T) {
		err := scope.AuthorizeCreatorWrite(ctx, &models.User{UUID: creatorID}, item)
		if err != nil {
			t.Fatalf("expected creator write allowed, got %v", err)
		}
	})

	t.Run("fellow member gets unauthorized", func(t *testing.T) {
		err := scope.AuthorizeCreatorWrite(ctx, &models.User{UUID: memberID}, item)
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected unauthorized for fellow member, got %v", err)
		}
	})

	t.Run("outsider gets not found", func(t *testing.T) {
		err := scope.AuthorizeCreatorWrite(ctx, &models.User{UUID: outsider}, item)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected not-found for outsider, got %v", err)
		}
	})
}

func TestIsCreator(t *testing.T) {
	item := &models.WishList{CreatorUUID: creatorID}
	if !IsCreator(&models.User{UUID: creatorID}, item) {
		t.Error("expected creator match")
	}
	if IsCreator(&models.User{UUID: memberID}, item) {
		t.Error("expected non-creator mismatch")
	}
}
