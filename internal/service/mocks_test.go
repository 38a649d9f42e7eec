package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
	"giftlist/internal/httputil"
	"giftlist/internal/policy"
)

// Fixed ids reused across the service tests.
const (
	groupID    = "b57a0a46-0000-4000-8000-000000000001"
	adminID    = "b57a0a46-0000-4000-8000-000000000002"
	memberID   = "b57a0a46-0000-4000-8000-000000000003"
	outsiderID = "b57a0a46-0000-4000-8000-000000000004"
)

func adminUser() *models.User    { return &models.User{UUID: adminID} }
func memberUser() *models.User   { return &models.User{UUID: memberID} }
func outsiderUser() *models.User { return &models.User{UUID: outsiderID} }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockGroupRepo is an in-memory GroupRepository with membership tracking.
type mockGroupRepo struct {
	groups  map[string]*models.Group
	members map[string][]string
	updated *models.Group
	deleted []string
	seq     int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{
		groups:  make(map[string]*models.Group),
		members: make(map[string][]string),
	}
}

// seed installs the canonical test group: adminID is admin and creator,
// memberID is a plain member.
func (m *mockGroupRepo) seed() {
	m.groups[groupID] = &models.Group{
		UUID:        groupID,
		Name:        "Family",
		Icon:        "gift",
		CreatorUUID: adminID,
		AdminUUID:   adminID,
	}
	m.members[groupID] = []string{adminID, memberID}
}

func (m *mockGroupRepo) Create(ctx context.Context, group *models.Group) error {
	m.seq++
	group.UUID = fmt.Sprintf("b57a0a46-0000-4000-8000-00000000%04d", 100+m.seq)
	group.CreatedAt = time.Now()
	group.UpdatedAt = group.CreatedAt
	m.groups[group.UUID] = group
	m.members[group.UUID] = append(m.members[group.UUID], group.CreatorUUID)
	return nil
}

func (m *mockGroupRepo) GetByUUID(ctx context.Context, uuid string, include []string) (*models.Group, error) {
	if group, ok := m.groups[uuid]; ok {
		copied := *group
		return &copied, nil
	}
	return nil, fmt.Errorf("group %s: %w", uuid, domain.ErrNotFound)
}

func (m *mockGroupRepo) List(ctx context.Context, include []string) ([]models.Group, error) {
	var out []models.Group
	for _, group := range m.groups {
		out = append(out, *group)
	}
	return out, nil
}

func (m *mockGroupRepo) Update(ctx context.Context, group *models.Group) error {
	if _, ok := m.groups[group.UUID]; !ok {
		return fmt.Errorf("group %s: %w", group.UUID, domain.ErrNotFound)
	}
	copied := *group
	m.groups[group.UUID] = &copied
	m.updated = &copied
	return nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := m.groups[uuid]; !ok {
		return fmt.Errorf("group %s: %w", uuid, domain.ErrNotFound)
	}
	delete(m.groups, uuid)
	m.deleted = append(m.deleted, uuid)
	return nil
}

func (m *mockGroupRepo) AddMember(ctx context.Context, groupUUID, userUUID string) error {
	m.members[groupUUID] = append(m.members[groupUUID], userUUID)
	return nil
}

func (m *mockGroupRepo) RemoveMember(ctx context.Context, groupUUID, userUUID string) error {
	kept := m.members[groupUUID][:0]
	for _, member := range m.members[groupUUID] {
		if member != userUUID {
			kept = append(kept, member)
		}
	}
	m.members[groupUUID] = kept
	return nil
}

func (m *mockGroupRepo) IsMember(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	for _, member := range m.members[groupUUID] {
		if member == userUUID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockGroupRepo) IsAdmin(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	group, ok := m.groups[groupUUID]
	return ok && group.AdminUUID == userUUID, nil
}

// mockInvitationRepo is an in-memory InvitationRepository.
type mockInvitationRepo struct {
	invitations map[string]*models.Invitation
	updated     *models.Invitation
	deleted     []string
	seq         int
}

func newMockInvitationRepo() *mockInvitationRepo {
	return &mockInvitationRepo{invitations: make(map[string]*models.Invitation)}
}

func (m *mockInvitationRepo) Create(ctx context.Context, invitation *models.Invitation) error {
	for _, existing := range m.invitations {
		if existing.Email == invitation.Email && existing.GroupUUID == invitation.GroupUUID {
			return fmt.Errorf("duplicate invitation: %w", domain.ErrBadRequest)
		}
	}
	m.seq++
	invitation.UUID = fmt.Sprintf("b57a0a46-0000-4000-8000-00000000%04d", 200+m.seq)
	invitation.CreatedAt = time.Now()
	invitation.UpdatedAt = invitation.CreatedAt
	copied := *invitation
	m.invitations[invitation.UUID] = &copied
	return nil
}

func (m *mockInvitationRepo) GetByUUID(ctx context.Context, uuid string, include []string) (*models.Invitation, error) {
	if invitation, ok := m.invitations[uuid]; ok {
		copied := *invitation
		return &copied, nil
	}
	return nil, fmt.Errorf("invitation %s: %w", uuid, domain.ErrNotFound)
}

func (m *mockInvitationRepo) GetByEmailAndGroup(ctx context.Context, email, groupUUID string) (*models.Invitation, error) {
	for _, invitation := range m.invitations {
		if invitation.Email == email && invitation.GroupUUID == groupUUID {
			copied := *invitation
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("invitation for %s: %w", email, domain.ErrNotFound)
}

func (m *mockInvitationRepo) ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, invitation := range m.invitations {
		if invitation.GroupUUID == groupUUID {
			out = append(out, *invitation)
		}
	}
	return out, nil
}

func (m *mockInvitationRepo) Update(ctx context.Context, invitation *models.Invitation) error {
	if _, ok := m.invitations[invitation.UUID]; !ok {
		return fmt.Errorf("invitation %s: %w", invitation.UUID, domain.ErrNotFound)
	}
	copied := *invitation
	m.invitations[invitation.UUID] = &copied
	m.updated = &copied
	return nil
}

func (m *mockInvitationRepo) MarkResent(ctx context.Context, uuid string) (*models.Invitation, error) {
	invitation, ok := m.invitations[uuid]
	if !ok {
		return nil, fmt.Errorf("invitation %s: %w", uuid, domain.ErrNotFound)
	}
	invitation.TimesSent++
	invitation.SentAt = time.Now()
	copied := *invitation
	return &copied, nil
}

func (m *mockInvitationRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := m.invitations[uuid]; !ok {
		return fmt.Errorf("invitation %s: %w", uuid, domain.ErrNotFound)
	}
	delete(m.invitations, uuid)
	m.deleted = append(m.deleted, uuid)
	return nil
}

// mockWishListRepo is an in-memory WishListRepository.
type mockWishListRepo struct {
	items   map[string]*models.WishList
	updated *models.WishList
	deleted []string
	seq     int
}

func newMockWishListRepo() *mockWishListRepo {
	return &mockWishListRepo{items: make(map[string]*models.WishList)}
}

func (m *mockWishListRepo) Create(ctx context.Context, item *models.WishList) error {
	m.seq++
	item.UUID = fmt.Sprintf("b57a0a46-0000-4000-8000-00000000%04d", 300+m.seq)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	copied := *item
	m.items[item.UUID] = &copied
	return nil
}

func (m *mockWishListRepo) GetByUUID(ctx context.Context, uuid string, include []string) (*models.WishList, error) {
	if item, ok := m.items[uuid]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, fmt.Errorf("wishlist item %s: %w", uuid, domain.ErrNotFound)
}

func (m *mockWishListRepo) ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.WishList, error) {
	var out []models.WishList
	for _, item := range m.items {
		if item.GroupUUID == groupUUID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockWishListRepo) Update(ctx context.Context, item *models.WishList) error {
	if _, ok := m.items[item.UUID]; !ok {
		return fmt.Errorf("wishlist item %s: %w", item.UUID, domain.ErrNotFound)
	}
	copied := *item
	m.items[item.UUID] = &copied
	m.updated = &copied
	return nil
}

func (m *mockWishListRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := m.items[uuid]; !ok {
		return fmt.Errorf("wishlist item %s: %w", uuid, domain.ErrNotFound)
	}
	delete(m.items, uuid)
	m.deleted = append(m.deleted, uuid)
	return nil
}

// mockTxManager runs the function directly; transactional atomicity is the
// real manager's concern, not the services'.
type mockTxManager struct {
	calls int
}

func (m *mockTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	m.calls++
	return fn(ctx)
}

func scopeOver(groups *mockGroupRepo) *policy.GroupScope {
	return policy.NewGroupScope(groups)
}

func optString(s string) httputil.OptionalString {
	return httputil.OptionalString{Present: true, Value: &s}
}

func optInt(n int) httputil.OptionalInt {
	return httputil.OptionalInt{Present: true, Value: &n}
}
