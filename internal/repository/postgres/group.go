package postgres

import (
	"context"
	"fmt"
	"time"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGroupRepository implements the GroupRepository interface
type PostgresGroupRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(config *RepositoryConfig) repositories.GroupRepository {
	return &PostgresGroupRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const groupColumns = "uuid, name, icon, creator_uuid, admin_uuid, created_at, updated_at"

// Create inserts a group and enrolls the creator as a member. Callers run
// this inside a transaction so the two inserts land together.
func (r *PostgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	now := time.Now()
	group.UUID = uuid.NewString()
	group.CreatedAt = now
	group.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, name, icon, creator_uuid, admin_uuid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Groups)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		group.UUID,
		group.Name,
		group.Icon,
		group.CreatorUUID,
		group.AdminUUID,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	return r.AddMember(ctx, group.UUID, group.CreatorUUID)
}

// GetByUUID retrieves a group with the requested associations eager-loaded
func (r *PostgresGroupRepository) GetByUUID(ctx context.Context, id string, include []string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE uuid = $1
	`, groupColumns, r.tables.Groups)

	var group models.Group
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&group.UUID,
		&group.Name,
		&group.Icon,
		&group.CreatorUUID,
		&group.AdminUUID,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	if err := r.loadAssociations(ctx, &group, include); err != nil {
		return nil, err
	}

	return &group, nil
}

// List retrieves all groups, ordered by creation time
func (r *PostgresGroupRepository) List(ctx context.Context, include []string) ([]models.Group, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY created_at ASC
	`, groupColumns, r.tables.Groups)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		err := rows.Scan(
			&group.UUID,
			&group.Name,
			&group.Icon,
			&group.CreatorUUID,
			&group.AdminUUID,
			&group.CreatedAt,
			&group.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	for i := range groups {
		if err := r.loadAssociations(ctx, &groups[i], include); err != nil {
			return nil, err
		}
	}

	return groups, nil
}

// Update persists name, icon and admin changes
func (r *PostgresGroupRepository) Update(ctx context.Context, group *models.Group) error {
	group.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $2, icon = $3, admin_uuid = $4, updated_at = $5
		WHERE uuid = $1
	`, r.tables.Groups)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		group.UUID,
		group.Name,
		group.Icon,
		group.AdminUUID,
		group.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("admin %s is not a known user: %w", group.AdminUUID, domain.ErrBadRequest)
		}
		return fmt.Errorf("update group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", group.UUID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a group; membership rows, invitations and wishlist items
// cascade via foreign keys
func (r *PostgresGroupRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE uuid = $1`, r.tables.Groups)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AddMember inserts a membership row. Idempotent.
func (r *PostgresGroupRepository) AddMember(ctx context.Context, groupUUID, userUUID string) error {
	now := time.Now()
	query := fmt.Sprintf(`
		INSERT INTO %s (group_uuid, user_uuid, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (group_uuid, user_uuid) DO NOTHING
	`, r.tables.GroupUsers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, groupUUID, userUUID, now, now); err != nil {
		return fmt.Errorf("add group member: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row
func (r *PostgresGroupRepository) RemoveMember(ctx context.Context, groupUUID, userUUID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE group_uuid = $1 AND user_uuid = $2
	`, r.tables.GroupUsers)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, groupUUID, userUUID); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	return nil
}

// IsMember reports whether a membership row exists
func (r *PostgresGroupRepository) IsMember(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE group_uuid = $1 AND user_uuid = $2
		)
	`, r.tables.GroupUsers)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, groupUUID, userUUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group membership: %w", err)
	}
	return exists, nil
}

// IsAdmin reports whether a live group row names the user as admin
func (r *PostgresGroupRepository) IsAdmin(ctx context.Context, groupUUID, userUUID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE uuid = $1 AND admin_uuid = $2
		)
	`, r.tables.Groups)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, groupUUID, userUUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check group admin: %w", err)
	}
	return exists, nil
}

func (r *PostgresGroupRepository) loadAssociations(ctx context.Context, group *models.Group, include []string) error {
	for _, name := range include {
		var err error
		switch name {
		case "admin":
			group.Admin, err = r.loadUser(ctx, group.AdminUUID)
		case "creator":
			group.Creator, err = r.loadUser(ctx, group.CreatorUUID)
		case "users":
			group.Users, err = r.loadMembers(ctx, group.UUID)
		case "wishLists":
			group.WishLists, err = r.loadWishLists(ctx, group.UUID)
		case "invitations":
			group.Invitations, err = r.loadInvitations(ctx, group.UUID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresGroupRepository) loadUser(ctx context.Context, id string) (*models.User, error) {
	return loadUserByUUID(ctx, GetExecutor(ctx, r.pool), r.tables, id)
}

func (r *PostgresGroupRepository) loadMembers(ctx context.Context, groupUUID string) ([]models.User, error) {
	query := fmt.Sprintf(`
		SELECT u.uuid, u.first_name, u.last_name, u.display_name, u.email, u.role_uuid, u.created_at, u.updated_at
		FROM %s u
		JOIN %s gu ON gu.user_uuid = u.uuid
		WHERE gu.group_uuid = $1
		ORDER BY gu.created_at ASC
	`, r.tables.Users, r.tables.GroupUsers)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, groupUUID)
	if err != nil {
		return nil, fmt.Errorf("load group members: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(
			&user.UUID,
			&user.FirstName,
			&user.LastName,
			&user.DisplayName,
			&user.Email,
			&user.RoleUUID,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group member: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *PostgresGroupRepository) loadWishLists(ctx context.Context, groupUUID string) ([]models.WishList, error) {
	query := fmt.Sprintf(`
		SELECT uuid, group_uuid, creator_uuid, rank, description, created_at, updated_at
		FROM %s
		WHERE group_uuid = $1
		ORDER BY rank ASC
	`, r.tables.WishLists)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, groupUUID)
	if err != nil {
		return nil, fmt.Errorf("load group wishlists: %w", err)
	}
	defer rows.Close()

	var items []models.WishList
	for rows.Next() {
		var item models.WishList
		err := rows.Scan(
			&item.UUID,
			&item.GroupUUID,
			&item.CreatorUUID,
			&item.Rank,
			&item.Description,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group wishlist: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresGroupRepository) loadInvitations(ctx context.Context, groupUUID string) ([]models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT uuid, group_uuid, creator_uuid, email, times_sent, sent_at, created_at, updated_at
		FROM %s
		WHERE group_uuid = $1
		ORDER BY created_at ASC
	`, r.tables.Invitations)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, groupUUID)
	if err != nil {
		return nil, fmt.Errorf("load group invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		err := rows.Scan(
			&inv.UUID,
			&inv.GroupUUID,
			&inv.CreatorUUID,
			&inv.Email,
			&inv.TimesSent,
			&inv.SentAt,
			&inv.CreatedAt,
			&inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan group invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	return invitations, rows.Err()
}
