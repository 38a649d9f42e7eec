package postgres

import (
	"context"
	"fmt"

	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
)

// Shared association loaders. A missing association target yields nil, not
// an error: association rows can disappear between the parent read and the
// eager load, and readers treat an absent association as not requested.

func loadUserByUUID(ctx context.Context, db repositories.DBTX, tables *TableNames, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT uuid, first_name, last_name, display_name, email, role_uuid, created_at, updated_at
		FROM %s
		WHERE uuid = $1
	`, tables.Users)

	var user models.User
	err := db.QueryRow(ctx, query, id).Scan(
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
		if isNoRowsError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load user association: %w", err)
	}
	return &user, nil
}

func loadGroupByUUID(ctx context.Context, db repositories.DBTX, tables *TableNames, id string) (*models.Group, error) {
	query := fmt.Sprintf(`
		SELECT uuid, name, icon, creator_uuid, admin_uuid, created_at, updated_at
		FROM %s
		WHERE uuid = $1
	`, tables.Groups)

	var group models.Group
	err := db.QueryRow(ctx, query, id).Scan(
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
			return nil, nil
		}
		return nil, fmt.Errorf("load group association: %w", err)
	}
	return &group, nil
}
