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

// PostgresWishListRepository implements the WishListRepository interface
type PostgresWishListRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewWishListRepository creates a new wishlist repository
func NewWishListRepository(config *RepositoryConfig) repositories.WishListRepository {
	return &PostgresWishListRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const wishListColumns = "uuid, group_uuid, creator_uuid, rank, description, created_at, updated_at"

// Create inserts a wishlist item
func (r *PostgresWishListRepository) Create(ctx context.Context, item *models.WishList) error {
	now := time.Now()
	item.UUID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, group_uuid, creator_uuid, rank, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.WishLists)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		item.UUID,
		item.GroupUUID,
		item.CreatorUUID,
		item.Rank,
		item.Description,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyError(err) {
			return fmt.Errorf("group %s: %w", item.GroupUUID, domain.ErrNotFound)
		}
		return fmt.Errorf("create wishlist item: %w", err)
	}

	return nil
}

// GetByUUID retrieves an item with requested associations
func (r *PostgresWishListRepository) GetByUUID(ctx context.Context, id string, include []string) (*models.WishList, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE uuid = $1
	`, wishListColumns, r.tables.WishLists)

	var item models.WishList
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(
		&item.UUID,
		&item.GroupUUID,
		&item.CreatorUUID,
		&item.Rank,
		&item.Description,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("wishlist item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get wishlist item: %w", err)
	}

	if err := r.loadAssociations(ctx, &item, include); err != nil {
		return nil, err
	}

	return &item, nil
}

// ListByGroup retrieves a group's wishlist ordered by rank
func (r *PostgresWishListRepository) ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.WishList, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE group_uuid = $1
		ORDER BY rank ASC
	`, wishListColumns, r.tables.WishLists)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, groupUUID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
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
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list wishlist items: %w", err)
	}

	for i := range items {
		if err := r.loadAssociations(ctx, &items[i], include); err != nil {
			return nil, err
		}
	}

	return items, nil
}

// Update persists rank and description changes
func (r *PostgresWishListRepository) Update(ctx context.Context, item *models.WishList) error {
	item.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET rank = $2, description = $3, updated_at = $4
		WHERE uuid = $1
	`, r.tables.WishLists)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		item.UUID,
		item.Rank,
		item.Description,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item %s: %w", item.UUID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes an item
func (r *PostgresWishListRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE uuid = $1`, r.tables.WishLists)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wishlist item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresWishListRepository) loadAssociations(ctx context.Context, item *models.WishList, include []string) error {
	for _, name := range include {
		switch name {
		case "group":
			group, err := loadGroupByUUID(ctx, GetExecutor(ctx, r.pool), r.tables, item.GroupUUID)
			if err != nil {
				return err
			}
			item.Group = group
		case "creator":
			creator, err := loadUserByUUID(ctx, GetExecutor(ctx, r.pool), r.tables, item.CreatorUUID)
			if err != nil {
				return err
			}
			item.Creator = creator
		}
	}
	return nil
}
