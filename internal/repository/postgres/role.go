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

// PostgresRoleRepository implements the RoleRepository interface
type PostgresRoleRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(config *RepositoryConfig) repositories.RoleRepository {
	return &PostgresRoleRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Upsert inserts a role or refreshes its permission bundle by name.
// Used by seeding only; request handling never writes roles.
func (r *PostgresRoleRepository) Upsert(ctx context.Context, role *models.Role) error {
	now := time.Now()
	if role.UUID == "" {
		role.UUID = uuid.NewString()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, name, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET permissions = EXCLUDED.permissions, updated_at = EXCLUDED.updated_at
		RETURNING uuid, created_at
	`, r.tables.Roles)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		role.UUID,
		role.Name,
		role.Permissions,
		now,
		now,
	).Scan(&role.UUID, &role.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert role %s: %w", role.Name, err)
	}
	role.UpdatedAt = now

	return nil
}

// GetByUUID retrieves a role by primary key
func (r *PostgresRoleRepository) GetByUUID(ctx context.Context, id string) (*models.Role, error) {
	query := fmt.Sprintf(`
		SELECT uuid, name, permissions, created_at, updated_at
		FROM %s
		WHERE uuid = $1
	`, r.tables.Roles)

	return r.getOne(ctx, query, id)
}

// GetByName retrieves a role by its unique name
func (r *PostgresRoleRepository) GetByName(ctx context.Context, name string) (*models.Role, error) {
	query := fmt.Sprintf(`
		SELECT uuid, name, permissions, created_at, updated_at
		FROM %s
		WHERE name = $1
	`, r.tables.Roles)

	return r.getOne(ctx, query, name)
}

func (r *PostgresRoleRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Role, error) {
	var role models.Role
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&role.UUID,
		&role.Name,
		&role.Permissions,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("role: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get role: %w", err)
	}

	return &role, nil
}
