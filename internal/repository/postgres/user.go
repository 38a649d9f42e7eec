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

// PostgresUserRepository implements the UserRepository interface
type PostgresUserRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewUserRepository creates a new user repository
func NewUserRepository(config *RepositoryConfig) repositories.UserRepository {
	return &PostgresUserRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.UUID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, first_name, last_name, display_name, email, role_uuid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Users)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		user.UUID,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Email,
		user.RoleUUID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, domain.ErrBadRequest)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByUUID retrieves a user by primary key
func (r *PostgresUserRepository) GetByUUID(ctx context.Context, id string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT uuid, first_name, last_name, display_name, email, role_uuid, created_at, updated_at
		FROM %s
		WHERE uuid = $1
	`, r.tables.Users)

	return r.getOne(ctx, query, id)
}

// GetByEmail retrieves a user by their unique email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT uuid, first_name, last_name, display_name, email, role_uuid, created_at, updated_at
		FROM %s
		WHERE email = $1
	`, r.tables.Users)

	return r.getOne(ctx, query, email)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
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
			return nil, fmt.Errorf("user: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}
