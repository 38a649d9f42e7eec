package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables for the configured prefix when they do
// not exist yet. Deletion cascades from groups to memberships, invitations
// and wishlist items by declaration, not by application code.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uuid UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL UNIQUE,
				permissions TEXT[] NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`, tables.Roles),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uuid UUID PRIMARY KEY,
				first_name VARCHAR(255) NOT NULL,
				last_name VARCHAR(255) NOT NULL,
				display_name VARCHAR(255) NOT NULL,
				email VARCHAR(255) NOT NULL UNIQUE,
				role_uuid UUID NOT NULL REFERENCES %s (uuid),
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`, tables.Users, tables.Roles),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uuid UUID PRIMARY KEY,
				name VARCHAR(48) NOT NULL,
				icon VARCHAR(255) NOT NULL,
				creator_uuid UUID NOT NULL REFERENCES %s (uuid),
				admin_uuid UUID NOT NULL REFERENCES %s (uuid),
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`, tables.Groups, tables.Users, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				group_uuid UUID NOT NULL REFERENCES %s (uuid) ON DELETE CASCADE,
				user_uuid UUID NOT NULL REFERENCES %s (uuid) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (group_uuid, user_uuid)
			)`, tables.GroupUsers, tables.Groups, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uuid UUID PRIMARY KEY,
				group_uuid UUID NOT NULL REFERENCES %s (uuid) ON DELETE CASCADE,
				creator_uuid UUID NOT NULL REFERENCES %s (uuid),
				email VARCHAR(255) NOT NULL,
				times_sent INTEGER NOT NULL CHECK (times_sent BETWEEN 1 AND 99),
				sent_at TIMESTAMPTZ NOT NULL,
				token VARCHAR(96) NOT NULL,
				expires_at TIMESTAMPTZ NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL,
				UNIQUE (email, group_uuid)
			)`, tables.Invitations, tables.Groups, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				uuid UUID PRIMARY KEY,
				group_uuid UUID NOT NULL REFERENCES %s (uuid) ON DELETE CASCADE,
				creator_uuid UUID NOT NULL REFERENCES %s (uuid),
				rank INTEGER NOT NULL,
				description TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`, tables.WishLists, tables.Groups, tables.Users),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}
