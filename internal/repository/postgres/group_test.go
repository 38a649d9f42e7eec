package postgres

import (
	"context"
	"errors"
	"testing"

	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// failingTx satisfies pgx.Tx through embedding and fails every Exec with a
// fixed error, letting tests drive the repository's error mapping without a
// live database.
type failingTx struct {
	pgx.Tx
	execErr error
}

func (t failingTx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, t.execErr
}

func TestGroupRepository_Update_ErrorMapping(t *testing.T) {
	repo := &PostgresGroupRepository{tables: NewTableNames("test_")}
	group := &models.Group{
		UUID:      "b57a0a46-0000-4000-8000-000000000001",
		Name:      "Family",
		Icon:      "gift",
		AdminUUID: "b57a0a46-0000-4000-8000-000000000099",
	}

	t.Run("dangling admin_uuid surfaces as bad request", func(t *testing.T) {
		ctx := repositories.SetTx(context.Background(), failingTx{
			execErr: &pgconn.PgError{Code: "23503", ConstraintName: "test_groups_admin_uuid_fkey"},
		})

		err := repo.Update(ctx, group)
		if !errors.Is(err, domain.ErrBadRequest) {
			t.Fatalf("expected bad request for foreign key violation, got %v", err)
		}
	})

	t.Run("other database errors stay opaque", func(t *testing.T) {
		ctx := repositories.SetTx(context.Background(), failingTx{
			execErr: &pgconn.PgError{Code: "53300"},
		})

		err := repo.Update(ctx, group)
		if err == nil || errors.Is(err, domain.ErrBadRequest) || errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected an unmapped error, got %v", err)
		}
	})
}
