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

// PostgresInvitationRepository implements the InvitationRepository interface
type PostgresInvitationRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(config *RepositoryConfig) repositories.InvitationRepository {
	return &PostgresInvitationRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Invitation reads never select token or expires_at; the token is a
// write-once secret.
const invitationColumns = "uuid, group_uuid, creator_uuid, email, times_sent, sent_at, created_at, updated_at"

// Create inserts an invitation
func (r *PostgresInvitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	now := time.Now()
	invitation.UUID = uuid.NewString()
	invitation.CreatedAt = now
	invitation.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (uuid, group_uuid, creator_uuid, email, times_sent, sent_at, token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.tables.Invitations)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		invitation.UUID,
		invitation.GroupUUID,
		invitation.CreatorUUID,
		invitation.Email,
		invitation.TimesSent,
		invitation.SentAt,
		invitation.Token,
		invitation.ExpiresAt,
		invitation.CreatedAt,
		invitation.UpdatedAt,
	)
	if err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("invitation for %s in group %s already exists: %w",
				invitation.Email, invitation.GroupUUID, domain.ErrBadRequest)
		}
		if isForeignKeyError(err) {
			return fmt.Errorf("group %s: %w", invitation.GroupUUID, domain.ErrNotFound)
		}
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

// GetByUUID retrieves an invitation with requested associations
func (r *PostgresInvitationRepository) GetByUUID(ctx context.Context, id string, include []string) (*models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE uuid = $1
	`, invitationColumns, r.tables.Invitations)

	invitation, err := r.getOne(ctx, query, id)
	if err != nil {
		return nil, err
	}

	if err := r.loadAssociations(ctx, invitation, include); err != nil {
		return nil, err
	}

	return invitation, nil
}

// GetByEmailAndGroup retrieves the outstanding invitation for an
// (email, group) pair
func (r *PostgresInvitationRepository) GetByEmailAndGroup(ctx context.Context, email, groupUUID string) (*models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE email = $1 AND group_uuid = $2
	`, invitationColumns, r.tables.Invitations)

	var invitation models.Invitation
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, email, groupUUID).Scan(
		&invitation.UUID,
		&invitation.GroupUUID,
		&invitation.CreatorUUID,
		&invitation.Email,
		&invitation.TimesSent,
		&invitation.SentAt,
		&invitation.CreatedAt,
		&invitation.UpdatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &invitation, nil
}

// ListByGroup retrieves all invitations for a group
func (r *PostgresInvitationRepository) ListByGroup(ctx context.Context, groupUUID string, include []string) ([]models.Invitation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE group_uuid = $1
		ORDER BY created_at ASC
	`, invitationColumns, r.tables.Invitations)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, groupUUID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
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
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	for i := range invitations {
		if err := r.loadAssociations(ctx, &invitations[i], include); err != nil {
			return nil, err
		}
	}

	return invitations, nil
}

// Update persists the mutable fields. Read-only fields are filtered before
// this point; only email can change.
func (r *PostgresInvitationRepository) Update(ctx context.Context, invitation *models.Invitation) error {
	invitation.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s
		SET email = $2, updated_at = $3
		WHERE uuid = $1
	`, r.tables.Invitations)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		invitation.UUID,
		invitation.Email,
		invitation.UpdatedAt,
	)
	if err != nil {
		if isDuplicateError(err) {
			return fmt.Errorf("invitation for %s in group %s already exists: %w",
				invitation.Email, invitation.GroupUUID, domain.ErrBadRequest)
		}
		return fmt.Errorf("update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invitation %s: %w", invitation.UUID, domain.ErrNotFound)
	}

	return nil
}

// MarkResent bumps times_sent and sent_at for a re-send
func (r *PostgresInvitationRepository) MarkResent(ctx context.Context, id string) (*models.Invitation, error) {
	now := time.Now()
	query := fmt.Sprintf(`
		UPDATE %s
		SET times_sent = times_sent + 1, sent_at = $2, updated_at = $2
		WHERE uuid = $1
		RETURNING %s
	`, r.tables.Invitations, invitationColumns)

	return r.getOne(ctx, query, id, now)
}

// Delete removes an invitation
func (r *PostgresInvitationRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE uuid = $1`, r.tables.Invitations)

	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invitation %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresInvitationRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.Invitation, error) {
	var invitation models.Invitation
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, args...).Scan(
		&invitation.UUID,
		&invitation.GroupUUID,
		&invitation.CreatorUUID,
		&invitation.Email,
		&invitation.TimesSent,
		&invitation.SentAt,
		&invitation.CreatedAt,
		&invitation.UpdatedAt,
	)
	if err != nil {
		if isNoRowsError(err) {
			return nil, fmt.Errorf("invitation: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	return &invitation, nil
}

func (r *PostgresInvitationRepository) loadAssociations(ctx context.Context, invitation *models.Invitation, include []string) error {
	for _, name := range include {
		switch name {
		case "group":
			group, err := r.loadGroup(ctx, invitation.GroupUUID)
			if err != nil {
				return err
			}
			invitation.Group = group
		case "creator":
			creator, err := loadUserByUUID(ctx, GetExecutor(ctx, r.pool), r.tables, invitation.CreatorUUID)
			if err != nil {
				return err
			}
			invitation.Creator = creator
		}
	}
	return nil
}

func (r *PostgresInvitationRepository) loadGroup(ctx context.Context, id string) (*models.Group, error) {
	return loadGroupByUUID(ctx, GetExecutor(ctx, r.pool), r.tables, id)
}
