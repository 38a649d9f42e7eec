package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"giftlist/internal/config"
	"giftlist/internal/domain"
	"giftlist/internal/domain/models"
	"giftlist/internal/domain/repositories"
	"giftlist/internal/httputil"
	"giftlist/internal/policy"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// invitationTTL bounds how long an invitation token stays redeemable.
const invitationTTL = 14 * 24 * time.Hour

// CreateInvitationRequest carries the caller-supplied invitation fields.
// Token, send bookkeeping and expiry are server-stamped.
type CreateInvitationRequest struct {
	GroupUUID string `json:"groupUuid"`
	Email     string `json:"email"`
}

// UpdateInvitationRequest carries an invitation update. Only email is
// mutable; the read-only fields (groupUuid, sentAt, timesSent, creatorUuid,
// token, expiresAt) are absent here and therefore dropped without effect.
type UpdateInvitationRequest struct {
	Email httputil.OptionalString `json:"email"`
}

// InvitationService implements invitation operations.
type InvitationService struct {
	invitations repositories.InvitationRepository
	scope       *policy.GroupScope
	logger      *slog.Logger
}

// NewInvitationService creates a new invitation service
func NewInvitationService(
	invitations repositories.InvitationRepository,
	scope *policy.GroupScope,
	logger *slog.Logger,
) *InvitationService {
	return &InvitationService{
		invitations: invitations,
		scope:       scope,
		logger:      logger,
	}
}

// Create invites an email address into a group. Admin of the target group
// only. Re-inviting an address that already holds an invitation re-sends it
// instead of violating the (email, group) uniqueness.
func (s *InvitationService) Create(ctx context.Context, caller *models.User, req *CreateInvitationRequest) (*models.Invitation, error) {
	if err := asBadRequest(s.validateCreate(req)); err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeAdminWrite(ctx, caller.UUID, req.GroupUUID); err != nil {
		return nil, err
	}

	existing, err := s.invitations.GetByEmailAndGroup(ctx, req.Email, req.GroupUUID)
	if err == nil {
		if existing.TimesSent >= config.MaxInvitationSends {
			return nil, domain.NewBadRequestError("Validation error", domain.FieldError{
				Property: "timesSent",
				Message:  fmt.Sprintf("timesSent must be no greater than %d", config.MaxInvitationSends),
			})
		}
		resent, err := s.invitations.MarkResent(ctx, existing.UUID)
		if err != nil {
			return nil, err
		}
		s.logger.Info("invitation re-sent",
			"uuid", resent.UUID,
			"group", resent.GroupUUID,
			"times_sent", resent.TimesSent,
		)
		return resent, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	invitation := &models.Invitation{
		GroupUUID:   req.GroupUUID,
		CreatorUUID: caller.UUID,
		Email:       req.Email,
		TimesSent:   1,
		SentAt:      now,
		Token:       token,
		ExpiresAt:   now.Add(invitationTTL),
	}

	if err := s.invitations.Create(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation created",
		"uuid", invitation.UUID,
		"group", invitation.GroupUUID,
		"by", caller.UUID,
	)

	return invitation, nil
}

// List retrieves a group's invitations. The group must be named explicitly;
// membership gates the read.
func (s *InvitationService) List(ctx context.Context, caller *models.User, groupUUID, include string) ([]models.Invitation, error) {
	if err := requireGroupParam(groupUUID); err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeMemberRead(ctx, caller.UUID, groupUUID); err != nil {
		return nil, err
	}

	invitations, err := s.invitations.ListByGroup(ctx, groupUUID, parseInclude(include, invitationIncludes))
	if err != nil {
		return nil, err
	}
	if invitations == nil {
		invitations = []models.Invitation{}
	}
	return invitations, nil
}

// Get retrieves one invitation; member-of-group or the hiding not-found.
func (s *InvitationService) Get(ctx context.Context, caller *models.User, id, include string) (*models.Invitation, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}

	invitation, err := s.invitations.GetByUUID(ctx, id, parseInclude(include, invitationIncludes))
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeMemberRead(ctx, caller.UUID, invitation.GroupUUID); err != nil {
		return nil, err
	}

	return invitation, nil
}

// Update applies a full or partial invitation update. Admin of the owning
// group only.
func (s *InvitationService) Update(ctx context.Context, caller *models.User, id string, req *UpdateInvitationRequest, full bool) (*models.Invitation, error) {
	if err := validateResourceUUID(id); err != nil {
		return nil, err
	}

	invitation, err := s.invitations.GetByUUID(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AuthorizeAdminWrite(ctx, caller.UUID, invitation.GroupUUID); err != nil {
		return nil, err
	}

	if full && (!req.Email.Present || req.Email.Value == nil) {
		return nil, missingFields("email")
	}

	if req.Email.Present && req.Email.Value != nil {
		invitation.Email = *req.Email.Value
	}

	if err := asBadRequest(validation.ValidateStruct(invitation,
		validation.Field(&invitation.Email, validation.Required, validation.Length(1, config.MaxEmailLength), is.EmailFormat),
	)); err != nil {
		return nil, err
	}

	if err := s.invitations.Update(ctx, invitation); err != nil {
		return nil, err
	}

	s.logger.Info("invitation updated",
		"uuid", invitation.UUID,
		"by", caller.UUID,
	)

	return invitation, nil
}

// Delete removes an invitation. Admin of the owning group only.
func (s *InvitationService) Delete(ctx context.Context, caller *models.User, id string) error {
	if err := validateResourceUUID(id); err != nil {
		return err
	}

	invitation, err := s.invitations.GetByUUID(ctx, id, nil)
	if err != nil {
		return err
	}
	if err := s.scope.AuthorizeAdminWrite(ctx, caller.UUID, invitation.GroupUUID); err != nil {
		return err
	}

	if err := s.invitations.Delete(ctx, invitation.UUID); err != nil {
		return err
	}

	s.logger.Info("invitation deleted",
		"uuid", invitation.UUID,
		"by", caller.UUID,
	)

	return nil
}

func (s *InvitationService) validateCreate(req *CreateInvitationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.GroupUUID, validation.Required, is.UUIDv4),
		validation.Field(&req.Email, validation.Required, validation.Length(1, config.MaxEmailLength), is.EmailFormat),
	)
}

// generateInviteToken returns the 96-character hex secret stored with an
// invitation.
func generateInviteToken() (string, error) {
	buf := make([]byte, 48)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
