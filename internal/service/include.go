package service

import (
	"errors"
	"sort"
	"strings"

	"giftlist/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Association allow-lists. Includes are resolved against these fixed
// per-entity tables; unrecognized names are silently ignored so a stale
// client cannot turn a read into an error.
var (
	groupIncludes      = []string{"admin", "creator", "users", "wishLists", "invitations"}
	invitationIncludes = []string{"group", "creator"}
	wishListIncludes   = []string{"group", "creator"}
)

// parseInclude resolves a comma-separated include parameter against an
// allow-list, preserving request order and dropping unknown names.
func parseInclude(raw string, allowed []string) []string {
	if raw == "" {
		return nil
	}

	var resolved []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		for _, candidate := range allowed {
			if name == candidate {
				resolved = append(resolved, name)
				break
			}
		}
	}
	return resolved
}

// validateResourceUUID checks that an id is a well-formed resource key.
// Malformed ids map to not-found, deliberately indistinguishable from
// nonexistent ids.
func validateResourceUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewResourceNotFoundError("")
	}
	return nil
}

// asBadRequest converts ozzo validation errors into the client-visible
// BadRequestError with per-field problems. Non-validation errors pass
// through untouched.
func asBadRequest(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}

	properties := make([]string, 0, len(verrs))
	for property := range verrs {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	fieldErrors := make([]domain.FieldError, 0, len(verrs))
	for _, property := range properties {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Property: property,
			Message:  verrs[property].Error(),
		})
	}

	return domain.NewBadRequestError("Validation error", fieldErrors...)
}

// requireGroupParam validates the groupUuid query parameter that scopes
// list endpoints. Unlike resource path ids, a malformed value here is a
// client mistake, not a probe, so it surfaces as a 400.
func requireGroupParam(groupUUID string) error {
	if groupUUID == "" {
		return domain.NewBadRequestError("Validation error", domain.FieldError{
			Property: "groupUuid",
			Message:  "groupUuid is required",
		})
	}
	if _, err := uuid.Parse(groupUUID); err != nil {
		return domain.NewBadRequestError("Validation error", domain.FieldError{
			Property: "groupUuid",
			Message:  "groupUuid must be a valid UUID",
		})
	}
	return nil
}

// missingFields builds the BadRequestError for a full replace that omits
// mandatory fields.
func missingFields(properties ...string) error {
	fieldErrors := make([]domain.FieldError, 0, len(properties))
	for _, property := range properties {
		fieldErrors = append(fieldErrors, domain.FieldError{
			Property: property,
			Message:  property + " cannot be null",
		})
	}
	return domain.NewBadRequestError("Validation error", fieldErrors...)
}
