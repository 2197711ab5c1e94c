// Package domain defines typed identifiers shared across subsystems. Wrapping
// uuid.UUID in distinct types lets the compiler reject cross-entity mixups
// (passing a grid id where a user id is expected).
package domain

import (
	"github.com/google/uuid"

	dErrors "reliefops/pkg/domain-errors"
)

// UserID identifies an account (volunteer, coordinator, or admin).
type UserID uuid.UUID

// GridID identifies a work grid.
type GridID uuid.UUID

// RegistrationID identifies a volunteer registration on a grid.
type RegistrationID uuid.UUID

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id GridID) String() string         { return uuid.UUID(id).String() }
func (id RegistrationID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id GridID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared invariant: ids must be valid, non-nil UUIDs.
func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+kind+" id")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be nil")
	}
	return parsed, nil
}

// ParseUserID parses a user id from its string form.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	return UserID(parsed), err
}

// ParseGridID parses a grid id from its string form.
func ParseGridID(raw string) (GridID, error) {
	parsed, err := parseUUID(raw, "grid")
	return GridID(parsed), err
}

// ParseRegistrationID parses a registration id from its string form.
func ParseRegistrationID(raw string) (RegistrationID, error) {
	parsed, err := parseUUID(raw, "registration")
	return RegistrationID(parsed), err
}
