package models

import (
	"time"

	"reliefops/pkg/domain"
	dErrors "reliefops/pkg/domain-errors"
)

// Status is the lifecycle state of a volunteer registration.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusArrived   Status = "arrived"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// AllStatuses returns every status in a stable order. Status count maps carry
// all of these as keys, defaulting to zero.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusArrived, StatusCompleted, StatusCancelled}
}

// ParseStatus validates a status filter value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusArrived, StatusCompleted, StatusCancelled:
		return Status(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown registration status")
	}
}

// Row is a volunteer registration joined with its contact record. The phone
// field is raw PII: it must never be projected into a response except through
// the visibility verdict.
type Row struct {
	ID             domain.RegistrationID
	GridID         domain.GridID
	UserID         domain.UserID
	VolunteerName  string
	VolunteerPhone string
	Status         Status
	AvailableTime  string
	Skills         []string
	Equipment      []string
	Notes          string
	CreatedAt      time.Time
}

// Pagination bounds. Requests above MaxLimit are clamped; absent or
// malformed limits default to DefaultLimit.
const (
	DefaultLimit = 200
	MaxLimit     = 200
)

// ListFilters is the predicate for the registration query. The same filters
// drive the page, the total, and the status counts so they always agree.
type ListFilters struct {
	GridID *domain.GridID
	Status *Status

	// MatchNone is set when a malformed filter value was supplied. Malformed
	// filters are treated as "no matches", never as faults.
	MatchNone bool

	Limit  int
	Offset int
}

// Normalize clamps pagination into its defined bounds. Stores call it
// defensively so the invariant holds regardless of transport.
func (f *ListFilters) Normalize() {
	if f.Limit < 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
}
