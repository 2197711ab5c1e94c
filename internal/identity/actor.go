// Package identity resolves an optional bearer credential into a typed actor.
// Resolution is total: any verification or lookup failure degrades to the
// least-privileged actor instead of failing the request.
package identity

import (
	"reliefops/pkg/domain"
)

// Role classifies an identified actor. The set is closed: visibility policy
// switches over it exhaustively, and unknown strings parse to RoleUnknown so
// a newly introduced role must be explicitly classified before it grants
// anything.
type Role string

const (
	RoleUnknown         Role = ""
	RoleRegularUser     Role = "regular_user"
	RoleGridCoordinator Role = "grid_coordinator"
	RoleRegionalAdmin   Role = "regional_admin"
	RoleSuperAdmin      Role = "super_admin"
)

// ParseRole maps a stored role string onto the closed enum.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleRegularUser, RoleGridCoordinator, RoleRegionalAdmin, RoleSuperAdmin:
		return Role(raw)
	default:
		return RoleUnknown
	}
}

// ActorContext is the resolved caller for one request. It is constructed once
// per request and never cached across requests, since roles can change
// between them.
//
// A zero ID means the caller is anonymous. An identified actor can still
// carry RoleUnknown when the role lookup failed; for visibility purposes that
// is equivalent to anonymous, but the id stays known for other features.
type ActorContext struct {
	ID   domain.UserID
	Role Role
}

// Anonymous returns the unauthenticated actor.
func Anonymous() ActorContext { return ActorContext{} }

// IsAnonymous reports whether no identity was established.
func (a ActorContext) IsAnonymous() bool { return a.ID.IsZero() }
