// Package policy decides who may see a volunteer's phone number and in what
// form. The decision is cheap, deterministic, and recomputed per request;
// nothing here is cached because roles and grid ownership can change between
// requests.
package policy

import (
	"context"

	"reliefops/internal/identity"
	"reliefops/pkg/domain"
)

// Verdict is the visibility decision for one request. Fields are unexported
// so a verdict can only be built through the constructors below, which makes
// "show full implies can view" hold by construction.
type Verdict struct {
	canView  bool
	showFull bool
}

// FullVisibility permits viewing phones unmasked.
func FullVisibility() Verdict { return Verdict{canView: true, showFull: true} }

// MaskedVisibility permits viewing phones in redacted form only.
func MaskedVisibility() Verdict { return Verdict{canView: true} }

// NoVisibility denies phone access entirely.
func NoVisibility() Verdict { return Verdict{} }

// CanView reports whether any phone form may appear in the output.
func (v Verdict) CanView() bool { return v.canView }

// ShowFull reports whether phones are rendered unmasked.
func (v Verdict) ShowFull() bool { return v.showFull }

// OwnershipChecker answers whether an actor manages a grid. Implementations
// are fail-closed: any lookup failure reports false.
type OwnershipChecker interface {
	IsManagerOf(ctx context.Context, actorID domain.UserID, gridID *domain.GridID) bool
}

// Decide evaluates the phone-visibility decision table. Checked in order,
// first match wins:
//
//  1. anonymous callers see nothing;
//  2. regional and super admins see everything, regardless of grid filter;
//  3. a grid coordinator sees full phones only when the request is scoped to
//     a single grid they manage;
//  4. everyone else — regular users, coordinators outside their grid or with
//     no grid filter at all, unknown roles — sees nothing.
//
// The no-filter coordinator case in rule 4 is deliberate: an unfiltered list
// spans grids the coordinator does not own, and ownership is a per-grid fact,
// so holding the role alone grants nothing.
func Decide(ctx context.Context, actor identity.ActorContext, targetGrid *domain.GridID, ownership OwnershipChecker) Verdict {
	if actor.IsAnonymous() {
		return NoVisibility()
	}

	switch actor.Role {
	case identity.RoleSuperAdmin, identity.RoleRegionalAdmin:
		return FullVisibility()
	case identity.RoleGridCoordinator:
		if targetGrid != nil && ownership.IsManagerOf(ctx, actor.ID, targetGrid) {
			return FullVisibility()
		}
		return NoVisibility()
	case identity.RoleRegularUser, identity.RoleUnknown:
		return NoVisibility()
	default:
		// Explicit allow-list: a role added to the enum without being
		// classified here must not gain visibility by falling through.
		return NoVisibility()
	}
}
