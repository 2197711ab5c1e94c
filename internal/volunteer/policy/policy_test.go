package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"reliefops/internal/identity"
	"reliefops/pkg/domain"
)

// ownershipFunc adapts a function to the OwnershipChecker interface.
type ownershipFunc func(ctx context.Context, actorID domain.UserID, gridID *domain.GridID) bool

func (f ownershipFunc) IsManagerOf(ctx context.Context, actorID domain.UserID, gridID *domain.GridID) bool {
	return f(ctx, actorID, gridID)
}

func ownerOf(gridID domain.GridID, managerID domain.UserID) OwnershipChecker {
	return ownershipFunc(func(_ context.Context, actorID domain.UserID, target *domain.GridID) bool {
		return target != nil && *target == gridID && actorID == managerID
	})
}

func denyAll() OwnershipChecker {
	return ownershipFunc(func(context.Context, domain.UserID, *domain.GridID) bool { return false })
}

func actor(role identity.Role) identity.ActorContext {
	return identity.ActorContext{ID: domain.UserID(uuid.New()), Role: role}
}

func TestDecide_Anonymous(t *testing.T) {
	gridID := domain.GridID(uuid.New())

	verdict := Decide(context.Background(), identity.Anonymous(), &gridID, denyAll())

	assert.False(t, verdict.CanView())
	assert.False(t, verdict.ShowFull())
}

func TestDecide_AdminsSeeEverything(t *testing.T) {
	gridID := domain.GridID(uuid.New())

	for _, role := range []identity.Role{identity.RoleSuperAdmin, identity.RoleRegionalAdmin} {
		t.Run(string(role), func(t *testing.T) {
			t.Run("with grid filter", func(t *testing.T) {
				verdict := Decide(context.Background(), actor(role), &gridID, denyAll())
				assert.True(t, verdict.CanView())
				assert.True(t, verdict.ShowFull())
			})
			t.Run("without grid filter", func(t *testing.T) {
				verdict := Decide(context.Background(), actor(role), nil, denyAll())
				assert.True(t, verdict.CanView())
				assert.True(t, verdict.ShowFull())
			})
		})
	}
}

func TestDecide_CoordinatorScopedToOwnedGrid(t *testing.T) {
	coordinator := actor(identity.RoleGridCoordinator)
	owned := domain.GridID(uuid.New())
	other := domain.GridID(uuid.New())
	ownership := ownerOf(owned, coordinator.ID)

	t.Run("owned grid grants full visibility", func(t *testing.T) {
		verdict := Decide(context.Background(), coordinator, &owned, ownership)
		assert.True(t, verdict.CanView())
		assert.True(t, verdict.ShowFull())
	})

	t.Run("unmanaged grid denies", func(t *testing.T) {
		verdict := Decide(context.Background(), coordinator, &other, ownership)
		assert.False(t, verdict.CanView())
	})

	t.Run("no grid filter denies even for an owner", func(t *testing.T) {
		verdict := Decide(context.Background(), coordinator, nil, ownership)
		assert.False(t, verdict.CanView())
	})

	t.Run("ownership lookup failure denies, never errors", func(t *testing.T) {
		verdict := Decide(context.Background(), coordinator, &owned, denyAll())
		assert.False(t, verdict.CanView())
	})
}

func TestDecide_UnprivilegedRoles(t *testing.T) {
	gridID := domain.GridID(uuid.New())

	for _, role := range []identity.Role{
		identity.RoleRegularUser,
		identity.RoleUnknown,
		identity.Role("auditor"), // future role: must be classified before it grants anything
	} {
		verdict := Decide(context.Background(), actor(role), &gridID, denyAll())
		assert.False(t, verdict.CanView(), "role %q", role)
		assert.False(t, verdict.ShowFull(), "role %q", role)
	}
}

func TestVerdict_FullImpliesCanView(t *testing.T) {
	assert.True(t, FullVisibility().CanView())
	assert.True(t, MaskedVisibility().CanView())
	assert.False(t, MaskedVisibility().ShowFull())
	assert.False(t, NoVisibility().CanView())
	assert.False(t, NoVisibility().ShowFull())
}
