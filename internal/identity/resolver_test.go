package identity_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefops/internal/identity"
	rolestore "reliefops/internal/identity/store/role"
	"reliefops/internal/identity/token"
	"reliefops/pkg/domain"
)

const (
	testSigningKey = "resolver-test-signing-key"
	testIssuer     = "reliefops-test"
)

// erroringRoles simulates a role backend outage.
type erroringRoles struct{}

func (erroringRoles) FindRole(context.Context, domain.UserID) (identity.Role, error) {
	return identity.RoleUnknown, errors.New("connection reset")
}

func newResolver(roles identity.RoleStore) *identity.Resolver {
	return identity.NewResolver(
		token.NewVerifier(testSigningKey, testIssuer),
		roles,
		identity.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func signedToken(t *testing.T, userID domain.UserID, expiresIn time.Duration) string {
	t.Helper()
	credential, err := token.NewSigner(testSigningKey, testIssuer).Sign(userID, expiresIn)
	require.NoError(t, err)
	return credential
}

func TestResolve_EmptyCredentialIsAnonymous(t *testing.T) {
	resolver := newResolver(rolestore.NewInMemory())

	for _, credential := range []string{"", "   ", "Bearer ", "Bearer    "} {
		actor := resolver.Resolve(context.Background(), credential)
		assert.True(t, actor.IsAnonymous(), "credential %q", credential)
	}
}

func TestResolve_GarbageTokenIsAnonymous(t *testing.T) {
	resolver := newResolver(rolestore.NewInMemory())

	actor := resolver.Resolve(context.Background(), "Bearer not.a.jwt")

	assert.True(t, actor.IsAnonymous())
	assert.Equal(t, identity.RoleUnknown, actor.Role)
}

func TestResolve_ExpiredTokenIsAnonymous(t *testing.T) {
	roles := rolestore.NewInMemory()
	userID := domain.UserID(uuid.New())
	roles.Set(userID, identity.RoleSuperAdmin)
	resolver := newResolver(roles)

	actor := resolver.Resolve(context.Background(), "Bearer "+signedToken(t, userID, -time.Minute))

	assert.True(t, actor.IsAnonymous())
}

func TestResolve_WrongKeyIsAnonymous(t *testing.T) {
	resolver := newResolver(rolestore.NewInMemory())
	userID := domain.UserID(uuid.New())
	credential, err := token.NewSigner("a-different-key", testIssuer).Sign(userID, time.Hour)
	require.NoError(t, err)

	actor := resolver.Resolve(context.Background(), "Bearer "+credential)

	assert.True(t, actor.IsAnonymous())
}

func TestResolve_ValidTokenCarriesStoredRole(t *testing.T) {
	roles := rolestore.NewInMemory()
	userID := domain.UserID(uuid.New())
	roles.Set(userID, identity.RoleGridCoordinator)
	resolver := newResolver(roles)

	actor := resolver.Resolve(context.Background(), "Bearer "+signedToken(t, userID, time.Hour))

	assert.False(t, actor.IsAnonymous())
	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, identity.RoleGridCoordinator, actor.Role)
}

func TestResolve_BareTokenWithoutBearerPrefix(t *testing.T) {
	roles := rolestore.NewInMemory()
	userID := domain.UserID(uuid.New())
	roles.Set(userID, identity.RoleRegularUser)
	resolver := newResolver(roles)

	actor := resolver.Resolve(context.Background(), signedToken(t, userID, time.Hour))

	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, identity.RoleRegularUser, actor.Role)
}

func TestResolve_UnknownUserKeepsIDWithoutRole(t *testing.T) {
	resolver := newResolver(rolestore.NewInMemory())
	userID := domain.UserID(uuid.New())

	actor := resolver.Resolve(context.Background(), "Bearer "+signedToken(t, userID, time.Hour))

	assert.False(t, actor.IsAnonymous())
	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, identity.RoleUnknown, actor.Role)
}

func TestResolve_RoleLookupFailureDegradesToUnknownRole(t *testing.T) {
	resolver := newResolver(erroringRoles{})
	userID := domain.UserID(uuid.New())

	actor := resolver.Resolve(context.Background(), "Bearer "+signedToken(t, userID, time.Hour))

	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, identity.RoleUnknown, actor.Role)
}
