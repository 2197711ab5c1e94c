//go:build integration

package role

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefops/internal/identity"
	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
	"reliefops/pkg/testutil/containers"
)

const usersSchema = `
	CREATE TABLE IF NOT EXISTS users (
		id   UUID PRIMARY KEY,
		role TEXT NOT NULL
	);
`

func TestPostgresRoleStore(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	_, err := pg.DB.ExecContext(ctx, usersSchema)
	require.NoError(t, err)
	store := NewPostgres(pg.DB)

	insert := func(role string) domain.UserID {
		userID := domain.UserID(uuid.New())
		_, err := pg.DB.ExecContext(ctx,
			`INSERT INTO users (id, role) VALUES ($1, $2)`,
			uuid.UUID(userID), role)
		require.NoError(t, err)
		return userID
	}

	t.Run("returns stored role", func(t *testing.T) {
		userID := insert("grid_coordinator")

		role, err := store.FindRole(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleGridCoordinator, role)
	})

	t.Run("unknown user reports not found", func(t *testing.T) {
		_, err := store.FindRole(ctx, domain.UserID(uuid.New()))
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("unrecognized role string resolves to unknown", func(t *testing.T) {
		userID := insert("galactic_overlord")

		role, err := store.FindRole(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleUnknown, role)
	})
}
