//go:build integration

package ownership

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
	"reliefops/pkg/testutil/containers"
)

const gridsSchema = `
	CREATE TABLE IF NOT EXISTS grids (
		id              UUID PRIMARY KEY,
		grid_manager_id UUID
	);
`

func TestPostgresOwnership(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)
	_, err := pg.DB.ExecContext(ctx, gridsSchema)
	require.NoError(t, err)
	store := NewPostgres(pg.DB)

	t.Run("returns assigned manager", func(t *testing.T) {
		gridID := domain.GridID(uuid.New())
		managerID := domain.UserID(uuid.New())
		_, err := pg.DB.ExecContext(ctx,
			`INSERT INTO grids (id, grid_manager_id) VALUES ($1, $2)`,
			uuid.UUID(gridID), uuid.UUID(managerID))
		require.NoError(t, err)

		got, err := store.ManagerOf(ctx, gridID)
		require.NoError(t, err)
		assert.Equal(t, managerID, got)
	})

	t.Run("unknown grid reports not found", func(t *testing.T) {
		_, err := store.ManagerOf(ctx, domain.GridID(uuid.New()))
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("grid without manager reports not found", func(t *testing.T) {
		gridID := domain.GridID(uuid.New())
		_, err := pg.DB.ExecContext(ctx,
			`INSERT INTO grids (id, grid_manager_id) VALUES ($1, NULL)`,
			uuid.UUID(gridID))
		require.NoError(t, err)

		_, err = store.ManagerOf(ctx, gridID)
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})
}

func TestRedisOwnership(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	store := NewRedis(rc.Client)

	t.Run("round trips an assignment", func(t *testing.T) {
		gridID := domain.GridID(uuid.New())
		managerID := domain.UserID(uuid.New())
		require.NoError(t, store.Assign(ctx, gridID, managerID))

		got, err := store.ManagerOf(ctx, gridID)
		require.NoError(t, err)
		assert.Equal(t, managerID, got)
	})

	t.Run("missing key reports not found", func(t *testing.T) {
		_, err := store.ManagerOf(ctx, domain.GridID(uuid.New()))
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("corrupt value errors instead of granting", func(t *testing.T) {
		gridID := domain.GridID(uuid.New())
		require.NoError(t, rc.Client.Set(ctx, "grid:manager:"+gridID.String(), "not-a-uuid", 0).Err())

		_, err := store.ManagerOf(ctx, gridID)
		require.Error(t, err)
		assert.False(t, errors.Is(err, sentinel.ErrNotFound))
	})
}
