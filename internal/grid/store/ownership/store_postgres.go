package ownership

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore reads the manager assignment from the grids table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed ownership store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ManagerOf returns the manager of gridID. A grid without an assigned
// manager reports sentinel.ErrNotFound, same as an unknown grid: both mean
// no one can claim ownership of it.
func (s *PostgresStore) ManagerOf(ctx context.Context, gridID domain.GridID) (domain.UserID, error) {
	var managerID uuid.NullUUID
	err := s.db.QueryRowContext(ctx,
		`SELECT grid_manager_id FROM grids WHERE id = $1`,
		uuid.UUID(gridID),
	).Scan(&managerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserID{}, sentinel.ErrNotFound
		}
		return domain.UserID{}, fmt.Errorf("lookup grid manager: %w", err)
	}
	if !managerID.Valid {
		return domain.UserID{}, sentinel.ErrNotFound
	}
	return domain.UserID(managerID.UUID), nil
}
