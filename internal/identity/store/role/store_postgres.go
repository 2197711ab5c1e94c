package role

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reliefops/internal/identity"
	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"

	"github.com/google/uuid"
)

// PostgresStore reads user roles from the users table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed role store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// FindRole returns the role stored for userID. A row with an unrecognized
// role string resolves to RoleUnknown rather than an error so future roles
// never grant anything by accident.
func (s *PostgresStore) FindRole(ctx context.Context, userID domain.UserID) (identity.Role, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM users WHERE id = $1`,
		uuid.UUID(userID),
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return identity.RoleUnknown, sentinel.ErrNotFound
		}
		return identity.RoleUnknown, fmt.Errorf("find role: %w", err)
	}
	return identity.ParseRole(raw), nil
}
