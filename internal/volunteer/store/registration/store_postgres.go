package registration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"reliefops/internal/volunteer/models"
	"reliefops/pkg/domain"
)

// PostgresStore runs the registration/contact join against PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed registration store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const listQuery = `
	SELECT r.id, r.grid_id, r.user_id,
	       COALESCE(c.volunteer_name, ''), COALESCE(c.volunteer_phone, ''),
	       r.status, COALESCE(r.available_time, ''),
	       r.skills, r.equipment, COALESCE(r.notes, ''), r.created_at
	FROM volunteer_registrations r
	LEFT JOIN volunteer_contacts c ON c.user_id = r.user_id
	WHERE ($1::uuid IS NULL OR r.grid_id = $1)
	  AND ($2::text IS NULL OR r.status = $2)
	ORDER BY r.created_at DESC, r.id DESC
	LIMIT $3 OFFSET $4
`

const countQuery = `
	SELECT COUNT(*)
	FROM volunteer_registrations r
	WHERE ($1::uuid IS NULL OR r.grid_id = $1)
	  AND ($2::text IS NULL OR r.status = $2)
`

const statusCountQuery = `
	SELECT r.status, COUNT(*)
	FROM volunteer_registrations r
	WHERE ($1::uuid IS NULL OR r.grid_id = $1)
	  AND ($2::text IS NULL OR r.status = $2)
	GROUP BY r.status
`

func filterParams(filters models.ListFilters) (uuid.NullUUID, sql.NullString) {
	var gridID uuid.NullUUID
	if filters.GridID != nil {
		gridID = uuid.NullUUID{UUID: uuid.UUID(*filters.GridID), Valid: true}
	}
	var status sql.NullString
	if filters.Status != nil {
		status = sql.NullString{String: string(*filters.Status), Valid: true}
	}
	return gridID, status
}

// List returns the page of matching rows plus the total match count ignoring
// pagination. Both come from the same predicate so they cannot drift apart.
func (s *PostgresStore) List(ctx context.Context, filters models.ListFilters) ([]*models.Row, int, error) {
	filters.Normalize()
	if filters.MatchNone {
		return []*models.Row{}, 0, nil
	}

	gridID, status := filterParams(filters)

	rows, err := s.db.QueryContext(ctx, listQuery, gridID, status, filters.Limit, filters.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	page := make([]*models.Row, 0, filters.Limit)
	for rows.Next() {
		var (
			row       models.Row
			id        uuid.UUID
			rowGridID uuid.UUID
			userID    uuid.UUID
			rawStatus string
		)
		err := rows.Scan(&id, &rowGridID, &userID,
			&row.VolunteerName, &row.VolunteerPhone,
			&rawStatus, &row.AvailableTime,
			pq.Array(&row.Skills), pq.Array(&row.Equipment),
			&row.Notes, &row.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan registration row: %w", err)
		}
		row.ID = domain.RegistrationID(id)
		row.GridID = domain.GridID(rowGridID)
		row.UserID = domain.UserID(userID)
		row.Status = models.Status(rawStatus)
		page = append(page, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate registration rows: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, gridID, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}
	return page, total, nil
}

// CountByStatus tallies all matching rows per status, ignoring pagination.
// Every status appears as a key, absent ones at zero.
func (s *PostgresStore) CountByStatus(ctx context.Context, filters models.ListFilters) (map[models.Status]int, error) {
	counts := make(map[models.Status]int, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		counts[status] = 0
	}
	if filters.MatchNone {
		return counts, nil
	}

	gridID, status := filterParams(filters)

	rows, err := s.db.QueryContext(ctx, statusCountQuery, gridID, status)
	if err != nil {
		return nil, fmt.Errorf("count registrations by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawStatus string
			count     int
		)
		if err := rows.Scan(&rawStatus, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[models.Status(rawStatus)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}
