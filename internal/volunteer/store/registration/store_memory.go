package registration

import (
	"context"
	"sort"
	"strings"
	"sync"

	"reliefops/internal/volunteer/models"
)

// InMemory is a slice-backed registration store for tests and local
// development. It applies the same predicate, ordering, and pagination
// contract as the Postgres store.
type InMemory struct {
	mu   sync.RWMutex
	rows []*models.Row
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

// Add appends a joined registration row.
func (s *InMemory) Add(row *models.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *row
	s.rows = append(s.rows, &copied)
}

func matches(row *models.Row, filters models.ListFilters) bool {
	if filters.MatchNone {
		return false
	}
	if filters.GridID != nil && row.GridID != *filters.GridID {
		return false
	}
	if filters.Status != nil && row.Status != *filters.Status {
		return false
	}
	return true
}

// List returns the page of matching rows plus the total match count ignoring
// pagination. Ordering is creation time descending with registration id as a
// stable tiebreak so repeated calls paginate deterministically.
func (s *InMemory) List(ctx context.Context, filters models.ListFilters) ([]*models.Row, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	filters.Normalize()

	s.mu.RLock()
	matched := make([]*models.Row, 0, len(s.rows))
	for _, row := range s.rows {
		if matches(row, filters) {
			matched = append(matched, row)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return strings.Compare(matched[i].ID.String(), matched[j].ID.String()) > 0
	})

	total := len(matched)
	start := filters.Offset
	if start > total {
		start = total
	}
	end := start + filters.Limit
	if end > total {
		end = total
	}

	page := make([]*models.Row, 0, end-start)
	for _, row := range matched[start:end] {
		copied := *row
		page = append(page, &copied)
	}
	return page, total, nil
}

// CountByStatus tallies all matching rows per status, ignoring pagination.
// Every status appears as a key, absent ones at zero.
func (s *InMemory) CountByStatus(ctx context.Context, filters models.ListFilters) (map[models.Status]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[models.Status]int, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		counts[status] = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, row := range s.rows {
		if matches(row, filters) {
			counts[row.Status]++
		}
	}
	return counts, nil
}
