package ownership

import (
	"context"
	"sync"

	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
)

// InMemory is a map-backed ownership store for tests and local development.
type InMemory struct {
	mu       sync.RWMutex
	managers map[domain.GridID]domain.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{managers: make(map[domain.GridID]domain.UserID)}
}

// Assign records managerID as the manager of gridID.
func (s *InMemory) Assign(gridID domain.GridID, managerID domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.managers[gridID] = managerID
}

// ManagerOf returns the registered manager of gridID.
func (s *InMemory) ManagerOf(ctx context.Context, gridID domain.GridID) (domain.UserID, error) {
	if err := ctx.Err(); err != nil {
		return domain.UserID{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	managerID, ok := s.managers[gridID]
	if !ok || managerID.IsZero() {
		return domain.UserID{}, sentinel.ErrNotFound
	}
	return managerID, nil
}
