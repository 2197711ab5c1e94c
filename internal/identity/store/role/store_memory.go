package role

import (
	"context"
	"sync"

	"reliefops/internal/identity"
	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
)

// InMemory is a map-backed role store for tests and local development.
type InMemory struct {
	mu    sync.RWMutex
	roles map[domain.UserID]identity.Role
}

func NewInMemory() *InMemory {
	return &InMemory{roles: make(map[domain.UserID]identity.Role)}
}

// Set assigns a role to a user, replacing any previous assignment.
func (s *InMemory) Set(userID domain.UserID, role identity.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = role
}

// FindRole returns the stored role for userID.
func (s *InMemory) FindRole(ctx context.Context, userID domain.UserID) (identity.Role, error) {
	if err := ctx.Err(); err != nil {
		return identity.RoleUnknown, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.roles[userID]
	if !ok {
		return identity.RoleUnknown, sentinel.ErrNotFound
	}
	return role, nil
}
