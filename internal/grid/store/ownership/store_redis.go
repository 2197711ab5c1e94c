package ownership

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"reliefops/pkg/domain"
	dErrors "reliefops/pkg/domain-errors"
	"reliefops/pkg/platform/sentinel"
)

// keyPrefix namespaces ownership keys: grid:manager:<grid-uuid> -> user-uuid.
const keyPrefix = "grid:manager:"

// RedisStore reads manager assignments from Redis. Deployments that already
// project grid ownership into a key-value store can point the checker here
// instead of Postgres; the contract is the same simple key lookup.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed ownership store.
func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Assign records managerID as the manager of gridID. Used by the projection
// job and by tests.
func (s *RedisStore) Assign(ctx context.Context, gridID domain.GridID, managerID domain.UserID) error {
	if err := s.client.Set(ctx, keyPrefix+gridID.String(), managerID.String(), 0).Err(); err != nil {
		return fmt.Errorf("assign grid manager: %w", err)
	}
	return nil
}

// ManagerOf returns the registered manager of gridID.
func (s *RedisStore) ManagerOf(ctx context.Context, gridID domain.GridID) (domain.UserID, error) {
	raw, err := s.client.Get(ctx, keyPrefix+gridID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.UserID{}, sentinel.ErrNotFound
		}
		return domain.UserID{}, fmt.Errorf("lookup grid manager: %w", err)
	}
	managerID, err := domain.ParseUserID(raw)
	if err != nil {
		// A corrupt value must deny, not grant.
		return domain.UserID{}, dErrors.Wrap(err, dErrors.CodeInternal, "corrupt grid manager entry")
	}
	return managerID, nil
}
