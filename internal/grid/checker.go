// Package grid exposes the ownership facts the visibility policy depends on.
// Grid lifecycle management lives in its own subsystem; this package only
// reads the manager assignment.
package grid

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"reliefops/internal/platform/metrics"
	"reliefops/internal/platform/middleware"
	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
)

// OwnershipStore resolves a grid id to its registered manager.
type OwnershipStore interface {
	ManagerOf(ctx context.Context, gridID domain.GridID) (domain.UserID, error)
}

// Checker answers "is this actor the registered manager of this grid". It is
// a pure lookup with fail-closed semantics: store errors and timeouts deny,
// they never propagate, because a failed permission check must never default
// to allow.
type Checker struct {
	store         OwnershipStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	lookupTimeout time.Duration
}

type CheckerOption func(*Checker)

func WithLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) CheckerOption {
	return func(c *Checker) { c.metrics = m }
}

func WithLookupTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.lookupTimeout = d
		}
	}
}

// NewChecker constructs a Checker.
func NewChecker(store OwnershipStore, opts ...CheckerOption) *Checker {
	c := &Checker{
		store:         store,
		logger:        slog.Default(),
		lookupTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsManagerOf reports whether actorID manages gridID. A nil gridID denies:
// ownership without a target grid is undefined.
func (c *Checker) IsManagerOf(ctx context.Context, actorID domain.UserID, gridID *domain.GridID) bool {
	if gridID == nil || actorID.IsZero() {
		return false
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	managerID, err := c.store.ManagerOf(lookupCtx, *gridID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Unknown grid or no manager assigned. Not an operational fault.
			return false
		}
		c.logger.WarnContext(ctx, "ownership lookup failed, denying",
			"error", err,
			"grid_id", gridID.String(),
			"request_id", middleware.GetRequestID(ctx),
		)
		if c.metrics != nil {
			c.metrics.LookupFailures.WithLabelValues("ownership").Inc()
		}
		return false
	}
	return managerID == actorID
}
