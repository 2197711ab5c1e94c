package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"reliefops/internal/platform/metrics"
	"reliefops/internal/platform/middleware"
	"reliefops/pkg/domain"
	"reliefops/pkg/platform/sentinel"
)

// TokenVerifier validates a bearer token and returns the subject user id.
type TokenVerifier interface {
	Verify(tokenString string) (domain.UserID, error)
}

// RoleStore looks up the stored role for a user id.
type RoleStore interface {
	FindRole(ctx context.Context, userID domain.UserID) (Role, error)
}

// Resolver turns an optional, possibly-invalid credential into an
// ActorContext. It never returns an error: missing or unverifiable
// credentials resolve to Anonymous, and a failed role lookup leaves the role
// unset while keeping the id.
type Resolver struct {
	verifier      TokenVerifier
	roles         RoleStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	lookupTimeout time.Duration
}

type ResolverOption func(*Resolver)

func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

func WithMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) { r.metrics = m }
}

func WithLookupTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.lookupTimeout = d
		}
	}
}

// NewResolver constructs a Resolver.
func NewResolver(verifier TokenVerifier, roles RoleStore, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		verifier:      verifier,
		roles:         roles,
		logger:        slog.Default(),
		lookupTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve accepts the raw Authorization header value (with or without the
// "Bearer " prefix) or a bare token and resolves the actor for this request.
func (r *Resolver) Resolve(ctx context.Context, credential string) ActorContext {
	tokenString := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(credential), "Bearer "))
	if tokenString == "" {
		return Anonymous()
	}

	userID, err := r.verifier.Verify(tokenString)
	if err != nil {
		// Invalid credentials are a normal anonymous resolution, not an
		// anomaly. Debug level keeps probe noise out of warn logs.
		r.logger.DebugContext(ctx, "credential did not verify, resolving anonymous",
			"request_id", middleware.GetRequestID(ctx),
		)
		return Anonymous()
	}

	lookupCtx, cancel := context.WithTimeout(ctx, r.lookupTimeout)
	defer cancel()

	role, err := r.roles.FindRole(lookupCtx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Known id without a stored role: identified but unprivileged.
			return ActorContext{ID: userID, Role: RoleUnknown}
		}
		r.logger.WarnContext(ctx, "role lookup failed, treating role as unset",
			"error", err,
			"user_id", userID.String(),
			"request_id", middleware.GetRequestID(ctx),
		)
		if r.metrics != nil {
			r.metrics.LookupFailures.WithLabelValues("identity").Inc()
		}
		return ActorContext{ID: userID, Role: RoleUnknown}
	}
	return ActorContext{ID: userID, Role: role}
}
