package volunteer

import (
	"log/slog"

	"reliefops/internal/volunteer/handler"
	"reliefops/internal/volunteer/policy"
	"reliefops/internal/volunteer/service"
)

// Service exposes the volunteer list orchestration.
type Service = service.Service

// Handler wires HTTP endpoints to the volunteer service.
type Handler = handler.Handler

// Option configures the volunteer service.
type Option = service.Option

// NewService constructs the volunteer service with required dependencies.
func NewService(registrations service.RegistrationStore, ownership policy.OwnershipChecker, opts ...service.Option) *Service {
	return service.New(registrations, ownership, opts...)
}

// NewHandler constructs the HTTP handler for volunteer routes.
func NewHandler(s *Service, resolver handler.ActorResolver, logger *slog.Logger) *Handler {
	return handler.New(s, resolver, logger)
}
