package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"reliefops/internal/identity"
	"reliefops/internal/platform/middleware"
	"reliefops/internal/volunteer/models"
	"reliefops/internal/volunteer/service"
	dErrors "reliefops/pkg/domain-errors"
	"reliefops/pkg/platform/httputil"
)

// Service is the list operation the handler delegates to.
type Service interface {
	List(ctx context.Context, req service.ListRequest) (*models.ListPayload, error)
}

// ActorResolver turns the Authorization header into an actor. Resolution is
// total, so the route stays public: unauthenticated callers get the
// anonymous (no-PII) view rather than a 401.
type ActorResolver interface {
	Resolve(ctx context.Context, credential string) identity.ActorContext
}

// Handler wires the volunteer list endpoint.
type Handler struct {
	volunteers Service
	resolver   ActorResolver
	logger     *slog.Logger
}

// New creates a volunteer Handler.
func New(volunteers Service, resolver ActorResolver, logger *slog.Logger) *Handler {
	return &Handler{volunteers: volunteers, resolver: resolver, logger: logger}
}

// Register registers the volunteer routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Get("/volunteers", h.handleList)

	r.Mount("/", router)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor := h.resolver.Resolve(ctx, r.Header.Get("Authorization"))
	query := r.URL.Query()

	payload, err := h.volunteers.List(ctx, service.ListRequest{
		Actor:         actor,
		Filters:       models.ParseListQuery(query),
		IncludeCounts: models.ParseIncludeCounts(query.Get("include_counts")),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list volunteers",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list volunteers"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, payload)
}
