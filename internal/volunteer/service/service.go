package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"reliefops/internal/audit"
	"reliefops/internal/identity"
	"reliefops/internal/platform/metrics"
	"reliefops/internal/platform/middleware"
	"reliefops/internal/volunteer/models"
	"reliefops/internal/volunteer/policy"
	dErrors "reliefops/pkg/domain-errors"
	"reliefops/pkg/phone"
)

// RegistrationStore runs the filtered, paginated registration/contact join.
type RegistrationStore interface {
	List(ctx context.Context, filters models.ListFilters) ([]*models.Row, int, error)
	CountByStatus(ctx context.Context, filters models.ListFilters) (map[models.Status]int, error)
}

// AuditPublisher records PII disclosures.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates the volunteer list: it resolves the visibility
// verdict, runs the query, and assembles the response so that no row is
// projected before the verdict is known.
type Service struct {
	registrations  RegistrationStore
	ownership      policy.OwnershipChecker
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
	lookupTimeout  time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// New constructs a Service.
func New(registrations RegistrationStore, ownership policy.OwnershipChecker, opts ...Option) *Service {
	s := &Service{
		registrations: registrations,
		ownership:     ownership,
		logger:        slog.Default(),
		tracer:        otel.Tracer("reliefops/internal/volunteer"),
		lookupTimeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRequest carries everything the list operation needs. The actor must
// already be resolved; the service never sees raw credentials.
type ListRequest struct {
	Actor         identity.ActorContext
	Filters       models.ListFilters
	IncludeCounts bool
}

// List returns the filtered, paginated volunteer list with phones rendered
// strictly per the visibility verdict.
//
// The ownership check, the row query, and the status counts are independent
// reads and run concurrently; assembly waits for all of them, so the verdict
// is always fully resolved before any row is projected.
func (s *Service) List(ctx context.Context, req ListRequest) (*models.ListPayload, error) {
	ctx, span := s.tracer.Start(ctx, "volunteer.list")
	defer span.End()

	req.Filters.Normalize()

	var (
		verdict policy.Verdict
		rows    []*models.Row
		total   int
		counts  map[models.Status]int
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		// Never errors: ownership lookup failures deny inside the checker.
		verdict = policy.Decide(egCtx, req.Actor, req.Filters.GridID, s.ownership)
		return nil
	})

	eg.Go(func() error {
		queryCtx, cancel := context.WithTimeout(egCtx, s.lookupTimeout)
		defer cancel()
		var err error
		rows, total, err = s.registrations.List(queryCtx, req.Filters)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list registrations")
		}
		return nil
	})

	if req.IncludeCounts {
		eg.Go(func() error {
			countCtx, cancel := context.WithTimeout(egCtx, s.lookupTimeout)
			defer cancel()
			var err error
			counts, err = s.registrations.CountByStatus(countCtx, req.Filters)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count registrations")
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "volunteer list query failed",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		return nil, err
	}

	payload := assemble(rows, verdict, req.Filters, total, counts)

	span.SetAttributes(
		attribute.Int("volunteer.rows", len(payload.Data)),
		attribute.Int("volunteer.total", payload.Total),
		attribute.Bool("volunteer.can_view_phone", payload.CanViewPhone),
	)
	s.observe(ctx, req, verdict, payload)

	return payload, nil
}

// assemble merges query rows with the visibility verdict. It is the only
// place a phone value crosses from storage into output.
func assemble(rows []*models.Row, verdict policy.Verdict, filters models.ListFilters, total int, counts map[models.Status]int) *models.ListPayload {
	items := make([]models.ListItem, 0, len(rows))
	for _, row := range rows {
		item := models.ListItem{
			ID:            row.ID.String(),
			GridID:        row.GridID.String(),
			UserID:        row.UserID.String(),
			VolunteerName: displayName(row.VolunteerName),
			Status:        row.Status,
			AvailableTime: row.AvailableTime,
			Skills:        emptyIfNil(row.Skills),
			Equipment:     emptyIfNil(row.Equipment),
			Notes:         row.Notes,
			CreatedDate:   row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if verdict.CanView() {
			item.VolunteerPhone = displayPhone(row.VolunteerPhone, verdict.ShowFull())
		}
		items = append(items, item)
	}

	payload := &models.ListPayload{
		Data:         items,
		CanViewPhone: verdict.CanView(),
		Total:        total,
		Limit:        filters.Limit,
		Page:         pageNumber(filters),
	}
	if counts != nil {
		payload.StatusCounts = withAllStatuses(counts)
	}
	return payload
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return models.AnonymousVolunteerName
	}
	return name
}

// displayPhone renders the phone per the verdict, or nil when the stored
// value is blank so the field stays absent instead of empty.
func displayPhone(raw string, showFull bool) *string {
	var rendered string
	if showFull {
		rendered = phone.Full(raw)
	} else {
		rendered = phone.Mask(raw)
	}
	if rendered == "" {
		return nil
	}
	return &rendered
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func pageNumber(filters models.ListFilters) int {
	if filters.Limit <= 0 {
		return 1
	}
	return filters.Offset/filters.Limit + 1
}

func withAllStatuses(counts map[models.Status]int) map[models.Status]int {
	full := make(map[models.Status]int, len(models.AllStatuses()))
	for _, status := range models.AllStatuses() {
		full[status] = counts[status]
	}
	return full
}

// observe records metrics and, on full disclosure, an audit event. A denied
// verdict is the expected silent outcome of the policy, never an anomaly.
func (s *Service) observe(ctx context.Context, req ListRequest, verdict policy.Verdict, payload *models.ListPayload) {
	outcome := "denied"
	if verdict.ShowFull() {
		outcome = "full"
	} else if verdict.CanView() {
		outcome = "masked"
	}
	if s.metrics != nil {
		s.metrics.VolunteerLists.WithLabelValues(outcome).Inc()
		if verdict.ShowFull() {
			s.metrics.PhoneReveals.Add(float64(len(payload.Data)))
		}
	}

	if !verdict.ShowFull() || len(payload.Data) == 0 || s.auditPublisher == nil {
		return
	}
	event := audit.Event{
		Action:    audit.ActionPhoneDisclosed,
		ActorID:   req.Actor.ID.String(),
		ActorRole: string(req.Actor.Role),
		RowCount:  len(payload.Data),
		RequestID: middleware.GetRequestID(ctx),
	}
	if req.Filters.GridID != nil {
		event.GridID = req.Filters.GridID.String()
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
	}
}
