package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// VolunteerLists counts list requests by visibility outcome
	// (full, denied).
	VolunteerLists *prometheus.CounterVec

	// PhoneReveals counts individual phone numbers disclosed unmasked.
	PhoneReveals prometheus.Counter

	// LookupFailures counts failed store lookups by store name. Failures
	// deny visibility rather than erroring, so this is the only place they
	// become visible operationally besides logs.
	LookupFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VolunteerLists: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reliefops_volunteer_lists_total",
			Help: "Total volunteer list requests by phone visibility outcome",
		}, []string{"outcome"}),
		PhoneReveals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reliefops_phone_reveals_total",
			Help: "Total volunteer phone numbers disclosed in full",
		}),
		LookupFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reliefops_lookup_failures_total",
			Help: "Total failed store lookups by store",
		}, []string{"store"}),
	}
}
