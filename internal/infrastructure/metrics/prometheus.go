package metrics

import (
	"net/http"

	"go-clinic-access/internal/authz"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Identity cache lookup results
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds the access-control collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	DecisionsTotal     *prometheus.CounterVec
	IdentityCacheTotal *prometheus.CounterVec
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		DecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_access_decisions_total",
				Help: "Total number of authorization decisions",
			},
			[]string{"outcome", "reason"},
		),
		IdentityCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_access_identity_cache_total",
				Help: "Total number of identity cache lookups",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(m.DecisionsTotal, m.IdentityCacheTotal)

	return m
}

func (m *Metrics) ObserveDecision(d authz.Decision) {
	outcome := "deny"
	if d.Allowed {
		outcome = "allow"
	}
	m.DecisionsTotal.WithLabelValues(outcome, d.Reason.String()).Inc()
}

func (m *Metrics) ObserveIdentityCache(result string) {
	m.IdentityCacheTotal.WithLabelValues(result).Inc()
}

// Handler exposes the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
