package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	GuardDecisionsTotal  *prometheus.CounterVec
	InvitesIssuedTotal   *prometheus.CounterVec
	InvitesAcceptedTotal *prometheus.CounterVec
	TenantsCreatedTotal  prometheus.Counter
	InvitesLapsedTotal   prometheus.Counter

	registry *prometheus.Registry
}

// NewMetrics creates and registers all metrics on registry. A nil registry
// gets a fresh one with the Go and process collectors.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careers_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "careers_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GuardDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careers_guard_decisions_total",
				Help: "Access guard decisions by outcome",
			},
			[]string{"outcome"},
		),
		InvitesIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careers_invites_issued_total",
				Help: "Invites issued by role",
			},
			[]string{"role"},
		),
		InvitesAcceptedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "careers_invite_acceptances_total",
				Help: "Invite acceptance attempts by outcome",
			},
			[]string{"outcome"},
		),
		TenantsCreatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "careers_tenants_created_total",
				Help: "Tenants created",
			},
		),
		InvitesLapsedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "careers_invites_lapsed_total",
				Help: "Expired invites stamped as lapsed by the sweeper",
			},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GuardDecisionsTotal,
		m.InvitesIssuedTotal,
		m.InvitesAcceptedTotal,
		m.TenantsCreatedTotal,
		m.InvitesLapsedTotal,
	)

	return m
}

// Registry returns the registry the metrics were registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) GuardDecision(outcome string) {
	m.GuardDecisionsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) InviteIssued(role string) {
	m.InvitesIssuedTotal.WithLabelValues(role).Inc()
}

func (m *Metrics) InviteAccepted(outcome string) {
	m.InvitesAcceptedTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TenantCreated() {
	m.TenantsCreatedTotal.Inc()
}

func (m *Metrics) InvitesLapsed(n int64) {
	if n > 0 {
		m.InvitesLapsedTotal.Add(float64(n))
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Unwrap() http.ResponseWriter { return rw.ResponseWriter }

// Instrument records request count and latency for h under route. The route
// is the mux pattern, never the raw path, so slugs do not explode label
// cardinality.
func (m *Metrics) Instrument(route string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		h.ServeHTTP(rw, r)

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
