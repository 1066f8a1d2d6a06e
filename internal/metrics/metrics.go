// Package metrics exposes Prometheus collectors for the HTTP layer and the
// category resolver.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/zeitdreher-backend/internal/domain"
)

const namespace = "zeitdreher"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	reg *prometheus.Registry

	// resolutionsTotal counts resolver outcomes.
	// Labels: kind (RESOLVED, NEEDS_CONFIRMATION, NO_MATCH), match_type (EXACT, ..., none)
	resolutionsTotal *prometheus.CounterVec

	// resolutionConfidence observes the confidence of the deciding match.
	// Labels: kind
	resolutionConfidence *prometheus.HistogramVec

	// httpRequestsTotal counts handled requests.
	// Labels: method, route, status
	httpRequestsTotal *prometheus.CounterVec

	// httpRequestDuration measures handler latency.
	// Labels: method, route
	httpRequestDuration *prometheus.HistogramVec
}

// New registers all collectors, including Go runtime and process metrics, on
// a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		resolutionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "resolutions_total",
			Help:      "Category resolutions by outcome kind and match type",
		}, []string{"kind", "match_type"}),
		resolutionConfidence: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "confidence",
			Help:      "Confidence of the deciding match per resolution",
			Buckets:   []float64{0.6, 0.7, 0.8, 0.85, 0.9, 0.95, 1},
		}, []string{"kind"}),
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// RecordResolution records one resolver outcome. NoMatch outcomes carry no
// match and are labelled "none".
func (m *Metrics) RecordResolution(out *domain.Outcome) {
	if out == nil {
		return
	}
	kind := out.Kind.String()

	var match *domain.MatchResult
	switch {
	case out.Match != nil:
		match = out.Match
	case len(out.Matches) > 0:
		match = &out.Matches[len(out.Matches)-1]
	}

	if match == nil {
		m.resolutionsTotal.WithLabelValues(kind, "none").Inc()
		return
	}
	m.resolutionsTotal.WithLabelValues(kind, match.Type.String()).Inc()
	m.resolutionConfidence.WithLabelValues(kind).Observe(match.Confidence)
}

// RecordRequest records one handled HTTP request. route should be the
// matched pattern, not the raw path, to keep cardinality bounded.
func (m *Metrics) RecordRequest(method, route string, status int, d time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
