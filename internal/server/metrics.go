package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Metrics counts submissions and the fields that fail validation.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	fieldErrors *prometheus.CounterVec
	reloads     *prometheus.CounterVec
}

// NewMetrics registers the collectors on a private registry.
func NewMetrics(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_submissions_total",
				Help: "Validated form submissions by outcome",
			},
			[]string{"source", "outcome"},
		),
		fieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_field_errors_total",
				Help: "Validation messages produced, by field",
			},
			[]string{"field"},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_schema_reloads_total",
				Help: "Schema file reloads by result",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.submissions, m.fieldErrors, m.reloads)
	return m
}

// Observe records one validated submission.
func (m *Metrics) Observe(source string, result *validation.Result) {
	outcome := "valid"
	if !result.IsValid() {
		outcome = "invalid"
	}
	m.submissions.WithLabelValues(source, outcome).Inc()
	for _, id := range result.FieldsInError() {
		m.fieldErrors.WithLabelValues(id).Add(float64(len(result.FieldErrors(id))))
	}
}

// ObserveReload records a schema reload attempt.
func (m *Metrics) ObserveReload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
