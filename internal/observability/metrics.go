// Package observability holds the Prometheus instrumentation for the
// assessment service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the assessment
// service.
type Metrics struct {
	Assessments        *prometheus.CounterVec // labels: risk_level={low,moderate,high,severe}
	ValidationFailures *prometheus.CounterVec // labels: field
	AssessmentDuration prometheus.Histogram

	GlossaryLookups *prometheus.CounterVec // labels: outcome={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soiladvisor",
			Name:      "assessments_total",
			Help:      "Completed assessments by resulting risk level.",
		}, []string{"risk_level"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soiladvisor",
			Name:      "validation_failures_total",
			Help:      "Rejected measurements by offending field.",
		}, []string{"field"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "soiladvisor",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of one classify call including validation.",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
		GlossaryLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soiladvisor",
			Name:      "glossary_lookups_total",
			Help:      "Glossary questions by match outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.Assessments,
		m.ValidationFailures,
		m.AssessmentDuration,
		m.GlossaryLookups,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Assessments:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "soiladvisor", Name: "assessments_total"}, []string{"risk_level"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "soiladvisor", Name: "validation_failures_total"}, []string{"field"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "soiladvisor", Name: "assessment_duration_seconds"}),
		GlossaryLookups:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "soiladvisor", Name: "glossary_lookups_total"}, []string{"outcome"}),
	}
}
