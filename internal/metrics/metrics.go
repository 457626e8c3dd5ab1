// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advisor",
		Name:      "recommendations_total",
		Help:      "Recommendation requests served, by outcome.",
	}, []string{"outcome"})

	CandidatesPerRequest = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "advisor",
		Name:      "candidates_per_request",
		Help:      "Vehicles surviving the hard filters per request.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	RecommendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "advisor",
		Name:      "recommend_duration_seconds",
		Help:      "Time spent filtering, scoring and ranking.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})

	WizardTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "advisor",
		Name:      "wizard_transitions_total",
		Help:      "Wizard state transitions, by target state.",
	}, []string{"state"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "advisor",
		Name:      "active_sessions",
		Help:      "Wizard sessions held in memory by the API.",
	})

	CatalogVehicles = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "advisor",
		Name:      "catalog_vehicles",
		Help:      "Vehicles loaded into the catalog.",
	})

	CatalogDropped = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "advisor",
		Name:      "catalog_dropped_rows",
		Help:      "Source rows dropped at load for missing brand or price.",
	})
)

// Outcome labels for RecommendationsTotal.
const (
	OutcomeResults   = "results"
	OutcomeNoResults = "no_results"
)
