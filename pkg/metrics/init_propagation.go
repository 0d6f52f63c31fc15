package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPropagationMetrics() {
	r.PropagationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_propagation_runs_total",
			Help: "Total number of causal propagation runs",
		},
		[]string{"outcome"},
	)

	r.PropagationPasses = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ontology_propagation_passes",
			Help:    "Propagation passes per run",
			Buckets: []float64{1, 2, 3, 5, 10},
		},
	)

	r.PropagationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ontology_propagation_duration_seconds",
			Help:    "Propagation run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0},
		},
	)

	r.SuggestionCallsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_suggestion_calls_total",
			Help: "Total number of property suggestion calls",
		},
		[]string{"status"},
	)

	r.SuggestionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_suggestions_total",
			Help: "Total number of property suggestions by disposition",
		},
		[]string{"disposition"},
	)
}
