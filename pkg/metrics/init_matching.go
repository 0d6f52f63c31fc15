package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initMatchingMetrics() {
	r.MatchesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_matches_total",
			Help: "Total number of subgraph match attempts",
		},
		[]string{"status"},
	)

	r.MatchDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ontology_match_duration_seconds",
			Help:    "Subgraph match duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.MatchCandidates = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ontology_match_candidates",
			Help:    "Candidate list length per query entity",
			Buckets: []float64{1, 5, 10, 50, 100, 500},
		},
	)

	r.MatchResultSize = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontology_match_result_size",
			Help:    "Entities in the matched subgraph",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"entity"},
	)
}
