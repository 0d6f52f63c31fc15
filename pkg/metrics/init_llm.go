package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initLLMMetrics() {
	r.LLMRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_llm_requests_total",
			Help: "Total number of model API requests",
		},
		[]string{"provider", "operation", "status"},
	)

	r.LLMRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontology_llm_request_duration_seconds",
			Help:    "Model API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0},
		},
		[]string{"provider", "operation"},
	)

	r.LLMTokensTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_llm_tokens_total",
			Help: "Total number of tokens exchanged with model APIs",
		},
		[]string{"provider", "kind"},
	)
}
