package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the module
type Registry struct {
	// Embedding Metrics
	EmbeddingTasksTotal    *prometheus.CounterVec
	EmbeddingTaskDuration  *prometheus.HistogramVec
	EmbeddingTasksInFlight prometheus.Gauge

	// Matching Metrics
	MatchesTotal    *prometheus.CounterVec
	MatchDuration   prometheus.Histogram
	MatchCandidates prometheus.Histogram
	MatchResultSize *prometheus.HistogramVec

	// Propagation Metrics
	PropagationRunsTotal *prometheus.CounterVec
	PropagationPasses    prometheus.Histogram
	PropagationDuration  prometheus.Histogram
	SuggestionCallsTotal *prometheus.CounterVec
	SuggestionsTotal     *prometheus.CounterVec

	// LLM Metrics
	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec
	LLMTokensTotal     *prometheus.CounterVec

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initEmbeddingMetrics()
	r.initMatchingMetrics()
	r.initPropagationMetrics()
	r.initLLMMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
