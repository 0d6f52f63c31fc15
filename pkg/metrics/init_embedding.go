package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEmbeddingMetrics() {
	r.EmbeddingTasksTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "ontology_embedding_tasks_total",
			Help: "Total number of finished embedding tasks",
		},
		[]string{"kind", "status"},
	)

	r.EmbeddingTaskDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ontology_embedding_task_duration_seconds",
			Help:    "Embedding task duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
		},
		[]string{"kind"},
	)

	r.EmbeddingTasksInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "ontology_embedding_tasks_in_flight",
			Help: "Number of embedding tasks currently pending",
		},
	)
}
