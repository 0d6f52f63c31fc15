package metrics

import (
	"runtime"
	"time"
)

// RecordEmbeddingTask records one finished embedding task
func (r *Registry) RecordEmbeddingTask(kind, status string, duration time.Duration) {
	r.EmbeddingTasksTotal.WithLabelValues(kind, status).Inc()
	r.EmbeddingTaskDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordMatch records a subgraph match attempt with the size of its result
func (r *Registry) RecordMatch(status string, duration time.Duration, nodes, edges int) {
	r.MatchesTotal.WithLabelValues(status).Inc()
	r.MatchDuration.Observe(duration.Seconds())
	r.MatchResultSize.WithLabelValues("node").Observe(float64(nodes))
	r.MatchResultSize.WithLabelValues("edge").Observe(float64(edges))
}

// RecordMatchCandidates records the candidate list length for one query entity
func (r *Registry) RecordMatchCandidates(count int) {
	r.MatchCandidates.Observe(float64(count))
}

// RecordPropagationRun records a completed causal propagation run
func (r *Registry) RecordPropagationRun(outcome string, passes int, duration time.Duration) {
	r.PropagationRunsTotal.WithLabelValues(outcome).Inc()
	r.PropagationPasses.Observe(float64(passes))
	r.PropagationDuration.Observe(duration.Seconds())
}

// RecordSuggestionCall records one property suggestion call
func (r *Registry) RecordSuggestionCall(status string) {
	r.SuggestionCallsTotal.WithLabelValues(status).Inc()
}

// RecordSuggestions records how a batch of suggestions split between
// accepted and rejected
func (r *Registry) RecordSuggestions(accepted, rejected int) {
	if accepted > 0 {
		r.SuggestionsTotal.WithLabelValues("accepted").Add(float64(accepted))
	}
	if rejected > 0 {
		r.SuggestionsTotal.WithLabelValues("rejected").Add(float64(rejected))
	}
}

// RecordLLMRequest records one model API call
func (r *Registry) RecordLLMRequest(provider, operation, status string, duration time.Duration) {
	r.LLMRequestsTotal.WithLabelValues(provider, operation, status).Inc()
	r.LLMRequestDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordLLMTokens adds prompt and completion token usage for one call
func (r *Registry) RecordLLMTokens(provider string, prompt, completion int) {
	if prompt > 0 {
		r.LLMTokensTotal.WithLabelValues(provider, "prompt").Add(float64(prompt))
	}
	if completion > 0 {
		r.LLMTokensTotal.WithLabelValues(provider, "completion").Add(float64(completion))
	}
}

// UpdateSystemMetrics refreshes the runtime gauges
func (r *Registry) UpdateSystemMetrics(start time.Time) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	r.UptimeSeconds.Set(time.Since(start).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(ms.Alloc))
	r.MemorySysBytes.Set(float64(ms.Sys))
}
