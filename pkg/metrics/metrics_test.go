package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metric groups are initialized
	if r.EmbeddingTasksTotal == nil {
		t.Error("EmbeddingTasksTotal not initialized")
	}
	if r.MatchesTotal == nil {
		t.Error("MatchesTotal not initialized")
	}
	if r.PropagationRunsTotal == nil {
		t.Error("PropagationRunsTotal not initialized")
	}
	if r.LLMRequestsTotal == nil {
		t.Error("LLMRequestsTotal not initialized")
	}
	if r.UptimeSeconds == nil {
		t.Error("UptimeSeconds not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordEmbeddingTask(t *testing.T) {
	r := NewRegistry()

	r.RecordEmbeddingTask("node", "success", 10*time.Millisecond)
	r.RecordEmbeddingTask("node", "success", 20*time.Millisecond)
	r.RecordEmbeddingTask("edge", "error", 5*time.Millisecond)

	counter, err := r.EmbeddingTasksTotal.GetMetricWithLabelValues("node", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Success counter = %v, want 2", metric.Counter.GetValue())
	}

	errorCounter, err := r.EmbeddingTasksTotal.GetMetricWithLabelValues("edge", "error")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := errorCounter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Error counter = %v, want 1", metric.Counter.GetValue())
	}
}

func TestRecordMatch(t *testing.T) {
	r := NewRegistry()

	r.RecordMatch("found", 50*time.Millisecond, 3, 2)
	r.RecordMatch("not_found", 10*time.Millisecond, 0, 0)

	counter, err := r.MatchesTotal.GetMetricWithLabelValues("found")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 1 {
		t.Errorf("Match counter = %v, want 1", metric.Counter.GetValue())
	}

	sizes, err := r.MatchResultSize.GetMetricWithLabelValues("node")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := sizes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Node size samples = %v, want 2", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 3 {
		t.Errorf("Node size sum = %v, want 3", metric.Histogram.GetSampleSum())
	}
}

func TestRecordPropagationRun(t *testing.T) {
	r := NewRegistry()

	r.RecordPropagationRun("converged", 2, 100*time.Millisecond)
	r.RecordPropagationRun("converged", 3, 200*time.Millisecond)
	r.RecordPropagationRun("exhausted", 3, 300*time.Millisecond)

	counter, err := r.PropagationRunsTotal.GetMetricWithLabelValues("converged")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Converged counter = %v, want 2", metric.Counter.GetValue())
	}

	if err := r.PropagationPasses.Write(&metric); err != nil {
		t.Fatalf("Failed to write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 3 {
		t.Errorf("Pass samples = %v, want 3", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 8 {
		t.Errorf("Pass sum = %v, want 8", metric.Histogram.GetSampleSum())
	}
}

func TestRecordSuggestions(t *testing.T) {
	r := NewRegistry()

	r.RecordSuggestions(3, 1)
	r.RecordSuggestions(0, 2)

	accepted, err := r.SuggestionsTotal.GetMetricWithLabelValues("accepted")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := accepted.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 3 {
		t.Errorf("Accepted = %v, want 3", metric.Counter.GetValue())
	}

	rejected, err := r.SuggestionsTotal.GetMetricWithLabelValues("rejected")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := rejected.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 3 {
		t.Errorf("Rejected = %v, want 3", metric.Counter.GetValue())
	}
}

func TestRecordLLMRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordLLMRequest("ollama", "embed", "success", 80*time.Millisecond)
	r.RecordLLMRequest("ollama", "embed", "success", 90*time.Millisecond)
	r.RecordLLMRequest("openai", "suggest", "error", 40*time.Millisecond)

	counter, err := r.LLMRequestsTotal.GetMetricWithLabelValues("ollama", "embed", "success")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 2 {
		t.Errorf("Request counter = %v, want 2", metric.Counter.GetValue())
	}
}

func TestRecordLLMTokens(t *testing.T) {
	r := NewRegistry()

	r.RecordLLMTokens("openai", 120, 40)
	r.RecordLLMTokens("openai", 80, 0)

	prompt, err := r.LLMTokensTotal.GetMetricWithLabelValues("openai", "prompt")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := prompt.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 200 {
		t.Errorf("Prompt tokens = %v, want 200", metric.Counter.GetValue())
	}

	completion, err := r.LLMTokensTotal.GetMetricWithLabelValues("openai", "completion")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	if err := completion.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Counter.GetValue() != 40 {
		t.Errorf("Completion tokens = %v, want 40", metric.Counter.GetValue())
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()

	r.UpdateSystemMetrics(time.Now().Add(-time.Second))

	var metric dto.Metric
	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write gauge: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("Goroutines = %v, want >= 1", metric.Gauge.GetValue())
	}

	if err := r.UptimeSeconds.Write(&metric); err != nil {
		t.Fatalf("Failed to write gauge: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("Uptime = %v, want >= 1s", metric.Gauge.GetValue())
	}
}

func TestGatherExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordMatch("found", time.Millisecond, 1, 0)

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, family := range families {
		if family.GetName() == "ontology_matches_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("Expected ontology_matches_total in gathered families")
	}
}
