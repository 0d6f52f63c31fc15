// Package llm defines the provider-agnostic language model surface the graph
// engines depend on: plain completions, schema-constrained structured output,
// and text embeddings. The ollama and openai subpackages implement it; this
// package also ships the adapters that turn a Client into a graph.Embedder
// and a causal.Suggester.
package llm

import "context"

// GenerateOptions holds configuration for generation requests.
type GenerateOptions struct {
	Model         string   // model identifier, falls back to the client's configured model
	SystemPrompts []string // system prompts prepended to the request
	Temperature   float64  // sampling temperature
}

// GenerateOption is a functional option for configuring generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel sets the model to use for a single request.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts sets the system prompts prepended to the request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature sets the sampling temperature. Lower values make output
// more deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ModelMetrics accumulates token usage and timing across requests.
type ModelMetrics struct {
	InputTokens     int     `json:"input_tokens"`
	OutputTokens    int     `json:"output_tokens"`
	TotalTokens     int     `json:"total_tokens"`
	DurationMs      int64   `json:"duration_ms"`
	TokensPerSecond float64 `json:"tokens_per_second"`
}

// Client is the language model interface the engines consume. GenerateEmbedding
// returns float64 vectors ready for the similarity kernels.
type Client interface {
	GenerateCompletion(
		ctx context.Context,
		prompt string,
		opts ...GenerateOption,
	) (string, error)
	GenerateCompletionWithFormat(
		ctx context.Context,
		name string,
		description string,
		prompt string,
		out any,
		opts ...GenerateOption,
	) error

	GenerateEmbedding(ctx context.Context, input string) ([]float64, error)

	ResetMetrics()
	GetMetrics() ModelMetrics
}
