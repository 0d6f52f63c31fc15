package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"

	"github.com/000alen/ontology/pkg/llm"
)

// Ollama truncates prompts to its default context window silently; requests
// estimated to exceed it ask for a larger num_ctx.
const (
	defaultContextWindow = 4096
	promptOverhead       = 200
)

// contextTokens estimates the token count of prompt for num_ctx sizing.
// Best-effort: when the encoding is unavailable the default window stands.
func contextTokens(prompt string) int {
	enc, err := tiktoken.GetEncoding("o200k_base")
	if err != nil {
		return 0
	}
	return promptOverhead + len(enc.Encode(prompt, nil, nil))
}

func (c *Client) chat(ctx context.Context, req *api.ChatRequest) (api.ChatResponse, error) {
	rCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var final api.ChatResponse
	err := c.API.Chat(rCtx, req, func(cr api.ChatResponse) error {
		final.Message.Content += cr.Message.Content
		if cr.Done {
			final.Done = true
			final.Metrics = cr.Metrics
		}
		return nil
	})
	if err != nil {
		return final, err
	}

	c.addUsage(llm.ModelMetrics{
		InputTokens:  final.Metrics.PromptEvalCount,
		OutputTokens: final.Metrics.EvalCount,
		TotalTokens:  final.Metrics.PromptEvalCount + final.Metrics.EvalCount,
		DurationMs:   final.Metrics.TotalDuration.Milliseconds(),
	})
	c.recordTokens(final.Metrics.PromptEvalCount, final.Metrics.EvalCount)
	return final, nil
}

// GenerateCompletion sends a single-turn prompt and returns the assistant
// text.
func (c *Client) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...llm.GenerateOption,
) (string, error) {
	options := llm.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if tokens := contextTokens(prompt); tokens > defaultContextWindow {
		req.Options["num_ctx"] = tokens
	}

	start := time.Now()
	final, err := c.chat(ctx, req)
	if err != nil {
		c.record("completion", "error", start)
		return "", fmt.Errorf("ollama: completion: %w", err)
	}
	c.record("completion", "success", start)

	return final.Message.Content, nil
}

// GenerateCompletionWithFormat enforces a JSON schema derived from out's type
// and unmarshals the response into out.
func (c *Client) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...llm.GenerateOption,
) error {
	if out == nil {
		return errors.New("ollama: out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("ollama: out must be a non-nil pointer")
	}

	schema := llm.GenerateSchema(out)
	formatBytes, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("ollama: marshal schema %s: %w", name, err)
	}

	options := llm.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := make([]api.Message, 0, len(options.SystemPrompts)+1)
	for _, sys := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sys})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Format:   json.RawMessage(formatBytes),
		Options:  map[string]any{"temperature": options.Temperature},
	}
	if tokens := contextTokens(prompt); tokens > defaultContextWindow {
		req.Options["num_ctx"] = tokens
	}

	start := time.Now()
	final, err := c.chat(ctx, req)
	if err != nil {
		c.record("completion_format", "error", start)
		return fmt.Errorf("ollama: completion %s: %w", name, err)
	}
	c.record("completion_format", "success", start)

	return llm.UnmarshalFlexible(final.Message.Content, out)
}
