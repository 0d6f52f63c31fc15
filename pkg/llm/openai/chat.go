package openai

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/000alen/ontology/pkg/llm"
)

func (c *Client) completions(ctx context.Context, operation string, body openai.ChatCompletionNewParams) (string, error) {
	rCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	response, err := c.API.Chat.Completions.New(rCtx, body)
	if err != nil {
		c.record(operation, "error", start)
		return "", err
	}
	c.record(operation, "success", start)

	c.addUsage(llm.ModelMetrics{
		InputTokens:  int(response.Usage.PromptTokens),
		OutputTokens: int(response.Usage.CompletionTokens),
		TotalTokens:  int(response.Usage.TotalTokens),
		DurationMs:   time.Since(start).Milliseconds(),
	})
	c.recordTokens(int(response.Usage.PromptTokens), int(response.Usage.CompletionTokens))

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices in response from model")
	}
	return response.Choices[0].Message.Content, nil
}

func buildMessages(systemPrompts []string, prompt string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(systemPrompts)+1)
	for _, sp := range systemPrompts {
		msgs = append(msgs, openai.SystemMessage(sp))
	}
	msgs = append(msgs, openai.UserMessage(prompt))
	return msgs
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

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(options.Model),
		Messages:    buildMessages(options.SystemPrompts, prompt),
		Temperature: openai.Float(options.Temperature),
	}

	content, err := c.completions(ctx, "completion", body)
	if err != nil {
		return "", fmt.Errorf("openai: completion: %w", err)
	}
	return content, nil
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
		return errors.New("openai: out must be a non-nil pointer")
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.New("openai: out must be a non-nil pointer")
	}

	schema := llm.GenerateSchema(out)
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        name,
		Description: openai.String(description),
		Schema:      schema,
		Strict:      openai.Bool(true),
	}

	options := llm.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	body := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(options.Model),
		Messages: buildMessages(options.SystemPrompts, prompt),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
		Temperature: openai.Float(options.Temperature),
	}

	content, err := c.completions(ctx, "completion_format", body)
	if err != nil {
		return fmt.Errorf("openai: completion %s: %w", name, err)
	}
	if content == "" {
		return fmt.Errorf("openai: completion %s: empty response from model", name)
	}
	return llm.UnmarshalFlexible(content, out)
}
