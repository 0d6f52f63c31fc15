package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"

	"github.com/000alen/ontology/pkg/llm"
)

// GenerateEmbedding creates a vector embedding for the input text using the
// configured embedding model. Blank input yields a zero vector without a
// request; results are conformed to the configured dimensions.
func (c *Client) GenerateEmbedding(ctx context.Context, input string) ([]float64, error) {
	if strings.TrimSpace(input) == "" {
		return make([]float64, c.dimensions), nil
	}

	rCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.reqLock.Acquire(rCtx, 1); err != nil {
		return nil, err
	}
	defer c.reqLock.Release(1)

	body := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{input}},
		Model: c.embeddingModel,
	}

	start := time.Now()
	response, err := c.API.Embeddings.New(rCtx, body)
	if err != nil {
		c.record("embedding", "error", start)
		return nil, fmt.Errorf("openai: embed: %w", err)
	}
	c.record("embedding", "success", start)

	c.addUsage(llm.ModelMetrics{
		InputTokens: int(response.Usage.PromptTokens),
		TotalTokens: int(response.Usage.TotalTokens),
		DurationMs:  time.Since(start).Milliseconds(),
	})
	c.recordTokens(int(response.Usage.PromptTokens), 0)

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("openai: embed: empty response for model %s", c.embeddingModel)
	}

	vec := make([]float64, len(response.Data[0].Embedding))
	copy(vec, response.Data[0].Embedding)
	return llm.ConformDimensions(vec, c.dimensions), nil
}
