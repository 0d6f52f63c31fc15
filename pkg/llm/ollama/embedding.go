package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

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

	req := &api.EmbedRequest{
		Model: c.embeddingModel,
		Input: input,
	}

	start := time.Now()
	res, err := c.API.Embed(rCtx, req)
	if err != nil {
		c.record("embedding", "error", start)
		return nil, fmt.Errorf("ollama: embed: %w", err)
	}
	c.record("embedding", "success", start)

	c.addUsage(llm.ModelMetrics{
		InputTokens: res.PromptEvalCount,
		TotalTokens: res.PromptEvalCount,
		DurationMs:  res.TotalDuration.Milliseconds(),
	})
	c.recordTokens(res.PromptEvalCount, 0)

	if len(res.Embeddings) == 0 {
		return nil, fmt.Errorf("ollama: embed: empty response for model %s", c.embeddingModel)
	}

	vec := make([]float64, 0, len(res.Embeddings[0]))
	for _, v := range res.Embeddings[0] {
		vec = append(vec, float64(v))
	}
	return llm.ConformDimensions(vec, c.dimensions), nil
}
