package llm

import (
	"context"
	"fmt"

	"github.com/000alen/ontology/pkg/graph"
)

// Embedder adapts a Client to the graph.Embedder interface, so graph
// factories can source embeddings from a language model provider.
type Embedder struct {
	client Client
}

// NewEmbedder returns an Embedder backed by the given client.
func NewEmbedder(client Client) (*Embedder, error) {
	if client == nil {
		return nil, fmt.Errorf("llm: client is required")
	}
	return &Embedder{client: client}, nil
}

// Embed computes the embedding vector for text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vec, err := e.client.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("llm: embed: %w", err)
	}
	return vec, nil
}

var _ graph.Embedder = (*Embedder)(nil)
