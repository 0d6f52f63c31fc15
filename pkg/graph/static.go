package graph

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
)

// StaticEmbedder is a deterministic, dependency-free Embedder. It derives a
// fixed-dimension unit vector from the text hash, so equal texts always embed
// identically. Useful for tests, examples, and offline runs; it carries no
// semantic signal.
type StaticEmbedder struct {
	dimensions int
}

// NewStaticEmbedder returns a static embedder with the given dimensions.
// Non-positive dimensions fall back to 384.
func NewStaticEmbedder(dimensions int) *StaticEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &StaticEmbedder{dimensions: dimensions}
}

// Embed returns the deterministic embedding for the text.
func (e *StaticEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	vec := make([]float64, e.dimensions)
	for i := range vec {
		vec[i] = rng.NormFloat64()
	}

	// Normalize to unit length for cosine similarity
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum > 0 {
		norm := 1.0 / math.Sqrt(sum)
		for i := range vec {
			vec[i] *= norm
		}
	}
	return vec, nil
}

// Dimensions returns the embedding dimension.
func (e *StaticEmbedder) Dimensions() int {
	return e.dimensions
}
