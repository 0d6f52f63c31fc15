package graph

import (
	"context"
)

// Embedder turns a piece of text into a vector. Implementations live outside
// the core; pkg/llm ships Ollama and OpenAI backed ones and StaticEmbedder
// provides a deterministic in-process fallback.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// embedding is a set-once async slot. The factory resolves it exactly once;
// after the done channel closes, vec and err are immutable.
type embedding struct {
	done chan struct{}
	vec  []float64
	err  error
}

func pendingEmbedding() *embedding {
	return &embedding{done: make(chan struct{})}
}

func resolvedEmbedding(vec []float64) *embedding {
	e := &embedding{done: make(chan struct{}), vec: vec}
	close(e.done)
	return e
}

// resolve publishes the outcome. Must be called at most once.
func (e *embedding) resolve(vec []float64, err error) {
	e.vec = vec
	e.err = err
	close(e.done)
}

// value returns the vector without blocking. ok is false while the slot is
// pending, when the slot was never attached, or when embedding failed.
func (e *embedding) value() ([]float64, bool) {
	if e == nil {
		return nil, false
	}
	select {
	case <-e.done:
		return e.vec, e.vec != nil
	default:
		return nil, false
	}
}

// await blocks until the slot resolves or the context ends. It returns the
// embedding error, if any; an unattached slot resolves immediately to nil.
func (e *embedding) await(ctx context.Context) error {
	if e == nil {
		return nil
	}
	select {
	case <-e.done:
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
