package causal

import (
	"context"

	"github.com/000alen/ontology/pkg/graph"
)

// Suggester proposes properties that may propagate onto a vertex given the
// state of its predecessors. Implementations are typically backed by a
// language model (see pkg/llm); tests supply deterministic fakes.
//
// Suggest is called once per vertex per pass with every contributing
// predecessor batched into a single request. It is never called with an
// empty predecessor list. A returned error is treated as "no suggestions"
// by the propagation engine unless the context has been cancelled.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestionRequest) ([]Suggestion, error)
}

// PropertyState is a property together with the confidence it currently
// carries at some vertex. Static graph properties are reported at
// confidence 1.
type PropertyState struct {
	ID          graph.PropertyID `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Confidence  float64          `json:"confidence"`
}

// PredecessorContext describes one predecessor vertex and the properties it
// is currently propagating.
type PredecessorContext struct {
	Name       string          `json:"name"`
	Properties []PropertyState `json:"properties"`
}

// EdgeContext describes a connecting edge between a contributing
// predecessor and the vertex under consideration.
type EdgeContext struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CurrentContext describes the vertex under consideration: its name, its
// static properties, and everything already propagated onto it.
type CurrentContext struct {
	Name       string          `json:"name"`
	Properties []PropertyState `json:"properties"`
}

// SuggestionRequest carries the full per-vertex context for one Suggest
// call.
type SuggestionRequest struct {
	Predecessors []PredecessorContext `json:"predecessors"`
	Edges        []EdgeContext        `json:"edges"`
	Current      CurrentContext       `json:"current"`
}

// Suggestion is a single proposed property. An empty ID asks the engine to
// mint a fresh property id; echoing the id of a predecessor property marks
// the suggestion as a propagation of that property.
type Suggestion struct {
	ID          graph.PropertyID `json:"id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Confidence  float64          `json:"confidence"`
}
