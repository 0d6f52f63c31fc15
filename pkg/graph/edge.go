package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Edge represents a directed, typed relationship between two nodes. Endpoints
// are referenced by id and may dangle; lookups against a graph that lacks the
// endpoint simply miss. Self-loops are legal.
type Edge struct {
	ID          EdgeID
	Name        string
	Description string
	SourceID    NodeID
	TargetID    NodeID
	Properties  []*Property

	embedding *embedding
}

// RestoreEdge rebuilds an edge from stored fields. A non-nil embedding is
// attached as already resolved.
func RestoreEdge(id EdgeID, name, description string, source, target NodeID, properties []*Property, vec []float64) *Edge {
	e := &Edge{
		ID:          id,
		Name:        name,
		Description: description,
		SourceID:    source,
		TargetID:    target,
		Properties:  properties,
	}
	if vec != nil {
		e.embedding = resolvedEmbedding(vec)
	}
	return e
}

// EmbeddingText is the canonical text this edge is embedded from, mirroring
// Node: name and description, then each property's text.
func (e *Edge) EmbeddingText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Name, e.Description)
	for _, p := range e.Properties {
		b.WriteByte('\n')
		b.WriteString(p.EmbeddingText())
	}
	return b.String()
}

// IsSelfLoop reports whether the edge starts and ends on the same node.
func (e *Edge) IsSelfLoop() bool {
	return e.SourceID == e.TargetID
}

// Embedding returns the edge's vector without blocking.
func (e *Edge) Embedding() ([]float64, bool) {
	return e.embedding.value()
}

// AwaitReady blocks until the edge's own embedding resolves or ctx ends.
func (e *Edge) AwaitReady(ctx context.Context) error {
	return e.embedding.await(ctx)
}

type edgeJSON struct {
	ID          EdgeID      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Source      NodeID      `json:"source"`
	Target      NodeID      `json:"target"`
	Properties  []*Property `json:"properties,omitempty"`
	Embedding   []float64   `json:"embedding,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e *Edge) MarshalJSON() ([]byte, error) {
	vec, _ := e.embedding.value()
	return json.Marshal(edgeJSON{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Source:      e.SourceID,
		Target:      e.TargetID,
		Properties:  e.Properties,
		Embedding:   vec,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var dto edgeJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	*e = *RestoreEdge(dto.ID, dto.Name, dto.Description, dto.Source, dto.Target, dto.Properties, dto.Embedding)
	return nil
}
