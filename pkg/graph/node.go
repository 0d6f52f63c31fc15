package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Node represents an entity in the graph: a piece of equipment, a market, an
// organization, or any other concept. Nodes may carry properties; both the
// node and its properties are embedded independently.
type Node struct {
	ID          NodeID
	Name        string
	Description string
	Properties  []*Property

	embedding *embedding
}

// RestoreNode rebuilds a node from stored fields. A non-nil embedding is
// attached as already resolved.
func RestoreNode(id NodeID, name, description string, properties []*Property, vec []float64) *Node {
	n := &Node{ID: id, Name: name, Description: description, Properties: properties}
	if vec != nil {
		n.embedding = resolvedEmbedding(vec)
	}
	return n
}

// EmbeddingText is the canonical text this node is embedded from: the node's
// own name and description followed by each property's text, in list order.
func (n *Node) EmbeddingText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", n.Name, n.Description)
	for _, p := range n.Properties {
		b.WriteByte('\n')
		b.WriteString(p.EmbeddingText())
	}
	return b.String()
}

// Property returns the node's property with the given id, if present.
func (n *Node) Property(id PropertyID) (*Property, bool) {
	for _, p := range n.Properties {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Embedding returns the node's vector without blocking.
func (n *Node) Embedding() ([]float64, bool) {
	return n.embedding.value()
}

// AwaitReady blocks until the node's own embedding resolves or ctx ends.
// Property embeddings resolve independently.
func (n *Node) AwaitReady(ctx context.Context) error {
	return n.embedding.await(ctx)
}

type nodeJSON struct {
	ID          NodeID      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Properties  []*Property `json:"properties,omitempty"`
	Embedding   []float64   `json:"embedding,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (n *Node) MarshalJSON() ([]byte, error) {
	vec, _ := n.embedding.value()
	return json.Marshal(nodeJSON{
		ID:          n.ID,
		Name:        n.Name,
		Description: n.Description,
		Properties:  n.Properties,
		Embedding:   vec,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	var dto nodeJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	*n = *RestoreNode(dto.ID, dto.Name, dto.Description, dto.Properties, dto.Embedding)
	return nil
}
