package graph

import (
	"context"
	"encoding/json"
	"fmt"
)

// Property represents a scalar attribute attached to a node or an edge, such
// as "pressure: high" on a pipeline segment. Properties carry their own
// embedding so attribute semantics participate in similarity scoring.
type Property struct {
	ID          PropertyID
	Name        string
	Description string

	embedding *embedding
}

// RestoreProperty rebuilds a property from stored fields. A non-nil embedding
// is attached as already resolved; a nil one leaves the property unembedded.
func RestoreProperty(id PropertyID, name, description string, vec []float64) *Property {
	p := &Property{ID: id, Name: name, Description: description}
	if vec != nil {
		p.embedding = resolvedEmbedding(vec)
	}
	return p
}

// EmbeddingText is the canonical text this property is embedded from.
func (p *Property) EmbeddingText() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Description)
}

// Embedding returns the property's vector without blocking. ok is false until
// the factory resolves it, or permanently if embedding failed or was never
// requested.
func (p *Property) Embedding() ([]float64, bool) {
	return p.embedding.value()
}

// AwaitReady blocks until the embedding resolves or ctx ends. It returns the
// embedding error, if any.
func (p *Property) AwaitReady(ctx context.Context) error {
	return p.embedding.await(ctx)
}

type propertyJSON struct {
	ID          PropertyID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Embedding   []float64  `json:"embedding,omitempty"`
}

// MarshalJSON implements json.Marshaler. The embedding is included only once
// resolved.
func (p *Property) MarshalJSON() ([]byte, error) {
	vec, _ := p.embedding.value()
	return json.Marshal(propertyJSON{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Embedding:   vec,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Property) UnmarshalJSON(data []byte) error {
	var dto propertyJSON
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	*p = *RestoreProperty(dto.ID, dto.Name, dto.Description, dto.Embedding)
	return nil
}
