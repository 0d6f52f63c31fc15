package graph

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/000alen/ontology/pkg/logging"
	"github.com/000alen/ontology/pkg/metrics"
	"github.com/000alen/ontology/pkg/pubsub"
)

// FactoryParams configures a Factory.
type FactoryParams struct {
	// Embedder computes entity embeddings. Required.
	Embedder Embedder
	// Events receives an EmbeddingCompleted event per finished embedding
	// task. Optional.
	Events *pubsub.Bus
	// Metrics records embedding task outcomes. Optional.
	Metrics *metrics.Registry
	// Logger defaults to the package default logger.
	Logger logging.Logger
}

// Factory constructs graph entities and owns their embedding lifecycle. Every
// Create call returns immediately with the embedding still pending; one
// background task per entity resolves it exactly once. Callers that need
// embeddings block explicitly via AwaitReady on the entity, or Wait on the
// factory.
//
// An embedding failure is logged and leaves the slot permanently unset; the
// factory never retries.
type Factory struct {
	embedder Embedder
	events   *pubsub.Bus
	metrics  *metrics.Registry
	logger   logging.Logger
	wg       sync.WaitGroup
}

// NewFactory creates a factory around the given embedder.
func NewFactory(params FactoryParams) (*Factory, error) {
	if params.Embedder == nil {
		return nil, errors.New("graph: factory requires an embedder")
	}
	logger := params.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Factory{
		embedder: params.Embedder,
		events:   params.Events,
		metrics:  params.Metrics,
		logger:   logger,
	}, nil
}

// CreateProperty constructs a property and kicks off its embedding task.
func (f *Factory) CreateProperty(ctx context.Context, name, description string) *Property {
	p := &Property{
		ID:          NewPropertyID(),
		Name:        name,
		Description: description,
		embedding:   pendingEmbedding(),
	}
	f.embed(ctx, "property", string(p.ID), p.EmbeddingText(), p.embedding)
	return p
}

// CreateNode constructs a node and kicks off its embedding task. The node's
// embedding text includes the property texts, so attach properties here
// rather than mutating the node afterwards.
func (f *Factory) CreateNode(ctx context.Context, name, description string, properties ...*Property) *Node {
	n := &Node{
		ID:          NewNodeID(),
		Name:        name,
		Description: description,
		Properties:  properties,
		embedding:   pendingEmbedding(),
	}
	f.embed(ctx, "node", string(n.ID), n.EmbeddingText(), n.embedding)
	return n
}

// CreateEdge constructs a directed edge between two existing nodes and kicks
// off its embedding task. Both endpoints must be non-nil; use RestoreEdge to
// rebuild edges whose endpoints are known only by id.
func (f *Factory) CreateEdge(ctx context.Context, name, description string, source, target *Node, properties ...*Property) *Edge {
	e := &Edge{
		ID:          NewEdgeID(),
		Name:        name,
		Description: description,
		SourceID:    source.ID,
		TargetID:    target.ID,
		Properties:  properties,
		embedding:   pendingEmbedding(),
	}
	f.embed(ctx, "edge", string(e.ID), e.EmbeddingText(), e.embedding)
	return e
}

// CreateGraph assembles a graph under a fresh id. Graphs carry no embedding.
func (f *Factory) CreateGraph(nodes []*Node, edges []*Edge) *Graph {
	return New(NewGraphID(), nodes, edges)
}

// Wait blocks until every embedding task spawned so far has settled, or ctx
// ends. Individual failures do not surface here; inspect entities or listen
// on the event bus for those.
func (f *Factory) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Factory) embed(ctx context.Context, kind, id, text string, slot *embedding) {
	f.wg.Add(1)
	if f.metrics != nil {
		f.metrics.EmbeddingTasksInFlight.Inc()
	}
	go func() {
		start := time.Now()
		defer f.wg.Done()
		if f.metrics != nil {
			defer f.metrics.EmbeddingTasksInFlight.Dec()
		}

		vec, err := f.embedder.Embed(ctx, text)
		if err != nil {
			f.logger.Warn("embedding failed",
				logging.String("kind", kind),
				logging.String("id", id),
				logging.Error(err))
			slot.resolve(nil, fmt.Errorf("%w: %s %s: %v", ErrEmbeddingFailed, kind, id, err))
			if f.metrics != nil {
				f.metrics.RecordEmbeddingTask(kind, "error", time.Since(start))
			}
			f.events.Publish(pubsub.TopicEmbedding, pubsub.EmbeddingCompleted{
				Kind: kind, ID: id, Error: err.Error(),
			})
			return
		}

		slot.resolve(vec, nil)
		if f.metrics != nil {
			f.metrics.RecordEmbeddingTask(kind, "success", time.Since(start))
		}
		f.events.Publish(pubsub.TopicEmbedding, pubsub.EmbeddingCompleted{
			Kind: kind, ID: id,
		})
	}()
}
