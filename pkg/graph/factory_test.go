package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/000alen/ontology/pkg/logging"
	"github.com/000alen/ontology/pkg/pubsub"
)

// gateEmbedder blocks every Embed call until released.
type gateEmbedder struct {
	release chan struct{}
	inner   Embedder
}

func (g *gateEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	select {
	case <-g.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return g.inner.Embed(ctx, text)
}

// failEmbedder always fails.
type failEmbedder struct{}

func (failEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("model unavailable")
}

func newTestFactory(t *testing.T, embedder Embedder, events *pubsub.Bus) *Factory {
	t.Helper()
	f, err := NewFactory(FactoryParams{
		Embedder: embedder,
		Events:   events,
		Logger:   logging.NewNopLogger(),
	})
	if err != nil {
		t.Fatalf("NewFactory: %v", err)
	}
	return f
}

// TestFactoryRequiresEmbedder tests constructor validation
func TestFactoryRequiresEmbedder(t *testing.T) {
	if _, err := NewFactory(FactoryParams{}); err == nil {
		t.Error("expected error for missing embedder")
	}
}

// TestFactoryEmbedsEntities tests the full async embedding lifecycle
func TestFactoryEmbedsEntities(t *testing.T) {
	ctx := context.Background()
	f := newTestFactory(t, NewStaticEmbedder(16), nil)

	pressure := f.CreateProperty(ctx, "pressure", "operating pressure")
	pump := f.CreateNode(ctx, "pump", "feed pump", pressure)
	tank := f.CreateNode(ctx, "tank", "storage tank")
	feeds := f.CreateEdge(ctx, "feeds", "pump fills tank", pump, tank)
	g := f.CreateGraph([]*Node{pump, tank}, []*Edge{feeds})

	if err := f.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if err := g.AwaitReady(ctx); err != nil {
		t.Fatalf("AwaitReady: %v", err)
	}

	for name, get := range map[string]func() ([]float64, bool){
		"property": pressure.Embedding,
		"pump":     pump.Embedding,
		"tank":     tank.Embedding,
		"edge":     feeds.Embedding,
	} {
		vec, ok := get()
		if !ok {
			t.Errorf("%s embedding not resolved", name)
			continue
		}
		if len(vec) != 16 {
			t.Errorf("%s embedding dimension = %d, want 16", name, len(vec))
		}
	}

	if feeds.SourceID != pump.ID || feeds.TargetID != tank.ID {
		t.Errorf("edge endpoints = %s -> %s", feeds.SourceID, feeds.TargetID)
	}
}

// TestFactoryEmbeddingIsAsync tests that construction returns before embedding resolves
func TestFactoryEmbeddingIsAsync(t *testing.T) {
	ctx := context.Background()
	gate := &gateEmbedder{release: make(chan struct{}), inner: NewStaticEmbedder(8)}
	f := newTestFactory(t, gate, nil)

	n := f.CreateNode(ctx, "slow", "embedding still in flight")

	// Construction returned; the embedding must still be pending
	if _, ok := n.Embedding(); ok {
		t.Fatal("embedding resolved before the embedder returned")
	}

	close(gate.release)
	if err := n.AwaitReady(ctx); err != nil {
		t.Fatalf("AwaitReady: %v", err)
	}
	if _, ok := n.Embedding(); !ok {
		t.Error("embedding not resolved after release")
	}
}

// TestFactoryAwaitRespectsContext tests that AwaitReady honors cancellation
func TestFactoryAwaitRespectsContext(t *testing.T) {
	gate := &gateEmbedder{release: make(chan struct{}), inner: NewStaticEmbedder(8)}
	f := newTestFactory(t, gate, nil)

	n := f.CreateNode(context.Background(), "stuck", "never released")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := n.AwaitReady(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("AwaitReady err = %v, want deadline exceeded", err)
	}

	close(gate.release)
	if err := f.Wait(context.Background()); err != nil {
		t.Fatalf("Wait after release: %v", err)
	}
}

// TestFactoryEmbedFailure tests that failures leave the slot permanently unset
func TestFactoryEmbedFailure(t *testing.T) {
	ctx := context.Background()
	f := newTestFactory(t, failEmbedder{}, nil)

	n := f.CreateNode(ctx, "doomed", "this embedding fails")
	if err := f.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if _, ok := n.Embedding(); ok {
		t.Error("failed embedding reported as resolved")
	}
	err := n.AwaitReady(ctx)
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("AwaitReady err = %v, want ErrEmbeddingFailed", err)
	}

	// The graph-level wait surfaces the failure but stays usable
	g := f.CreateGraph([]*Node{n}, nil)
	if err := g.AwaitReady(ctx); !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("graph AwaitReady err = %v, want ErrEmbeddingFailed", err)
	}
}

// TestFactoryPublishesEvents tests embedding completion events
func TestFactoryPublishesEvents(t *testing.T) {
	ctx := context.Background()
	bus := pubsub.NewBus()
	defer bus.Shutdown()

	sub, err := bus.Subscribe(ctx, pubsub.TopicEmbedding)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Unsubscribe()

	f := newTestFactory(t, NewStaticEmbedder(8), bus)
	n := f.CreateNode(ctx, "observed", "publishes completion")
	if err := f.Wait(ctx); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	select {
	case event := <-sub.Channel():
		done, ok := event.Payload.(pubsub.EmbeddingCompleted)
		if !ok {
			t.Fatalf("payload type = %T", event.Payload)
		}
		if done.Kind != "node" || done.ID != string(n.ID) || done.Error != "" {
			t.Errorf("event payload = %+v", done)
		}
	case <-time.After(time.Second):
		t.Fatal("no embedding event delivered")
	}
}

// TestStaticEmbedderDeterminism tests the fallback embedder contract
func TestStaticEmbedderDeterminism(t *testing.T) {
	e := NewStaticEmbedder(32)
	ctx := context.Background()

	a1, err := e.Embed(ctx, "compressor: inlet compressor")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	a2, _ := e.Embed(ctx, "compressor: inlet compressor")
	b, _ := e.Embed(ctx, "terminal: delivery terminal")

	if len(a1) != 32 {
		t.Fatalf("dimension = %d, want 32", len(a1))
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatal("same text produced different embeddings")
		}
	}

	same := true
	for i := range a1 {
		if a1[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical embeddings")
	}

	// Unit length within tolerance
	var sum float64
	for _, v := range a1 {
		sum += v * v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("squared norm = %v, want ~1", sum)
	}
}
