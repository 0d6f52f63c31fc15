package pubsub

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrBusClosed is returned when subscribing to a bus after Shutdown.
var ErrBusClosed = errors.New("event bus is closed")

// Topic identifies an event stream.
type Topic string

const (
	// TopicEmbedding carries EmbeddingCompleted payloads, one per entity
	// whose embedding task finished (successfully or not).
	TopicEmbedding Topic = "embedding"
	// TopicInferProgress carries InferPass payloads, one per completed
	// propagation pass.
	TopicInferProgress Topic = "infer.progress"
	// TopicMatch carries MatchFound payloads when a subgraph match is
	// accepted.
	TopicMatch Topic = "match"
)

// Event is the envelope delivered to subscribers.
type Event struct {
	ID      string    // unique event id
	Topic   Topic     // stream the event was published on
	At      time.Time // publish time
	Payload any       // one of the payload types below
}

// EmbeddingCompleted reports the outcome of one embedding task.
type EmbeddingCompleted struct {
	Kind  string // "node", "edge" or "property"
	ID    string
	Error string // empty on success
}

// InferPass reports progress of one causal propagation pass.
type InferPass struct {
	RunID     string
	Pass      int
	Changed   bool
	Converged bool
}

// MatchFound reports an accepted subgraph match.
type MatchFound struct {
	GraphID string
	Nodes   int
	Edges   int
}

// Bus provides publish/subscribe delivery of progress events. Publishing
// never blocks; subscribers with full buffers miss events rather than stall
// the publishing engine.
type Bus struct {
	subscribers map[Topic]map[*Subscription]bool
	mu          sync.RWMutex
	shutdown    chan struct{}
	shutdownMu  sync.Mutex
	isShutdown  bool
}

// Subscription represents a subscription to a topic.
type Subscription struct {
	topic     Topic
	channel   chan Event
	bus       *Bus
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once // Ensures channel is only closed once
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[Topic]map[*Subscription]bool),
		shutdown:    make(chan struct{}),
	}
}

// Subscribe creates a new subscription to a topic. The subscription ends when
// ctx is cancelled, Unsubscribe is called, or the bus shuts down.
func (b *Bus) Subscribe(ctx context.Context, topic Topic) (*Subscription, error) {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return nil, ErrBusClosed
	}
	b.shutdownMu.Unlock()

	subCtx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		topic:   topic,
		channel: make(chan Event, 100), // Buffer for messages
		bus:     b,
		ctx:     subCtx,
		cancel:  cancel,
	}

	b.mu.Lock()
	if b.subscribers[topic] == nil {
		b.subscribers[topic] = make(map[*Subscription]bool)
	}
	b.subscribers[topic][sub] = true
	b.mu.Unlock()

	// Monitor context cancellation
	go func() {
		select {
		case <-subCtx.Done():
			sub.Unsubscribe()
		case <-b.shutdown:
			sub.close()
		}
	}()

	return sub, nil
}

// Publish wraps the payload in an Event envelope and sends it to all
// subscribers of the topic. A nil Bus is a valid no-op publisher, so engines
// can publish unconditionally.
//
// Delivery is non-blocking: subscribers whose buffers are full are skipped.
func (b *Bus) Publish(topic Topic, payload any) {
	if b == nil {
		return
	}

	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return
	}
	b.shutdownMu.Unlock()

	// Snapshot subscribers under lock; sends happen outside it so a slow
	// subscriber cannot stall Unsubscribe.
	b.mu.RLock()
	topicSubs := b.subscribers[topic]
	if len(topicSubs) == 0 {
		b.mu.RUnlock()
		return
	}
	subs := make([]*Subscription, 0, len(topicSubs))
	for sub := range topicSubs {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	event := Event{
		ID:      uuid.NewString(),
		Topic:   topic,
		At:      time.Now(),
		Payload: payload,
	}

	for _, sub := range subs {
		select {
		case sub.channel <- event:
		default:
			// Channel full, skip (non-blocking)
		}
	}
}

// SubscriberCount returns the number of subscribers for a topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers[topic])
}

// Shutdown closes all subscriptions and stops the bus.
func (b *Bus) Shutdown() {
	b.shutdownMu.Lock()
	if b.isShutdown {
		b.shutdownMu.Unlock()
		return
	}
	b.isShutdown = true
	b.shutdownMu.Unlock()

	close(b.shutdown)

	b.mu.Lock()
	for topic := range b.subscribers {
		for sub := range b.subscribers[topic] {
			sub.close()
		}
		delete(b.subscribers, topic)
	}
	b.mu.Unlock()
}

// Channel returns the subscription's event channel. It closes when the
// subscription ends.
func (s *Subscription) Channel() <-chan Event {
	return s.channel
}

// Unsubscribe removes the subscription.
func (s *Subscription) Unsubscribe() {
	s.cancel()

	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()

	if s.bus.subscribers[s.topic] != nil {
		delete(s.bus.subscribers[s.topic], s)
		if len(s.bus.subscribers[s.topic]) == 0 {
			delete(s.bus.subscribers, s.topic)
		}
	}

	s.close()
}

// close closes the subscription channel safely (idempotent)
func (s *Subscription) close() {
	s.closeOnce.Do(func() {
		close(s.channel)
	})
}
