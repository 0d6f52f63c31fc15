package matching

import (
	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/metrics"
	"github.com/000alen/ontology/pkg/pubsub"
	"github.com/000alen/ontology/pkg/validation"
)

const (
	// DefaultN caps how many combinations each candidate product yields.
	DefaultN = 10
	// DefaultThreshold is the minimum cosine similarity for a pairing.
	DefaultThreshold = 0.5
)

// Options configures the matching engine. The zero value is usable: N falls
// back to DefaultN and GraphIDs to graph.NewGraphID, while a zero Threshold
// accepts any non-negative similarity. Use DefaultOptions for the standard
// 0.5 cutoff.
type Options struct {
	// N caps the number of combinations drawn from each candidate product.
	N int `validate:"gt=0"`
	// Threshold is the minimum cosine similarity for a candidate pairing.
	Threshold float64 `validate:"gte=-1,lte=1"`
	// GraphIDs mints ids for result graphs. Inject a deterministic source
	// in tests to assert on produced structure.
	GraphIDs func() graph.GraphID
	// Events, when set, receives MatchFound notifications.
	Events *pubsub.Bus
	// Metrics, when set, records match attempts and candidate list sizes.
	Metrics *metrics.Registry
}

// DefaultOptions returns the standard matching options.
func DefaultOptions() Options {
	return Options{
		N:         DefaultN,
		Threshold: DefaultThreshold,
		GraphIDs:  graph.NewGraphID,
	}
}

// normalized fills zero-value defaults and validates ranges.
func (o Options) normalized() (Options, error) {
	if o.N == 0 {
		o.N = DefaultN
	}
	if o.GraphIDs == nil {
		o.GraphIDs = graph.NewGraphID
	}
	if err := validation.Struct(o); err != nil {
		return o, err
	}
	return o, nil
}
