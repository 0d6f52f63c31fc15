package causal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/logging"
	"github.com/000alen/ontology/pkg/metrics"
	"github.com/000alen/ontology/pkg/pubsub"
	"github.com/000alen/ontology/pkg/reachability"
	"github.com/000alen/ontology/pkg/validation"
)

// Default propagation parameters.
const (
	DefaultConfidenceThreshold = 0.15
	DefaultMaxIterations       = 3

	// convergenceTolerance bounds the per-property confidence drift still
	// treated as "unchanged" between passes.
	convergenceTolerance = 0.001
)

// Options tunes a propagation run. The zero value picks up
// DefaultMaxIterations but keeps a zero confidence threshold; use
// DefaultOptions for the standard cutoff.
type Options struct {
	// ConfidenceThreshold discards suggestions below this confidence.
	ConfidenceThreshold float64 `validate:"gte=0,lte=1"`
	// MaxIterations caps the number of propagation passes.
	MaxIterations int `validate:"gt=0"`
	// GraphIDs mints the id of the restricted working graph.
	GraphIDs func() graph.GraphID
}

// DefaultOptions returns the standard propagation parameters.
func DefaultOptions() Options {
	return Options{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		MaxIterations:       DefaultMaxIterations,
		GraphIDs:            graph.NewGraphID,
	}
}

func (o Options) normalized() (Options, error) {
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.GraphIDs == nil {
		o.GraphIDs = graph.NewGraphID
	}
	if err := validation.Struct(o); err != nil {
		return o, err
	}
	return o, nil
}

// EngineParams configures a propagation engine.
type EngineParams struct {
	// Suggester proposes property propagations. Required.
	Suggester Suggester
	// Events receives InferPass progress events. Optional.
	Events *pubsub.Bus
	// Metrics records run outcomes and suggestion traffic. Optional.
	Metrics *metrics.Registry
	// Logger defaults to the package default logger.
	Logger logging.Logger
}

// Engine runs multi-pass causal property propagation.
type Engine struct {
	suggester Suggester
	events    *pubsub.Bus
	metrics   *metrics.Registry
	logger    logging.Logger
}

// NewEngine creates a propagation engine.
func NewEngine(params EngineParams) (*Engine, error) {
	if params.Suggester == nil {
		return nil, errors.New("causal: suggester is required")
	}
	logger := params.Logger
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &Engine{
		suggester: params.Suggester,
		events:    params.Events,
		metrics:   params.Metrics,
		logger:    logger.With(logging.Component("causal")),
	}, nil
}

// PropagatedProperty is one entry in the propagation table: a property, the
// confidence it reached, and the source vertex the entry is attributed to.
type PropagatedProperty struct {
	Property   *graph.Property
	Confidence float64
	Source     graph.NodeID
}

// Prediction is the outcome for a single target vertex.
type Prediction struct {
	TargetID   graph.NodeID
	Properties []PropagatedProperty
	Confidence float64
	Reasoning  string
}

// Result is the outcome of a propagation run. A non-converged result is
// still usable; Converged reports whether the final pass left the
// propagation table unchanged.
type Result struct {
	RunID       string
	Predictions []Prediction
	Converged   bool
	Iterations  int
}

// Infer propagates properties from sources toward targets over g.
//
// The graph is first restricted to the incident subgraph between sources and
// targets; if nothing survives, every target reports a zero-confidence "no
// path" prediction. Source vertices are seeded from the intervention map at
// confidence 1. Each pass walks the non-source vertices in a
// pseudo-topological order (cycles condensed into strongly connected
// components) and asks the Suggester which properties propagate onto each
// vertex from its contributing predecessors, batching all predecessors into
// one call. Suggestions below opts.ConfidenceThreshold are discarded;
// accepted ones append to the vertex's table entry, or reinforce an existing
// entry with the rule c = c1 + c2 - c1*c2. A pass that leaves the table
// unchanged within tolerance ends the run as converged; otherwise the run
// stops after opts.MaxIterations with Converged false.
//
// Suggester failures are logged and treated as "no suggestions" unless ctx
// has been cancelled, in which case Infer returns the context error.
func (e *Engine) Infer(ctx context.Context, g *graph.Graph, sources, targets []graph.NodeID, intervention map[graph.NodeID]*graph.Property, opts Options) (*Result, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := e.logger.With(logging.String("run_id", runID))
	start := time.Now()

	restricted := reachability.Incident(g, sources, targets, reachability.Options{GraphIDs: opts.GraphIDs})
	if restricted.IsEmpty() {
		logger.Info("no causal path between sources and targets",
			logging.GraphID(string(g.ID)))
		if e.metrics != nil {
			e.metrics.RecordPropagationRun("no_path", 0, time.Since(start))
		}
		return noPathResult(runID, targets), nil
	}

	lookup := graph.NewLookup(restricted)
	order := schedule(restricted, lookup)

	isSource := make(map[graph.NodeID]bool, len(sources))
	for _, id := range sources {
		isSource[id] = true
	}

	table := make(map[graph.NodeID][]PropagatedProperty)
	for _, id := range sources {
		if !lookup.HasNode(id) {
			continue
		}
		prop := intervention[id]
		if prop == nil {
			continue
		}
		table[id] = []PropagatedProperty{{Property: prop, Confidence: 1, Source: id}}
	}

	converged := false
	iterations := 0
	for pass := 1; pass <= opts.MaxIterations; pass++ {
		iterations = pass
		before := snapshotTable(table)

		for _, v := range order {
			if isSource[v] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			preds, edges, contributors := gatherPredecessors(lookup, table, v)
			if len(contributors) == 0 {
				continue
			}
			node, ok := lookup.NodeByID(v)
			if !ok {
				continue
			}

			suggestions, err := e.suggester.Suggest(ctx, SuggestionRequest{
				Predecessors: preds,
				Edges:        edges,
				Current:      currentContext(node, table[v]),
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logger.Warn("suggestion call failed",
					logging.NodeID(string(v)),
					logging.Pass(pass),
					logging.Error(err))
				if e.metrics != nil {
					e.metrics.RecordSuggestionCall("error")
				}
				continue
			}
			if e.metrics != nil {
				e.metrics.RecordSuggestionCall("success")
			}

			accepted := 0
			for _, s := range suggestions {
				if s.Confidence < opts.ConfidenceThreshold {
					continue
				}
				applySuggestion(table, v, s, contributors)
				accepted++
			}
			if e.metrics != nil {
				e.metrics.RecordSuggestions(accepted, len(suggestions)-accepted)
			}
		}

		changed := tablesDiffer(table, before)
		converged = !changed
		e.events.Publish(pubsub.TopicInferProgress, pubsub.InferPass{
			RunID:     runID,
			Pass:      pass,
			Changed:   changed,
			Converged: converged,
		})
		logger.Debug("propagation pass complete",
			logging.Pass(pass),
			logging.Bool("changed", changed))
		if converged {
			break
		}
	}
	if !converged {
		logger.Warn("propagation did not converge",
			logging.Int("iterations", iterations))
	}

	predictions := make([]Prediction, 0, len(targets))
	for _, id := range targets {
		predictions = append(predictions, predict(id, table[id], lookup.HasNode(id), iterations, converged))
	}

	if e.metrics != nil {
		outcome := "converged"
		if !converged {
			outcome = "exhausted"
		}
		e.metrics.RecordPropagationRun(outcome, iterations, time.Since(start))
	}

	logger.Info("propagation run complete",
		logging.Int("iterations", iterations),
		logging.Bool("converged", converged),
		logging.Int("targets", len(targets)),
		logging.Latency(time.Since(start)))

	return &Result{
		RunID:       runID,
		Predictions: predictions,
		Converged:   converged,
		Iterations:  iterations,
	}, nil
}

func noPathResult(runID string, targets []graph.NodeID) *Result {
	predictions := make([]Prediction, 0, len(targets))
	for _, id := range targets {
		predictions = append(predictions, Prediction{
			TargetID:  id,
			Reasoning: "no causal path from any source",
		})
	}
	return &Result{RunID: runID, Predictions: predictions, Converged: true}
}

// gatherPredecessors collects the suggestion context for one vertex: one
// entry per contributing predecessor, the connecting edges, and the flat
// list of contributed properties used for source attribution. Predecessors
// without propagated properties contribute nothing.
func gatherPredecessors(lookup *graph.Lookup, table map[graph.NodeID][]PropagatedProperty, v graph.NodeID) ([]PredecessorContext, []EdgeContext, []PropagatedProperty) {
	var (
		preds        []PredecessorContext
		edges        []EdgeContext
		contributors []PropagatedProperty
	)
	seen := make(map[graph.NodeID]bool)
	for _, edge := range lookup.InEdges(v) {
		u := edge.SourceID
		entries := table[u]
		if len(entries) == 0 {
			continue
		}
		edges = append(edges, EdgeContext{Name: edge.Name, Description: edge.Description})
		if seen[u] {
			continue
		}
		seen[u] = true
		node, ok := lookup.NodeByID(u)
		if !ok {
			continue
		}
		preds = append(preds, PredecessorContext{
			Name:       node.Name,
			Properties: propertyStates(entries),
		})
		contributors = append(contributors, entries...)
	}
	return preds, edges, contributors
}

func propertyStates(entries []PropagatedProperty) []PropertyState {
	out := make([]PropertyState, len(entries))
	for i, entry := range entries {
		out[i] = PropertyState{
			ID:          entry.Property.ID,
			Name:        entry.Property.Name,
			Description: entry.Property.Description,
			Confidence:  entry.Confidence,
		}
	}
	return out
}

func currentContext(node *graph.Node, entries []PropagatedProperty) CurrentContext {
	props := make([]PropertyState, 0, len(node.Properties)+len(entries))
	for _, p := range node.Properties {
		props = append(props, PropertyState{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Confidence:  1,
		})
	}
	props = append(props, propertyStates(entries)...)
	return CurrentContext{Name: node.Name, Properties: props}
}

// applySuggestion folds one accepted suggestion into the vertex's table
// entry. A fresh property id is appended; a known id has its confidence
// combined with the probabilistic OR rule, re-attributing the entry when the
// incoming contribution is the stronger one.
func applySuggestion(table map[graph.NodeID][]PropagatedProperty, v graph.NodeID, s Suggestion, contributors []PropagatedProperty) {
	id := s.ID
	if id == "" {
		id = graph.NewPropertyID()
	}
	source := attributeSource(contributors, s.ID)

	entries := table[v]
	for i := range entries {
		if entries[i].Property.ID != id {
			continue
		}
		prior := entries[i].Confidence
		entries[i].Confidence = combineConfidence(prior, s.Confidence)
		if s.Confidence > prior {
			entries[i].Source = source
		}
		return
	}

	table[v] = append(entries, PropagatedProperty{
		Property:   propagatedProperty(contributors, id, s),
		Confidence: s.Confidence,
		Source:     source,
	})
}

// combineConfidence merges two independent confidence estimates with the
// probabilistic OR rule.
func combineConfidence(c1, c2 float64) float64 {
	return c1 + c2 - c1*c2
}

// attributeSource picks the vertex a contribution is attributed to: the
// origin of the strongest contributed property with the same id, falling
// back to the origin of the strongest contribution overall.
func attributeSource(contributors []PropagatedProperty, id graph.PropertyID) graph.NodeID {
	best := -1
	for i := range contributors {
		if contributors[i].Property.ID != id {
			continue
		}
		if best < 0 || contributors[i].Confidence > contributors[best].Confidence {
			best = i
		}
	}
	if best < 0 {
		for i := range contributors {
			if best < 0 || contributors[i].Confidence > contributors[best].Confidence {
				best = i
			}
		}
	}
	if best < 0 {
		return ""
	}
	return contributors[best].Source
}

// propagatedProperty reuses the contributed property value when its id is
// already known upstream, so propagation preserves property identity.
func propagatedProperty(contributors []PropagatedProperty, id graph.PropertyID, s Suggestion) *graph.Property {
	for i := range contributors {
		if contributors[i].Property.ID == id {
			return contributors[i].Property
		}
	}
	return graph.RestoreProperty(id, s.Name, s.Description, nil)
}

func snapshotTable(table map[graph.NodeID][]PropagatedProperty) map[graph.NodeID][]PropagatedProperty {
	out := make(map[graph.NodeID][]PropagatedProperty, len(table))
	for id, entries := range table {
		cp := make([]PropagatedProperty, len(entries))
		copy(cp, entries)
		out[id] = cp
	}
	return out
}

// tablesDiffer compares two table snapshots by vertex and property id.
// Entries are append-only within a run, so positional comparison is exact.
func tablesDiffer(after, before map[graph.NodeID][]PropagatedProperty) bool {
	if len(after) != len(before) {
		return true
	}
	for id, ae := range after {
		be, ok := before[id]
		if !ok || len(ae) != len(be) {
			return true
		}
		for i := range ae {
			if ae[i].Property.ID != be[i].Property.ID {
				return true
			}
			if math.Abs(ae[i].Confidence-be[i].Confidence) > convergenceTolerance {
				return true
			}
		}
	}
	return false
}

func predict(id graph.NodeID, entries []PropagatedProperty, reachable bool, iterations int, converged bool) Prediction {
	if !reachable {
		return Prediction{TargetID: id, Reasoning: "no causal path from any source"}
	}
	props := make([]PropagatedProperty, len(entries))
	copy(props, entries)
	return Prediction{
		TargetID:   id,
		Properties: props,
		Confidence: aggregateConfidence(entries),
		Reasoning:  describeRun(iterations, converged, entries),
	}
}

// aggregateConfidence folds the per-property confidences into one score via
// their geometric mean. A single entry passes through unchanged; no entries
// yield zero.
func aggregateConfidence(entries []PropagatedProperty) float64 {
	if len(entries) == 0 {
		return 0
	}
	if len(entries) == 1 {
		return entries[0].Confidence
	}
	confidences := make([]float64, len(entries))
	for i, entry := range entries {
		confidences[i] = entry.Confidence
	}
	return stat.GeometricMean(confidences, nil)
}

func describeRun(iterations int, converged bool, entries []PropagatedProperty) string {
	var b strings.Builder
	if converged {
		b.WriteString("converged after ")
	} else {
		b.WriteString("no convergence within ")
	}
	b.WriteString(passes(iterations))
	if len(entries) == 0 {
		b.WriteString("; no properties propagated")
		return b.String()
	}

	counts := make(map[graph.NodeID]int)
	for _, entry := range entries {
		counts[entry.Source]++
	}
	ids := make([]graph.NodeID, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	b.WriteString("; properties:")
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, " %d from %s", counts[id], id)
	}
	return b.String()
}

func passes(n int) string {
	if n == 1 {
		return "1 pass"
	}
	return fmt.Sprintf("%d passes", n)
}
