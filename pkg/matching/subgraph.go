package matching

import (
	"iter"
	"time"

	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/lazy"
	"github.com/000alen/ontology/pkg/pubsub"
)

// SimilarNodes returns a lazy sequence of whole-query node assignments: each
// element pairs every query node with one graph node, drawn from the capped
// cartesian product of the per-query-node candidate lists. Because each list
// is sorted descending, earlier assignments are more similar under
// lexicographic priority across query nodes.
func SimilarNodes(g, q *graph.Graph, opts Options) (iter.Seq[[]NodeCandidate], error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	lists, err := NodeCandidates(g, q, opts)
	if err != nil {
		return nil, err
	}
	return lazy.Take(lazy.CartesianProduct(lists), opts.N), nil
}

// SimilarEdges returns a lazy sequence of whole-query edge assignments under
// one node assignment, drawn from the capped cartesian product of the
// per-query-edge candidate lists.
func SimilarEdges(g, q *graph.Graph, assignment []NodeCandidate, opts Options) (iter.Seq[[]EdgeCandidate], error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	lists, err := EdgeCandidates(g, q, assignment, opts)
	if err != nil {
		return nil, err
	}
	return lazy.Take(lazy.CartesianProduct(lists), opts.N), nil
}

// SimilarSubGraphs composes node and edge assignment into candidate
// subgraphs of g that match q. For each node assignment: a query without
// edges yields one subgraph with an empty edge set; otherwise each edge
// assignment yields one subgraph. Every yielded graph gets a fresh id from
// opts.GraphIDs and shares entity pointers with g. Input errors surface on
// the error side of the sequence and end it.
func SimilarSubGraphs(g, q *graph.Graph, opts Options) iter.Seq2[*graph.Graph, error] {
	return func(yield func(*graph.Graph, error) bool) {
		opts, err := opts.normalized()
		if err != nil {
			yield(nil, err)
			return
		}
		nodeSeq, err := SimilarNodes(g, q, opts)
		if err != nil {
			yield(nil, err)
			return
		}

		lookup := graph.NewLookup(g)
		for assignment := range nodeSeq {
			if len(q.Edges) == 0 {
				if !yield(assemble(lookup, opts.GraphIDs(), assignment, nil), nil) {
					return
				}
				continue
			}

			edgeSeq, err := SimilarEdges(g, q, assignment, opts)
			if err != nil {
				yield(nil, err)
				return
			}
			for edges := range edgeSeq {
				if !yield(assemble(lookup, opts.GraphIDs(), assignment, edges), nil) {
					return
				}
			}
		}
	}
}

// assemble resolves candidate ids into entity pointers from the source graph.
func assemble(lookup *graph.Lookup, id graph.GraphID, nodes []NodeCandidate, edges []EdgeCandidate) *graph.Graph {
	ns := make([]*graph.Node, 0, len(nodes))
	for _, c := range nodes {
		if n, ok := lookup.NodeByID(c.CandidateID); ok {
			ns = append(ns, n)
		}
	}
	es := make([]*graph.Edge, 0, len(edges))
	for _, c := range edges {
		if e, ok := lookup.EdgeByID(c.CandidateID); ok {
			es = append(es, e)
		}
	}
	return graph.New(id, ns, es)
}

// Match returns the first subgraph of g matching q under the search order of
// SimilarSubGraphs, after checking that both graphs carry pairwise-distinct
// node and edge ids. The boolean reports whether any match was found.
func Match(g, q *graph.Graph, opts Options) (*graph.Graph, bool, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, false, err
	}
	if err := graph.ValidateIdentifiers(g); err != nil {
		return nil, false, err
	}
	if err := graph.ValidateIdentifiers(q); err != nil {
		return nil, false, err
	}

	start := time.Now()
	for sg, err := range SimilarSubGraphs(g, q, opts) {
		if err != nil {
			if opts.Metrics != nil {
				opts.Metrics.RecordMatch("error", time.Since(start), 0, 0)
			}
			return nil, false, err
		}
		if opts.Metrics != nil {
			opts.Metrics.RecordMatch("found", time.Since(start), len(sg.Nodes), len(sg.Edges))
		}
		opts.Events.Publish(pubsub.TopicMatch, pubsub.MatchFound{
			GraphID: string(sg.ID),
			Nodes:   len(sg.Nodes),
			Edges:   len(sg.Edges),
		})
		return sg, true, nil
	}
	if opts.Metrics != nil {
		opts.Metrics.RecordMatch("not_found", time.Since(start), 0, 0)
	}
	return nil, false, nil
}
