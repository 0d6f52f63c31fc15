package matching

import (
	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/vector"
)

// FindNode returns the graph node most similar to the given node, provided
// the similarity meets the threshold. Absence is not an error: an empty graph
// or no candidate above the threshold reports found=false. Fails if the node
// or any graph node lacks an embedding.
func FindNode(g *graph.Graph, node *graph.Node, opts Options) (*graph.Node, bool, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, false, err
	}
	qvec, ok := node.Embedding()
	if !ok {
		return nil, false, graph.NodeError("find", node.ID, graph.ErrEmbeddingMissing)
	}

	targets := make([][]float64, len(g.Nodes))
	for i, n := range g.Nodes {
		vec, ok := n.Embedding()
		if !ok {
			return nil, false, graph.NodeError("find", n.ID, graph.ErrEmbeddingMissing)
		}
		targets[i] = vec
	}

	matches, err := vector.FindTopSimilar(qvec, targets, 1, opts.Threshold)
	if err != nil {
		return nil, false, graph.NodeError("find", node.ID, err)
	}
	if len(matches) == 0 {
		return nil, false, nil
	}
	return g.Nodes[matches[0].Index], true, nil
}

// FindEdge returns the graph edge most similar to the given edge among edges
// connecting the graph nodes matched by source and target. Both endpoints
// must resolve through FindNode first; if either fails to, or no connecting
// edge meets the threshold, found=false.
func FindEdge(g *graph.Graph, source, target *graph.Node, edge *graph.Edge, opts Options) (*graph.Edge, bool, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, false, err
	}
	src, ok, err := FindNode(g, source, opts)
	if err != nil || !ok {
		return nil, false, err
	}
	tgt, ok, err := FindNode(g, target, opts)
	if err != nil || !ok {
		return nil, false, err
	}
	return findEdgeBetween(g, src.ID, tgt.ID, edge, opts)
}

// findEdgeBetween scores edge against the graph edges running from source to
// target, both already resolved to graph node ids.
func findEdgeBetween(g *graph.Graph, source, target graph.NodeID, edge *graph.Edge, opts Options) (*graph.Edge, bool, error) {
	qvec, ok := edge.Embedding()
	if !ok {
		return nil, false, graph.EdgeError("find", edge.ID, graph.ErrEmbeddingMissing)
	}

	var pool []*graph.Edge
	for _, e := range g.Edges {
		if e.SourceID == source && e.TargetID == target {
			pool = append(pool, e)
		}
	}
	targets := make([][]float64, len(pool))
	for i, e := range pool {
		vec, ok := e.Embedding()
		if !ok {
			return nil, false, graph.EdgeError("find", e.ID, graph.ErrEmbeddingMissing)
		}
		targets[i] = vec
	}

	matches, err := vector.FindTopSimilar(qvec, targets, 1, opts.Threshold)
	if err != nil {
		return nil, false, graph.EdgeError("find", edge.ID, err)
	}
	if len(matches) == 0 {
		return nil, false, nil
	}
	return pool[matches[0].Index], true, nil
}

// ContainsNode reports whether the graph holds a node similar to the given
// one at or above the threshold.
func ContainsNode(g *graph.Graph, node *graph.Node, opts Options) (bool, error) {
	_, ok, err := FindNode(g, node, opts)
	return ok, err
}

// ContainsEdge reports whether the graph holds an edge similar to the given
// one between nodes matched by source and target.
func ContainsEdge(g *graph.Graph, source, target *graph.Node, edge *graph.Edge, opts Options) (bool, error) {
	_, ok, err := FindEdge(g, source, target, edge, opts)
	return ok, err
}
