package matching

import (
	"github.com/000alen/ontology/pkg/graph"
)

// Intersect returns a new graph holding the nodes of b that have a similar
// match in a, and the edges of b whose endpoints both matched into a and
// which themselves have a similar counterpart edge in a between the matched
// endpoints. Entity pointers come from b.
func Intersect(a, b *graph.Graph, opts Options) (*graph.Graph, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	matched := make(map[graph.NodeID]graph.NodeID, len(b.Nodes))
	var nodes []*graph.Node
	for _, nb := range b.Nodes {
		na, ok, err := FindNode(a, nb, opts)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		matched[nb.ID] = na.ID
		nodes = append(nodes, nb)
	}

	var edges []*graph.Edge
	for _, eb := range b.Edges {
		src, srcOK := matched[eb.SourceID]
		tgt, tgtOK := matched[eb.TargetID]
		if !srcOK || !tgtOK {
			continue
		}
		_, ok, err := findEdgeBetween(a, src, tgt, eb, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			edges = append(edges, eb)
		}
	}

	return graph.New(opts.GraphIDs(), nodes, edges), nil
}

// Merge returns a new graph holding all of a's nodes and edges plus those of
// b not already similarity-contained in a. Merging a graph with itself
// reproduces its content unduplicated.
func Merge(a, b *graph.Graph, opts Options) (*graph.Graph, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	nodes := make([]*graph.Node, len(a.Nodes), len(a.Nodes)+len(b.Nodes))
	copy(nodes, a.Nodes)
	edges := make([]*graph.Edge, len(a.Edges), len(a.Edges)+len(b.Edges))
	copy(edges, a.Edges)

	matched := make(map[graph.NodeID]graph.NodeID, len(b.Nodes))
	for _, nb := range b.Nodes {
		na, ok, err := FindNode(a, nb, opts)
		if err != nil {
			return nil, err
		}
		if ok {
			matched[nb.ID] = na.ID
			continue
		}
		nodes = append(nodes, nb)
	}

	for _, eb := range b.Edges {
		src, srcOK := matched[eb.SourceID]
		tgt, tgtOK := matched[eb.TargetID]
		if srcOK && tgtOK {
			_, ok, err := findEdgeBetween(a, src, tgt, eb, opts)
			if err != nil {
				return nil, err
			}
			if ok {
				// Already represented in a.
				continue
			}
		}
		edges = append(edges, eb)
	}

	return graph.New(opts.GraphIDs(), nodes, edges), nil
}
