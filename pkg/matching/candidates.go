package matching

import (
	"sort"

	"github.com/000alen/ontology/pkg/graph"
	"github.com/000alen/ontology/pkg/vector"
)

// Candidate scores a pairing between a query-side entity and a graph-side
// entity of the same kind. Candidates exist only while matching runs; they
// are never attached to a graph.
type Candidate[ID ~string] struct {
	ReferenceID ID      // query-side id
	CandidateID ID      // graph-side id
	Similarity  float64 // cosine similarity, in [-1, 1]
}

// NodeCandidate pairs a query node with a graph node.
type NodeCandidate = Candidate[graph.NodeID]

// EdgeCandidate pairs a query edge with a graph edge.
type EdgeCandidate = Candidate[graph.EdgeID]

// NodeCandidates scores every graph node against every query node. The result
// has one list per query node, in query order, each filtered to similarities
// at or above the threshold and sorted descending (ties keep graph order).
// Fails if either graph has no nodes or any compared embedding is absent.
func NodeCandidates(g, q *graph.Graph, opts Options) ([][]NodeCandidate, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}
	if g.IsEmpty() {
		return nil, graph.GraphError("candidates", g.ID, graph.ErrNoNodes)
	}
	if q.IsEmpty() {
		return nil, graph.GraphError("candidates", q.ID, graph.ErrNoNodes)
	}

	targets := make([][]float64, len(g.Nodes))
	for i, n := range g.Nodes {
		vec, ok := n.Embedding()
		if !ok {
			return nil, graph.NodeError("candidates", n.ID, graph.ErrEmbeddingMissing)
		}
		targets[i] = vec
	}

	lists := make([][]NodeCandidate, len(q.Nodes))
	for i, qn := range q.Nodes {
		qvec, ok := qn.Embedding()
		if !ok {
			return nil, graph.NodeError("candidates", qn.ID, graph.ErrEmbeddingMissing)
		}
		sims, err := vector.CosineSimilarityOneToMany(qvec, targets)
		if err != nil {
			return nil, graph.NodeError("candidates", qn.ID, err)
		}

		list := make([]NodeCandidate, 0, len(sims))
		for j, sim := range sims {
			if sim >= opts.Threshold {
				list = append(list, NodeCandidate{
					ReferenceID: qn.ID,
					CandidateID: g.Nodes[j].ID,
					Similarity:  sim,
				})
			}
		}
		sortCandidates(list)
		if opts.Metrics != nil {
			opts.Metrics.RecordMatchCandidates(len(list))
		}
		lists[i] = list
	}
	return lists, nil
}

type endpointKey struct {
	source, target graph.NodeID
}

// EdgeCandidates scores graph edges against query edges under one node
// assignment. Graph edges are first restricted to those whose endpoints both
// belong to the assigned candidate set; each query edge then only considers
// graph edges connecting its mapped endpoints. Query edges with an unassigned
// endpoint are skipped and contribute no list. Fails if any compared edge
// embedding is absent.
func EdgeCandidates(g, q *graph.Graph, assignment []NodeCandidate, opts Options) ([][]EdgeCandidate, error) {
	opts, err := opts.normalized()
	if err != nil {
		return nil, err
	}

	assigned := make(map[graph.NodeID]graph.NodeID, len(assignment))
	inCandidateSet := make(map[graph.NodeID]bool, len(assignment))
	for _, c := range assignment {
		assigned[c.ReferenceID] = c.CandidateID
		inCandidateSet[c.CandidateID] = true
	}

	byEndpoints := make(map[endpointKey][]*graph.Edge)
	for _, e := range g.Edges {
		if inCandidateSet[e.SourceID] && inCandidateSet[e.TargetID] {
			k := endpointKey{e.SourceID, e.TargetID}
			byEndpoints[k] = append(byEndpoints[k], e)
		}
	}

	var lists [][]EdgeCandidate
	for _, qe := range q.Edges {
		src, srcOK := assigned[qe.SourceID]
		tgt, tgtOK := assigned[qe.TargetID]
		if !srcOK || !tgtOK {
			// Query edge references a node outside the query: nothing
			// to honor.
			continue
		}
		qvec, ok := qe.Embedding()
		if !ok {
			return nil, graph.EdgeError("candidates", qe.ID, graph.ErrEmbeddingMissing)
		}

		pool := byEndpoints[endpointKey{src, tgt}]
		targets := make([][]float64, len(pool))
		for i, ge := range pool {
			gvec, ok := ge.Embedding()
			if !ok {
				return nil, graph.EdgeError("candidates", ge.ID, graph.ErrEmbeddingMissing)
			}
			targets[i] = gvec
		}
		sims, err := vector.CosineSimilarityOneToMany(qvec, targets)
		if err != nil {
			return nil, graph.EdgeError("candidates", qe.ID, err)
		}

		list := make([]EdgeCandidate, 0, len(sims))
		for i, sim := range sims {
			if sim >= opts.Threshold {
				list = append(list, EdgeCandidate{
					ReferenceID: qe.ID,
					CandidateID: pool[i].ID,
					Similarity:  sim,
				})
			}
		}
		sortCandidates(list)
		if opts.Metrics != nil {
			opts.Metrics.RecordMatchCandidates(len(list))
		}
		lists = append(lists, list)
	}
	return lists, nil
}

// sortCandidates orders a candidate list by similarity descending, preserving
// graph order among ties.
func sortCandidates[ID ~string](list []Candidate[ID]) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Similarity > list[j].Similarity
	})
}
