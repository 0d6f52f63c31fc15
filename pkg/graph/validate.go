package graph

// ValidateIdentifiers checks that node ids and edge ids are pairwise distinct
// within the graph. Matching relies on this; other engines tolerate
// duplicates but produce unspecified assignments under them.
func ValidateIdentifiers(g *Graph) error {
	seenNodes := make(map[NodeID]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if _, dup := seenNodes[n.ID]; dup {
			return NodeError("validate", n.ID, ErrDuplicateNodeID)
		}
		seenNodes[n.ID] = struct{}{}
	}

	seenEdges := make(map[EdgeID]struct{}, len(g.Edges))
	for _, e := range g.Edges {
		if _, dup := seenEdges[e.ID]; dup {
			return EdgeError("validate", e.ID, ErrDuplicateEdgeID)
		}
		seenEdges[e.ID] = struct{}{}
	}

	return nil
}
