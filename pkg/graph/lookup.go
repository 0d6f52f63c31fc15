package graph

// Lookup is an immutable index over one graph: id resolution plus incidence
// lists. Build it once per operation and share it; the underlying graph must
// not change while the lookup is in use.
type Lookup struct {
	nodes    map[NodeID]*Node
	edges    map[EdgeID]*Edge
	outEdges map[NodeID][]*Edge
	inEdges  map[NodeID][]*Edge
}

// NewLookup indexes the graph. Edges with endpoints outside the graph are
// indexed by id but contribute no incidence entries for the missing side.
func NewLookup(g *Graph) *Lookup {
	l := &Lookup{
		nodes:    make(map[NodeID]*Node, len(g.Nodes)),
		edges:    make(map[EdgeID]*Edge, len(g.Edges)),
		outEdges: make(map[NodeID][]*Edge),
		inEdges:  make(map[NodeID][]*Edge),
	}
	for _, n := range g.Nodes {
		l.nodes[n.ID] = n
	}
	for _, e := range g.Edges {
		l.edges[e.ID] = e
		if _, ok := l.nodes[e.SourceID]; ok {
			l.outEdges[e.SourceID] = append(l.outEdges[e.SourceID], e)
		}
		if _, ok := l.nodes[e.TargetID]; ok {
			l.inEdges[e.TargetID] = append(l.inEdges[e.TargetID], e)
		}
	}
	return l
}

// NodeByID resolves a node id.
func (l *Lookup) NodeByID(id NodeID) (*Node, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// EdgeByID resolves an edge id.
func (l *Lookup) EdgeByID(id EdgeID) (*Edge, bool) {
	e, ok := l.edges[id]
	return e, ok
}

// OutEdges returns the edges leaving the node, in graph order.
func (l *Lookup) OutEdges(id NodeID) []*Edge {
	return l.outEdges[id]
}

// InEdges returns the edges entering the node, in graph order.
func (l *Lookup) InEdges(id NodeID) []*Edge {
	return l.inEdges[id]
}

// HasNode reports whether the id resolves.
func (l *Lookup) HasNode(id NodeID) bool {
	_, ok := l.nodes[id]
	return ok
}
