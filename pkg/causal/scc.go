package causal

import (
	"github.com/000alen/ontology/pkg/graph"
)

// sccState holds per-vertex state during Tarjan's depth-first search.
type sccState struct {
	index   int
	lowlink int
	onStack bool
}

// condense groups the graph's vertices into strongly connected components
// using Tarjan's algorithm in O(V+E) time. Components are returned in
// completion order with each component's members in discovery order; the
// membership map resolves a vertex to its component index. Only outgoing
// edges are followed.
func condense(g *graph.Graph, lookup *graph.Lookup) ([][]graph.NodeID, map[graph.NodeID]int) {
	state := make(map[graph.NodeID]*sccState, len(g.Nodes))
	var stack []graph.NodeID
	indexCounter := 0
	var components [][]graph.NodeID
	membership := make(map[graph.NodeID]int, len(g.Nodes))

	var strongconnect func(u graph.NodeID)
	strongconnect = func(u graph.NodeID) {
		state[u] = &sccState{
			index:   indexCounter,
			lowlink: indexCounter,
			onStack: true,
		}
		indexCounter++
		stack = append(stack, u)

		for _, edge := range lookup.OutEdges(u) {
			v := edge.TargetID
			if !lookup.HasNode(v) {
				continue
			}
			if _, seen := state[v]; !seen {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		// If u is a root node, pop the stack to form a component.
		if state[u].lowlink == state[u].index {
			id := len(components)
			var members []graph.NodeID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				membership[w] = id
				if w == u {
					break
				}
			}
			// The stack pops members in reverse discovery order.
			for i, j := 0, len(members)-1; i < j; i, j = i+1, j-1 {
				members[i], members[j] = members[j], members[i]
			}
			components = append(components, members)
		}
	}

	for _, n := range g.Nodes {
		if _, seen := state[n.ID]; !seen {
			strongconnect(n.ID)
		}
	}

	return components, membership
}
