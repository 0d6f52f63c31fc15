package causal

import (
	"github.com/000alen/ontology/pkg/graph"
)

// schedule produces a pseudo-topological vertex order for a graph that may
// contain cycles: vertices are condensed into strongly connected components,
// the resulting DAG is ordered by Kahn's algorithm, and components are
// flattened back into a single vertex sequence. Within a component the
// Tarjan discovery order is preserved, so the order is deterministic for a
// given graph.
func schedule(g *graph.Graph, lookup *graph.Lookup) []graph.NodeID {
	components, membership := condense(g, lookup)

	n := len(components)
	successors := make([][]int, n)
	indegree := make([]int, n)
	linked := make(map[[2]int]bool)
	for _, edge := range g.Edges {
		from, okFrom := membership[edge.SourceID]
		to, okTo := membership[edge.TargetID]
		if !okFrom || !okTo || from == to {
			continue
		}
		key := [2]int{from, to}
		if linked[key] {
			continue
		}
		linked[key] = true
		successors[from] = append(successors[from], to)
		indegree[to]++
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]graph.NodeID, 0, len(g.Nodes))
	for len(queue) > 0 {
		component := queue[0]
		queue = queue[1:]
		order = append(order, components[component]...)
		for _, next := range successors[component] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return order
}
