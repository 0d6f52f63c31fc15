package causal

import (
	"testing"

	"github.com/000alen/ontology/pkg/graph"
)

func restoreNode(id, name string) *graph.Node {
	return graph.RestoreNode(graph.NodeID(id), name, name+" description", nil, nil)
}

func restoreEdge(id, name string, source, target graph.NodeID) *graph.Edge {
	return graph.RestoreEdge(graph.EdgeID(id), name, name+" description", source, target, nil, nil)
}

// Propagation never reads embeddings, so fixtures leave them unset.
func mkGraph(id string, nodes []*graph.Node, edges []*graph.Edge) *graph.Graph {
	return graph.New(graph.GraphID(id), nodes, edges)
}

func positions(order []graph.NodeID) map[graph.NodeID]int {
	pos := make(map[graph.NodeID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	return pos
}

func TestCondenseAcyclic(t *testing.T) {
	a := restoreNode("node_a", "a")
	b := restoreNode("node_b", "b")
	c := restoreNode("node_c", "c")
	g := mkGraph("graph_chain", []*graph.Node{a, b, c}, []*graph.Edge{
		restoreEdge("edge_ab", "ab", a.ID, b.ID),
		restoreEdge("edge_bc", "bc", b.ID, c.ID),
	})

	components, membership := condense(g, graph.NewLookup(g))

	if len(components) != 3 {
		t.Fatalf("Expected 3 singleton components, got %d", len(components))
	}
	for i, members := range components {
		if len(members) != 1 {
			t.Errorf("Component %d should be a singleton, got %v", i, members)
		}
	}
	if len(membership) != 3 {
		t.Errorf("Expected membership for 3 vertices, got %d", len(membership))
	}
	if membership[a.ID] == membership[b.ID] || membership[b.ID] == membership[c.ID] {
		t.Errorf("Acyclic vertices must land in distinct components: %v", membership)
	}
}

func TestCondenseCycle(t *testing.T) {
	a := restoreNode("node_a", "a")
	b := restoreNode("node_b", "b")
	c := restoreNode("node_c", "c")
	d := restoreNode("node_d", "d")
	g := mkGraph("graph_cycle", []*graph.Node{a, b, c, d}, []*graph.Edge{
		restoreEdge("edge_ab", "ab", a.ID, b.ID),
		restoreEdge("edge_bc", "bc", b.ID, c.ID),
		restoreEdge("edge_ca", "ca", c.ID, a.ID),
		restoreEdge("edge_cd", "cd", c.ID, d.ID),
	})

	components, membership := condense(g, graph.NewLookup(g))

	if len(components) != 2 {
		t.Fatalf("Expected 2 components (cycle + tail), got %d", len(components))
	}
	if membership[a.ID] != membership[b.ID] || membership[b.ID] != membership[c.ID] {
		t.Errorf("Cycle vertices must share a component: %v", membership)
	}
	if membership[d.ID] == membership[a.ID] {
		t.Errorf("Tail vertex must not join the cycle component: %v", membership)
	}

	cycle := components[membership[a.ID]]
	want := []graph.NodeID{a.ID, b.ID, c.ID}
	if len(cycle) != len(want) {
		t.Fatalf("Expected cycle component %v, got %v", want, cycle)
	}
	for i := range want {
		if cycle[i] != want[i] {
			t.Errorf("Cycle component should preserve discovery order %v, got %v", want, cycle)
			break
		}
	}
}

func TestCondenseSelfLoop(t *testing.T) {
	a := restoreNode("node_a", "a")
	g := mkGraph("graph_loop", []*graph.Node{a}, []*graph.Edge{
		restoreEdge("edge_aa", "aa", a.ID, a.ID),
	})

	components, membership := condense(g, graph.NewLookup(g))

	if len(components) != 1 || len(components[0]) != 1 || components[0][0] != a.ID {
		t.Fatalf("Expected single component [node_a], got %v", components)
	}
	if membership[a.ID] != 0 {
		t.Errorf("Expected membership 0, got %d", membership[a.ID])
	}
}

func TestScheduleDiamond(t *testing.T) {
	a := restoreNode("node_a", "a")
	b := restoreNode("node_b", "b")
	c := restoreNode("node_c", "c")
	d := restoreNode("node_d", "d")
	g := mkGraph("graph_diamond", []*graph.Node{a, b, c, d}, []*graph.Edge{
		restoreEdge("edge_ab", "ab", a.ID, b.ID),
		restoreEdge("edge_ac", "ac", a.ID, c.ID),
		restoreEdge("edge_bd", "bd", b.ID, d.ID),
		restoreEdge("edge_cd", "cd", c.ID, d.ID),
	})

	order := schedule(g, graph.NewLookup(g))

	if len(order) != 4 {
		t.Fatalf("Expected all 4 vertices scheduled, got %v", order)
	}
	pos := positions(order)
	if pos[a.ID] > pos[b.ID] || pos[a.ID] > pos[c.ID] {
		t.Errorf("Root must precede both branches, got %v", order)
	}
	if pos[b.ID] > pos[d.ID] || pos[c.ID] > pos[d.ID] {
		t.Errorf("Both branches must precede the sink, got %v", order)
	}
}

func TestScheduleCycleStaysContiguous(t *testing.T) {
	p := restoreNode("node_p", "p")
	a := restoreNode("node_a", "a")
	b := restoreNode("node_b", "b")
	tk := restoreNode("node_t", "t")
	g := mkGraph("graph_scc", []*graph.Node{p, a, b, tk}, []*graph.Edge{
		restoreEdge("edge_pa", "pa", p.ID, a.ID),
		restoreEdge("edge_ab", "ab", a.ID, b.ID),
		restoreEdge("edge_ba", "ba", b.ID, a.ID),
		restoreEdge("edge_bt", "bt", b.ID, tk.ID),
	})

	order := schedule(g, graph.NewLookup(g))

	want := []graph.NodeID{p.ID, a.ID, b.ID, tk.ID}
	if len(order) != len(want) {
		t.Fatalf("Expected order %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, order)
		}
	}
}

func TestScheduleDisconnected(t *testing.T) {
	a := restoreNode("node_a", "a")
	b := restoreNode("node_b", "b")
	c := restoreNode("node_c", "c")
	d := restoreNode("node_d", "d")
	g := mkGraph("graph_islands", []*graph.Node{a, b, c, d}, []*graph.Edge{
		restoreEdge("edge_ab", "ab", a.ID, b.ID),
		restoreEdge("edge_cd", "cd", c.ID, d.ID),
	})

	order := schedule(g, graph.NewLookup(g))

	if len(order) != 4 {
		t.Fatalf("Expected all 4 vertices scheduled, got %v", order)
	}
	pos := positions(order)
	if pos[a.ID] > pos[b.ID] {
		t.Errorf("a must precede b, got %v", order)
	}
	if pos[c.ID] > pos[d.ID] {
		t.Errorf("c must precede d, got %v", order)
	}
}
