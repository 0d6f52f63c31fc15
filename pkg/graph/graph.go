package graph

import (
	"context"
	"errors"
)

// Graph represents a semantic knowledge graph: a set of nodes with directed
// edges between them. Node and edge slices hold shared pointers; operations
// across this module return fresh Graph values that reference the same
// underlying entities rather than copying them.
//
// Matching requires node ids and edge ids to be pairwise distinct within a
// graph; see ValidateIdentifiers.
type Graph struct {
	ID    GraphID `json:"id"`
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`
}

// New assembles a graph from existing entities under the given id.
func New(id GraphID, nodes []*Node, edges []*Edge) *Graph {
	return &Graph{ID: id, Nodes: nodes, Edges: edges}
}

// Node returns the node with the given id, if present. Linear scan; build a
// Lookup for repeated access.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Edge returns the edge with the given id, if present.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// AwaitReady blocks until every embedding in the graph resolves or ctx ends:
// all nodes, all edges, and all of their properties. Embedding failures are
// collected and returned joined; the graph is still usable afterwards, with
// the failed slots permanently unset.
func (g *Graph) AwaitReady(ctx context.Context) error {
	var errs []error
	for _, n := range g.Nodes {
		if err := n.AwaitReady(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, err)
		}
		for _, p := range n.Properties {
			if err := p.AwaitReady(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				errs = append(errs, err)
			}
		}
	}
	for _, e := range g.Edges {
		if err := e.AwaitReady(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			errs = append(errs, err)
		}
		for _, p := range e.Properties {
			if err := p.AwaitReady(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
