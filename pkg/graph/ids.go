package graph

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Typed identifiers for each entity kind. Generated ids carry a kind prefix
// so a bare string in a log line or a provider response is self-describing.
type (
	GraphID    string
	NodeID     string
	EdgeID     string
	PropertyID string
)

const (
	graphIDPrefix    = "graph_"
	nodeIDPrefix     = "node_"
	edgeIDPrefix     = "edge_"
	propertyIDPrefix = "property_"
)

func newID(prefix string) string {
	id, err := gonanoid.New()
	if err != nil {
		// gonanoid only fails when the OS random source does
		panic(err)
	}
	return prefix + id
}

// NewGraphID returns a fresh graph identifier.
func NewGraphID() GraphID { return GraphID(newID(graphIDPrefix)) }

// NewNodeID returns a fresh node identifier.
func NewNodeID() NodeID { return NodeID(newID(nodeIDPrefix)) }

// NewEdgeID returns a fresh edge identifier.
func NewEdgeID() EdgeID { return EdgeID(newID(edgeIDPrefix)) }

// NewPropertyID returns a fresh property identifier.
func NewPropertyID() PropertyID { return PropertyID(newID(propertyIDPrefix)) }
