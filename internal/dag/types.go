package dag

import "github.com/specialistvlad/colengine/internal/colid"

// Graph is a collection of column identities and the "is computed from"
// edges between them.
type Graph struct {
	// nodes stores all nodes in the graph, keyed by identity.
	nodes map[colid.ID]*node
	// edges counts the edges currently in the graph.
	edges int
}

// node represents a single column identity. It is un-exported to enforce
// interaction through the Graph API.
type node struct {
	id colid.ID
	// deps holds the identities this node is computed from (inbound edges).
	deps map[colid.ID]struct{}
	// dependents holds the identities computed from this node (outbound edges).
	dependents map[colid.ID]struct{}
}

func newNode(id colid.ID) *node {
	return &node{
		id:         id,
		deps:       make(map[colid.ID]struct{}),
		dependents: make(map[colid.ID]struct{}),
	}
}
