package dag

import (
	"fmt"

	"github.com/specialistvlad/colengine/internal/colid"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[colid.ID]*node),
	}
}

// AddNode adds a node for id. Adding an existing node does nothing.
func (g *Graph) AddNode(id colid.ID) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = newNode(id)
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id colid.ID) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// AddEdge records that `to` is computed from `from`. Both nodes must exist
// and self edges are rejected. Adding an existing edge does nothing.
func (g *Graph) AddEdge(from, to colid.ID) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", from, to)
	}

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %s", from)
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}

	if _, exists := fromNode.dependents[to]; exists {
		return nil
	}
	fromNode.dependents[to] = struct{}{}
	toNode.deps[from] = struct{}{}
	g.edges++
	return nil
}

// RemoveEdge deletes the edge from -> to if present.
func (g *Graph) RemoveEdge(from, to colid.ID) {
	fromNode, ok := g.nodes[from]
	if !ok {
		return
	}
	if _, exists := fromNode.dependents[to]; !exists {
		return
	}
	delete(fromNode.dependents, to)
	if toNode, ok := g.nodes[to]; ok {
		delete(toNode.deps, from)
	}
	g.edges--
}

// RemoveInboundEdges deletes every edge pointing at id, leaving the edges to
// its dependents untouched.
func (g *Graph) RemoveInboundEdges(id colid.ID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for dep := range n.deps {
		g.RemoveEdge(dep, id)
	}
}

// RemoveNode deletes id together with all of its edges.
func (g *Graph) RemoveNode(id colid.ID) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	for dep := range n.deps {
		g.RemoveEdge(dep, id)
	}
	for dependent := range n.dependents {
		g.RemoveEdge(id, dependent)
	}
	delete(g.nodes, id)
}

// Dependencies returns the identities id is computed from, sorted.
func (g *Graph) Dependencies(id colid.ID) ([]colid.ID, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Dependents returns the identities computed from id, sorted.
func (g *Graph) Dependents(id colid.ID) ([]colid.ID, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.dependents), nil
}

// HasDependents reports whether anything is computed from id.
func (g *Graph) HasDependents(id colid.ID) bool {
	n, ok := g.nodes[id]
	return ok && len(n.dependents) > 0
}

// Nodes returns every identity in the graph, sorted.
func (g *Graph) Nodes() []colid.ID {
	ids := make([]colid.ID, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	colid.Sort(ids)
	return ids
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		nodes: make(map[colid.ID]*node, len(g.nodes)),
		edges: g.edges,
	}
	for id, n := range g.nodes {
		cn := newNode(id)
		for dep := range n.deps {
			cn.deps[dep] = struct{}{}
		}
		for dependent := range n.dependents {
			cn.dependents[dependent] = struct{}{}
		}
		c.nodes[id] = cn
	}
	return c
}

func sortedKeys(set map[colid.ID]struct{}) []colid.ID {
	ids := make([]colid.ID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	colid.Sort(ids)
	return ids
}
