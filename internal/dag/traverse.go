package dag

import (
	"fmt"

	"github.com/specialistvlad/colengine/internal/colid"
)

// DetectCycles checks the whole graph for cycles. It returns a non-nil error
// naming the node at which a cycle was closed.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: on the recursion stack of the current traversal.
	// unvisited: everything else.
	permanent := make(map[colid.ID]bool)
	temporary := make(map[colid.ID]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}

		temporary[n.id] = true
		for _, dependent := range sortedKeys(n.dependents) {
			if err := visit(g.nodes[dependent]); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	// Sorted so the reported node is stable between runs.
	for _, id := range g.Nodes() {
		if !permanent[id] {
			if err := visit(g.nodes[id]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reachable walks outbound edges breadth-first from start and returns every
// node reached, start first. Each node appears once even when several paths
// lead to it. An unknown start yields nil.
func (g *Graph) Reachable(start colid.ID) []colid.ID {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}

	visited := map[colid.ID]bool{start: true}
	order := []colid.ID{start}
	queue := []colid.ID{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range sortedKeys(g.nodes[current].dependents) {
			if visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, next)
			queue = append(queue, next)
		}
	}
	return order
}
