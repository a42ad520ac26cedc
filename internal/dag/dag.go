// SPDX-License-Identifier: MPL-2.0

// Package dag provides directed acyclic graph operations for topological sorting
// and cycle detection. It orders module projects so that every module is wired
// after the modules it requires.
package dag

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the graph contains a cycle, preventing topological ordering.
	CycleError struct {
		// Cycle contains the nodes left with unresolved incoming edges, in insertion order.
		// It is not necessarily a minimal cycle but always includes one.
		Cycle []string
	}

	// Graph is a directed graph for topological sorting.
	// Edges represent "must come before" relationships: an edge from A to B
	// means A is wired before B.
	Graph[K comparable] struct {
		// adjacency maps each node to its outgoing neighbors.
		adjacency map[K][]K
		// edges deduplicates repeated AddEdge calls.
		edges map[[2]K]bool
		// nodes tracks all nodes in insertion order for deterministic output.
		nodes []K
		nodeSet map[K]bool
	}
)

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Cycle, " -> "))
}

// New creates an empty Graph.
func New[K comparable]() *Graph[K] {
	return &Graph[K]{
		adjacency: make(map[K][]K),
		edges:     make(map[[2]K]bool),
		nodeSet:   make(map[K]bool),
	}
}

// AddNode adds a node to the graph. If the node already exists, this is a no-op.
func (g *Graph[K]) AddNode(node K) {
	if g.nodeSet[node] {
		return
	}
	g.nodeSet[node] = true
	g.nodes = append(g.nodes, node)
}

// AddEdge adds a directed edge from -> to, meaning "from" comes before "to".
// Both nodes are implicitly added if they don't exist. Duplicate edges are ignored.
func (g *Graph[K]) AddEdge(from, to K) {
	g.AddNode(from)
	g.AddNode(to)
	key := [2]K{from, to}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.adjacency[from] = append(g.adjacency[from], to)
}

// TopologicalSort returns a valid order using Kahn's algorithm.
// Returns CycleError if the graph contains a cycle.
//
// The order is deterministic: whenever several nodes are ready, the one added
// to the graph first is emitted first.
func (g *Graph[K]) TopologicalSort() ([]K, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}

	position := make(map[K]int, len(g.nodes))
	inDegree := make(map[K]int, len(g.nodes))
	for i, node := range g.nodes {
		position[node] = i
		inDegree[node] = 0
	}
	for _, neighbors := range g.adjacency {
		for _, neighbor := range neighbors {
			inDegree[neighbor]++
		}
	}

	// ready is kept sorted by insertion position so ties never depend on
	// edge insertion order.
	var ready []K
	for _, node := range g.nodes {
		if inDegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	result := make([]K, 0, len(g.nodes))
	for len(ready) > 0 {
		node := ready[0]
		ready = ready[1:]
		result = append(result, node)

		for _, neighbor := range g.adjacency[node] {
			inDegree[neighbor]--
			if inDegree[neighbor] == 0 {
				ready = insertByPosition(ready, neighbor, position)
			}
		}
	}

	if len(result) != len(g.nodes) {
		var cycleNodes []string
		for _, node := range g.nodes {
			if inDegree[node] > 0 {
				cycleNodes = append(cycleNodes, fmt.Sprint(node))
			}
		}
		return nil, &CycleError{Cycle: cycleNodes}
	}

	return result, nil
}

func insertByPosition[K comparable](ready []K, node K, position map[K]int) []K {
	i := len(ready)
	for i > 0 && position[ready[i-1]] > position[node] {
		i--
	}
	ready = append(ready, node)
	copy(ready[i+1:], ready[i:])
	ready[i] = node
	return ready
}
