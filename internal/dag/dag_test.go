// SPDX-License-Identifier: MPL-2.0

package dag

import (
	"errors"
	"slices"
	"testing"
)

type moduleKey string

func TestTopologicalSort_EmptyGraph(t *testing.T) {
	t.Parallel()
	g := New[string]()
	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Errorf("expected nil, got %v", order)
	}
}

func TestTopologicalSort_LinearChain(t *testing.T) {
	t.Parallel()
	g := New[string]()
	g.AddEdge("common", "productos")
	g.AddEdge("productos", "costos")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"common", "productos", "costos"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_TiesFollowInsertionOrder(t *testing.T) {
	t.Parallel()
	g := New[string]()
	for _, n := range []string{"a", "b", "c", "d"} {
		g.AddNode(n)
	}
	// d is released before b and c, but b and c were inserted first.
	g.AddEdge("a", "d")
	g.AddEdge("d", "c")
	g.AddEdge("a", "b")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"a", "b", "d", "c"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_Diamond(t *testing.T) {
	t.Parallel()
	g := New[moduleKey]()
	g.AddEdge("productos", "fotos")
	g.AddEdge("productos", "ubicaciones")
	g.AddEdge("fotos", "inventario")
	g.AddEdge("ubicaciones", "inventario")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []moduleKey{"productos", "fotos", "ubicaciones", "inventario"}
	if !slices.Equal(order, expected) {
		t.Errorf("expected %v, got %v", expected, order)
	}
}

func TestTopologicalSort_Cycles(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		edges    [][2]string
		minNodes int
	}{
		{name: "self loop", edges: [][2]string{{"a", "a"}}, minNodes: 1},
		{name: "two nodes", edges: [][2]string{{"a", "b"}, {"b", "a"}}, minNodes: 2},
		{name: "three nodes", edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, minNodes: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := New[string]()
			for _, e := range tt.edges {
				g.AddEdge(e[0], e[1])
			}

			_, err := g.TopologicalSort()
			var cycleErr *CycleError
			if !errors.As(err, &cycleErr) {
				t.Fatalf("expected *CycleError, got %T: %v", err, err)
			}
			if len(cycleErr.Cycle) < tt.minNodes {
				t.Errorf("expected at least %d nodes in cycle, got %v", tt.minNodes, cycleErr.Cycle)
			}
		})
	}
}

func TestTopologicalSort_DuplicateEdges(t *testing.T) {
	t.Parallel()
	g := New[string]()
	g.AddEdge("a", "b")
	g.AddEdge("a", "b")

	order, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", order)
	}
}

func TestCycleError_Message(t *testing.T) {
	t.Parallel()
	err := &CycleError{Cycle: []string{"ventas", "inventario"}}
	expected := "dependency cycle detected: ventas -> inventario"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
