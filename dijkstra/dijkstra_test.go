// Package dijkstra_test contains unit tests for the Dijkstra implementation.
// These tests validate input errors, directed relaxation, MaxDistance caps,
// path reconstruction, and edge cases such as single-vertex and self-loop graphs.
package dijkstra_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dijkstra"
)

// mustGraph builds a graph of order n from edges or fails the test.
func mustGraph(t testing.TB, n int, edges ...core.Edge) *core.Graph {
	t.Helper()
	g, err := core.FromEdges(n, edges)
	if err != nil {
		t.Fatalf("FromEdges: %v", err)
	}

	return g
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_NilGraph(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(nil, dijkstra.Source(1))
	if !errors.Is(err, dijkstra.ErrNilGraph) {
		t.Fatalf("Expected ErrNilGraph, got %v", err)
	}
}

func TestDijkstra_MissingSource(t *testing.T) {
	// The zero Options value has Source 0, which is never a vertex.
	g := mustGraph(t, 3)
	_, _, err := dijkstra.Dijkstra(g)
	if !errors.Is(err, dijkstra.ErrSourceOutOfRange) {
		t.Fatalf("Expected ErrSourceOutOfRange, got %v", err)
	}
}

func TestDijkstra_SourceOutOfRange(t *testing.T) {
	g := mustGraph(t, 3)
	for _, src := range []int{-1, 4} {
		if _, _, err := dijkstra.Dijkstra(g, dijkstra.Source(src)); !errors.Is(err, dijkstra.ErrSourceOutOfRange) {
			t.Fatalf("Source(%d): expected ErrSourceOutOfRange, got %v", src, err)
		}
	}
}

func TestWithMaxDistance_NegativePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Expected panic for negative MaxDistance")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, dijkstra.ErrBadMaxDistance) {
			t.Fatalf("Expected ErrBadMaxDistance, got %v", r)
		}
	}()
	_ = dijkstra.WithMaxDistance(-1)
}

// ------------------------------------------------------------------------
// 2. Functional Tests
// ------------------------------------------------------------------------

func TestDijkstra_Basic(t *testing.T) {
	// 1→2 (1), 2→3 (2), 1→3 (5): the detour through 2 is cheaper.
	g := mustGraph(t, 3,
		core.Edge{From: 1, To: 2, Weight: 1},
		core.Edge{From: 2, To: 3, Weight: 2},
		core.Edge{From: 1, To: 3, Weight: 5},
	)
	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if prev != nil {
		t.Fatalf("Expected nil prev without WithReturnPath, got %v", prev)
	}
	want := []int64{dijkstra.Unreachable, 0, 1, 3}
	for v := 1; v <= 3; v++ {
		if dist[v] != want[v] {
			t.Errorf("dist[%d] = %d; want %d", v, dist[v], want[v])
		}
	}
}

func TestDijkstra_Directed(t *testing.T) {
	// Only 2→1 exists, so 2 is unreachable from 1.
	g := mustGraph(t, 2, core.Edge{From: 2, To: 1, Weight: 4})
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if dist[2] != dijkstra.Unreachable {
		t.Fatalf("dist[2] = %d; want Unreachable", dist[2])
	}

	dist, _, _ = dijkstra.Dijkstra(g, dijkstra.Source(2))
	if dist[1] != 4 {
		t.Fatalf("dist[1] from 2 = %d; want 4", dist[1])
	}
}

func TestDijkstra_ReturnPath(t *testing.T) {
	g := mustGraph(t, 4,
		core.Edge{From: 1, To: 2, Weight: 1},
		core.Edge{From: 2, To: 3, Weight: 1},
		core.Edge{From: 3, To: 4, Weight: 1},
		core.Edge{From: 1, To: 4, Weight: 10},
	)
	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithReturnPath())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if dist[4] != 3 {
		t.Fatalf("dist[4] = %d; want 3", dist[4])
	}
	path := dijkstra.PathTo(prev, dist, 1, 4)
	want := []int{1, 2, 3, 4}
	if len(path) != len(want) {
		t.Fatalf("path = %v; want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v; want %v", path, want)
		}
	}
	if p := dijkstra.PathTo(prev, dist, 1, 1); len(p) != 1 || p[0] != 1 {
		t.Fatalf("path to source = %v; want [1]", p)
	}
}

func TestDijkstra_PathToUnreachable(t *testing.T) {
	g := mustGraph(t, 3, core.Edge{From: 1, To: 2, Weight: 1})
	dist, prev, _ := dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithReturnPath())
	if p := dijkstra.PathTo(prev, dist, 1, 3); p != nil {
		t.Fatalf("Expected nil path to unreachable vertex, got %v", p)
	}
}

func TestDijkstra_MaxDistance(t *testing.T) {
	g := mustGraph(t, 3,
		core.Edge{From: 1, To: 2, Weight: 2},
		core.Edge{From: 2, To: 3, Weight: 2},
	)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithMaxDistance(3))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if dist[2] != 2 {
		t.Errorf("dist[2] = %d; want 2", dist[2])
	}
	if dist[3] != dijkstra.Unreachable {
		t.Errorf("dist[3] = %d; want Unreachable beyond cap", dist[3])
	}
}

func TestDijkstra_ZeroWeightsAndParallel(t *testing.T) {
	g := mustGraph(t, 2,
		core.Edge{From: 1, To: 2, Weight: 7},
		core.Edge{From: 1, To: 2, Weight: 0},
	)
	dist, _, _ := dijkstra.Dijkstra(g, dijkstra.Source(1))
	if dist[2] != 0 {
		t.Fatalf("dist[2] = %d; want 0 via the zero-weight parallel edge", dist[2])
	}
}

// ------------------------------------------------------------------------
// 3. Edge Cases
// ------------------------------------------------------------------------

func TestDijkstra_SingleVertex(t *testing.T) {
	g := mustGraph(t, 1)
	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(dist) != 2 || dist[1] != 0 {
		t.Fatalf("dist = %v; want [Unreachable 0]", dist)
	}
}

func TestDijkstra_SelfLoop(t *testing.T) {
	g := mustGraph(t, 2,
		core.Edge{From: 1, To: 1, Weight: 3},
		core.Edge{From: 1, To: 2, Weight: 5},
	)
	dist, _, _ := dijkstra.Dijkstra(g, dijkstra.Source(1))
	if dist[1] != 0 || dist[2] != 5 {
		t.Fatalf("dist = %v; want source 0 and dist[2]=5", dist)
	}
}

// TestDijkstra_AgainstBellmanFord compares distances with a naive relaxation oracle.
func TestDijkstra_AgainstBellmanFord(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 1 + r.Intn(12)
		var edges []core.Edge
		m := r.Intn(40)
		for i := 0; i < m; i++ {
			edges = append(edges, core.Edge{From: 1 + r.Intn(n), To: 1 + r.Intn(n), Weight: int64(r.Intn(20))})
		}
		g := mustGraph(t, n, edges...)
		src := 1 + r.Intn(n)
		got, _, err := dijkstra.Dijkstra(g, dijkstra.Source(src))
		if err != nil {
			t.Fatalf("trial %d: %v", trial, err)
		}

		want := make([]int64, n+1)
		for v := range want {
			want[v] = dijkstra.Unreachable
		}
		want[src] = 0
		for iter := 0; iter < n; iter++ {
			for _, e := range edges {
				if want[e.From] != dijkstra.Unreachable && want[e.From]+e.Weight < want[e.To] {
					want[e.To] = want[e.From] + e.Weight
				}
			}
		}
		for v := 1; v <= n; v++ {
			if got[v] != want[v] {
				t.Fatalf("trial %d: dist[%d] = %d; want %d", trial, v, got[v], want[v])
			}
		}
	}
}

func BenchmarkDijkstra_Grid(b *testing.B) {
	const side = 60
	n := side * side
	var edges []core.Edge
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			v := row*side + col + 1
			if col+1 < side {
				edges = append(edges, core.Edge{From: v, To: v + 1, Weight: int64(1 + (v % 7))})
			}
			if row+1 < side {
				edges = append(edges, core.Edge{From: v, To: v + side, Weight: int64(1 + (v % 5))})
			}
		}
	}
	g := mustGraph(b, n, edges...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := dijkstra.Dijkstra(g, dijkstra.Source(1)); err != nil {
			b.Fatal(err)
		}
	}
}
