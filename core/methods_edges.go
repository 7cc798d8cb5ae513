// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/Edges/Incident.
// Determinism:
//   - Edges() returns edges by ascending source, then insertion order.
// Concurrency:
//   - Mutations under mu write lock.
//   - Read queries under mu read lock; results are copies.

package core

import "fmt"

// AddEdge appends the directed edge u→v with weight w.
//
// Steps:
//  1. Validate both endpoints lie in 1..n.
//  2. Reject weights outside 0..MaxWeight.
//  3. Lock mu and append to adjacency[u] and incoming[v].
//
// Parallel edges and self-loops are accepted.
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(u, v int, w int64) error {
	// 1) Bounds
	if err := g.checkVertex(u); err != nil {
		return err
	}
	if err := g.checkVertex(v); err != nil {
		return err
	}
	// 2) Weight
	if w < 0 {
		return fmt.Errorf("%w: %d→%d weight=%d", ErrNegativeWeight, u, v, w)
	}
	if w > MaxWeight {
		return fmt.Errorf("%w: %d→%d weight=%d above %d", ErrWeightOutOfRange, u, v, w, MaxWeight)
	}

	// 3) Insert under lock
	g.mu.Lock()
	defer g.mu.Unlock()

	g.adjacency[u] = append(g.adjacency[u], Neighbor{To: v, Weight: w})
	g.incoming[v] = append(g.incoming[v], Edge{From: u, To: v, Weight: w})
	g.size++

	return nil
}

// RemoveEdge deletes every edge u→v regardless of weight and reports how many
// were removed. Removing an absent edge is a no-op returning (0, nil).
//
// The surviving entries of u and v keep their relative order.
// Complexity: O(deg(u) + indeg(v)).
func (g *Graph) RemoveEdge(u, v int) (int, error) {
	if err := g.checkVertex(u); err != nil {
		return 0, err
	}
	if err := g.checkVertex(v); err != nil {
		return 0, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	list := g.adjacency[u]
	kept := list[:0]
	for _, nb := range list {
		if nb.To != v {
			kept = append(kept, nb)
		}
	}
	removed := len(list) - len(kept)
	// Clear the tail so dropped entries do not linger in the backing array.
	for i := len(kept); i < len(list); i++ {
		list[i] = Neighbor{}
	}
	g.adjacency[u] = kept
	g.size -= removed

	in := g.incoming[v]
	keptIn := in[:0]
	for _, e := range in {
		if e.From != u {
			keptIn = append(keptIn, e)
		}
	}
	for i := len(keptIn); i < len(in); i++ {
		in[i] = Edge{}
	}
	g.incoming[v] = keptIn

	return removed, nil
}

// Edges returns every stored edge, ordered by ascending source vertex and
// then by insertion order within a source. This is the "encounter order"
// used for stable tie-breaking by the MST algorithms.
// Complexity: O(n + E).
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.size)
	for u := 1; u <= g.order; u++ {
		for _, nb := range g.adjacency[u] {
			out = append(out, Edge{From: u, To: nb.To, Weight: nb.Weight})
		}
	}

	return out
}

// Incident returns every edge touching u in either direction, each as its
// original directed triple: outgoing edges first, then incoming edges, each
// group in insertion order. A self-loop appears once.
// Complexity: O(deg(u) + indeg(u)).
func (g *Graph) Incident(u int) ([]Edge, error) {
	if err := g.checkVertex(u); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, len(g.adjacency[u])+len(g.incoming[u]))
	for _, nb := range g.adjacency[u] {
		out = append(out, Edge{From: u, To: nb.To, Weight: nb.Weight})
	}
	for _, e := range g.incoming[u] {
		if e.From == u {
			continue // loops already listed as outgoing
		}
		out = append(out, e)
	}

	return out, nil
}
