// File: methods.go
// Role: Read-only queries and copies: Order/Size/HasVertex/Neighbors/Clone/FromEdges.
// Concurrency:
//   - order is immutable after construction and read without locking.
//   - Everything touching adjacency takes the mu read lock and returns copies.

package core

// Order returns the number of vertices n.
// Complexity: O(1).
func (g *Graph) Order() int { return g.order }

// Size returns the number of stored edges (parallel edges counted separately).
// Complexity: O(1).
func (g *Graph) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.size
}

// HasVertex reports whether v lies in 1..n.
func (g *Graph) HasVertex(v int) bool { return v >= 1 && v <= g.order }

// Neighbors returns a copy of u's outgoing entries in insertion order.
// The slice is empty, not nil, when u has no outgoing edges.
// Complexity: O(deg(u)).
func (g *Graph) Neighbors(u int) ([]Neighbor, error) {
	if err := g.checkVertex(u); err != nil {
		return nil, err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Neighbor, len(g.adjacency[u]))
	copy(out, g.adjacency[u])

	return out, nil
}

// Clone returns a deep copy of g. Later mutations of either graph do not
// affect the other, which lets readers work on a snapshot without holding
// the owner's lock.
// Complexity: O(n + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := &Graph{
		order:     g.order,
		size:      g.size,
		adjacency: make([][]Neighbor, len(g.adjacency)),
		incoming:  make([][]Edge, len(g.incoming)),
	}
	for u, list := range g.adjacency {
		if len(list) > 0 {
			c.adjacency[u] = append([]Neighbor(nil), list...)
		}
	}
	for v, list := range g.incoming {
		if len(list) > 0 {
			c.incoming[v] = append([]Edge(nil), list...)
		}
	}

	return c
}

// FromEdges builds a graph over 1..n holding exactly the given edges, in order.
// The first invalid edge aborts construction and its error is returned.
// Complexity: O(n + E).
func FromEdges(n int, edges []Edge) (*Graph, error) {
	g, err := NewGraph(n)
	if err != nil {
		return nil, err
	}
	for _, e := range edges {
		if err = g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}

	return g, nil
}
