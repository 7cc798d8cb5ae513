// Package core defines the central Graph, Edge and Neighbor types of the
// graph store, its sentinel errors, and the NewGraph constructor.
//
// Errors:
//
//	ErrBadOrder         - vertex count is below 1.
//	ErrVertexOutOfRange - an endpoint lies outside 1..n.
//	ErrNegativeWeight   - an edge weight is negative.
//	ErrWeightOutOfRange - an edge weight exceeds MaxWeight.
package core

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// MaxWeight is the largest accepted edge weight. Any simple path holds fewer
// than n edges, so path lengths and tree weights stay far below math.MaxInt64
// for every vertex count that fits in memory.
const MaxWeight = math.MaxInt32

// Sentinel errors for core graph operations.
var (
	// ErrBadOrder indicates a graph was requested with fewer than one vertex.
	ErrBadOrder = errors.New("core: vertex count must be positive")

	// ErrVertexOutOfRange indicates an operation referenced a vertex outside 1..n.
	ErrVertexOutOfRange = errors.New("core: vertex out of range")

	// ErrNegativeWeight indicates an edge weight below zero.
	ErrNegativeWeight = errors.New("core: negative edge weight")

	// ErrWeightOutOfRange indicates an edge weight above MaxWeight.
	ErrWeightOutOfRange = errors.New("core: edge weight out of range")
)

// Edge is a directed, weighted connection From→To.
type Edge struct {
	// From is the source vertex (1..n).
	From int

	// To is the destination vertex (1..n).
	To int

	// Weight is the cost of the edge. Always in 0..MaxWeight once stored in a Graph.
	Weight int64
}

// String renders the edge as "u - v : w", the batch wire format.
func (e Edge) String() string {
	return fmt.Sprintf("%d - %d : %d", e.From, e.To, e.Weight)
}

// Neighbor is one outgoing adjacency entry of a vertex.
type Neighbor struct {
	// To is the destination vertex.
	To int

	// Weight is the edge cost.
	Weight int64
}

// Graph is a directed weighted multigraph over the vertices 1..n.
//
// adjacency[u] holds the outgoing entries of u in insertion order and
// incoming[v] mirrors them as full triples keyed by destination; index 0 of
// both is never used. size caches the total edge count.
type Graph struct {
	mu sync.RWMutex // guards adjacency, incoming and size

	order     int          // number of vertices, fixed at construction
	size      int          // number of stored edges
	adjacency [][]Neighbor // vertex → ordered outgoing entries
	incoming  [][]Edge     // vertex → ordered incoming edges
}

// NewGraph creates an empty Graph over the vertices 1..n.
// Returns ErrBadOrder when n < 1.
// Complexity: O(n).
func NewGraph(n int) (*Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadOrder, n)
	}

	return &Graph{
		order:     n,
		adjacency: make([][]Neighbor, n+1),
		incoming:  make([][]Edge, n+1),
	}, nil
}

// checkVertex reports ErrVertexOutOfRange for v outside 1..order.
// Caller need not hold the lock: order is immutable.
func (g *Graph) checkVertex(v int) error {
	if v < 1 || v > g.order {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrVertexOutOfRange, v, g.order)
	}

	return nil
}
