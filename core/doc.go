// Package core provides the in-memory graph store served by mstd: a directed,
// weighted graph over a dense vertex range 1..n.
//
// The Graph G = (V,E) is deliberately narrow:
//
//   - Vertices are the integers 1..n fixed at construction (NewGraph(n)).
//   - Edges are directed u→v with an int64 weight in 0..MaxWeight (math.MaxInt32).
//   - Parallel edges and self-loops are stored as-is (no deduplication);
//     the MST algorithms tolerate both.
//   - Adjacency is a slice per vertex, so Neighbors(u) preserves insertion order;
//     a mirrored incoming list per vertex keeps Incident(u) proportional to degree.
//   - A single sync.RWMutex guards adjacency; readers never observe a torn edge list.
//
// Core Methods:
//
//	// Construction
//	NewGraph(n int) (*Graph, error)            // O(n)
//	FromEdges(n int, edges []Edge) (*Graph, error) // O(n+E)
//	Clone() *Graph                             // O(n+E)
//
//	// Mutation
//	AddEdge(u, v int, w int64) error           // O(1) amortized
//	RemoveEdge(u, v int) (removed int, err error) // O(deg(u)+indeg(v))
//
//	// Query
//	Order() int                                // O(1)
//	Size() int                                 // O(1)
//	HasVertex(v int) bool                      // O(1)
//	Neighbors(u int) ([]Neighbor, error)       // O(deg(u)), copy
//	Edges() []Edge                             // O(n+E), ascending source then insertion order
//	Incident(u int) ([]Edge, error)            // O(deg(u)+indeg(u)), both directions
//
// Errors:
//
//	ErrBadOrder         – vertex count below 1
//	ErrVertexOutOfRange – endpoint outside 1..n
//	ErrNegativeWeight   – weight below zero
//	ErrWeightOutOfRange – weight above MaxWeight
//
// In mstd every call is additionally serialized by the session lock, so an MST
// computation always reads one consistent version of the graph.
package core
