// Package dijkstra implements Dijkstra's shortest-path algorithm on weighted graphs.
//
// Dijkstra computes the minimum-cost path from a single source vertex to all
// other reachable vertices following edge direction. Weights are non-negative
// by construction: core.Graph rejects negative weights on insertion.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E), O(E) of it for heap entries under “lazy-decrease-key”.
package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/mstd/core"
)

// Dijkstra computes shortest distances from Options.Source to every vertex of g.
//
// Returns:
//
//   - dist: slice indexed by vertex (len n+1, index 0 unused) holding the minimum
//     distance, or Unreachable.
//   - prev: predecessor slice if ReturnPath=true (nil otherwise). prev[v] == u means
//     the shortest path to v goes through u; 0 marks the source and unreachable vertices.
//   - err:  ErrNilGraph or ErrSourceOutOfRange.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, opts ...Option) ([]int64, []int, error) {
	// 1) Build options
	cfg := DefaultOptions(0)
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate graph and source
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	n := g.Order()
	if cfg.Source < 1 || cfg.Source > n {
		return nil, nil, fmt.Errorf("%w: %d not in [1, %d]", ErrSourceOutOfRange, cfg.Source, n)
	}

	// 3) Prepare state
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make([]int64, n+1),
		visited: make([]bool, n+1),
		pq:      make(nodePQ, 0, n),
	}
	if cfg.ReturnPath {
		r.prev = make([]int, n+1)
	}

	// 4) Run
	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph // The input graph; read-only within Dijkstra.
	options Options     // Configuration options.
	dist    []int64     // vertex → current best distance from Source.
	prev    []int       // vertex → predecessor on the shortest path (nil unless ReturnPath).
	visited []bool      // Tracks if a vertex's distance is finalized.
	pq      nodePQ      // Min-heap of *nodeItem for lazy priority queue.
}

// init sets every distance to Unreachable and pushes Source=0 onto the heap.
func (r *runner) init() {
	for v := range r.dist {
		r.dist[v] = Unreachable
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.options.Source, dist: 0})
}

// process repeatedly extracts the closest unvisited vertex and relaxes its
// outgoing edges. It stops when the heap is empty or the next distance
// exceeds MaxDistance.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Skip stale entries left behind by lazy decrease-key.
		if r.visited[u] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[u] = true

		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax tries to improve the distance of every out-neighbor of u.
// Assumes r.dist[u] is final.
func (r *runner) relax(u int) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %d: %w", u, err)
	}

	for _, nb := range neighbors {
		newDist := r.dist[u] + nb.Weight
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strictly better only; equal distances do not push duplicates.
		if newDist >= r.dist[nb.To] {
			continue
		}
		r.dist[nb.To] = newDist
		if r.prev != nil {
			r.prev[nb.To] = u
		}
		heap.Push(&r.pq, &nodeItem{id: nb.To, dist: newDist})
	}

	return nil
}

// PathTo rebuilds the vertex sequence source→…→target from a predecessor slice
// returned with WithReturnPath. It returns nil when target is unreachable.
func PathTo(prev []int, dist []int64, source, target int) []int {
	if target < 1 || target >= len(dist) || dist[target] == Unreachable {
		return nil
	}
	var rev []int
	for v := target; v != 0; v = prev[v] {
		rev = append(rev, v)
		if v == source {
			break
		}
	}
	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}

	return path
}

// nodeItem represents a vertex and its tentative distance from the source.
type nodeItem struct {
	id   int   // vertex
	dist int64 // distance from source
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
