// Package dijkstra provides Dijkstra's single-source shortest-path algorithm
// over a *core.Graph with non-negative integer weights.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from one source vertex to every
//     reachable vertex in O((V + E) log V) time.
//   - A min-heap with “lazy decrease-key” always expands the next-closest vertex;
//     stale heap entries are skipped when popped.
//   - Vertices are the dense integers 1..n of core.Graph, so distances and
//     predecessors come back as slices indexed by vertex rather than maps.
//
// Where it is used:
//
//   - package metrics runs Dijkstra from every vertex of an MST (stored in both
//     directions) to obtain all-pairs tree distances.
//
// Key features:
//
//   - Functional options: Source (required), WithReturnPath, WithMaxDistance.
//   - ReturnPath: fills a predecessor slice; PathTo rebuilds a single path.
//   - MaxDistance: stops exploring beyond a distance; such vertices stay Unreachable.
//
// Errors:
//
//   - ErrNilGraph         – graph is nil.
//   - ErrSourceOutOfRange – source outside 1..n (including the unset default 0).
//   - ErrBadMaxDistance   – panic from WithMaxDistance on a negative cap.
//
// Example:
//
//	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source(1), dijkstra.WithReturnPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(dist[4], dijkstra.PathTo(prev, dist, 1, 4))
package dijkstra
