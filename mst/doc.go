// Package mst provides three interchangeable algorithms for computing a Minimum
// Spanning Tree (MST), or a minimum spanning forest, over a *core.Graph:
// Kruskal’s, Prim’s and Borůvka’s.
//
// What & Why
//
//   - What is an MST?
//     Given an undirected, connected, weighted graph G = (V, E), an MST is a subset T ⊆ E such that
//     T connects all vertices in V and the sum of weights of edges in T is minimized.
//     For a disconnected graph the per-component analogue is a minimum spanning forest.
//
//   - Direction:
//     core.Graph stores directed edges, while spanning trees are undirected. Every algorithm here
//     ignores direction when deciding connectivity and records each accepted edge as its original
//     directed (From, To, Weight) triple. Consumers that need undirected semantics (package metrics)
//     store each accepted edge in both directions.
//
// Algorithms Provided
//
//   - Kruskal(g) (*Result, error)
//     Sort all edges by weight (stable, so ties break by encounter order), then union components
//     with a dsu.Set, skipping edges whose endpoints are already connected.
//     Time: O(E log E + α(V)·E). Space: O(V + E).
//
//   - Prim(g, root) (*Result, error)
//     Grow one tree from root with a min-heap of frontier edges. Only the root's component is
//     spanned; unreachable vertices stay isolated in the result.
//     Time: O(E log E). Space: O(V + E).
//
//   - Boruvka(g) (*Result, error)
//     In rounds, pick every component's cheapest leaving edge and contract them all at once.
//     Time: O(E·α(V)) per round, O(log V) rounds on a connected graph.
//     A round that merges nothing stops the loop, so disconnected input returns a forest
//     instead of spinning forever.
//
// Selection
//
//	res, err := mst.Compute(g, mst.WithAlgorithm(mst.MethodPrim), mst.WithRoot(1))
//
// Algorithm is a closed enumeration; Compute dispatches with a switch and returns
// ErrUnknownAlgorithm for anything outside it. ParseAlgorithm maps wire names
// ("Prim", "kruskal", "BORUVKA") to values.
//
// Error Conditions
//
//   - ErrNilGraph         – graph is nil.
//   - ErrUnknownAlgorithm – Algorithm outside the enumeration.
//   - ErrRootOutOfRange   – Prim root outside 1..n.
//
// Disconnected graphs are not errors. Result.Components reports the number of trees in the
// forest and Result.Spanning() is true only for a spanning tree.
//
// Determinism
//
//   - core.Graph.Edges() returns edges by ascending source, then insertion order.
//   - Kruskal stable-sorts by weight; Prim breaks heap ties by push order; Borůvka keeps the
//     earliest of equally cheap edges. Repeated runs on the same graph return identical results.
package mst
