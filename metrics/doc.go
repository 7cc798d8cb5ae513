// Package metrics derives distance metrics from a computed spanning tree or forest.
//
// The tree is rebuilt as a symmetric core.Graph (every accepted edge stored in
// both directions, the undirected convention) and dijkstra.Dijkstra runs once
// from every vertex of every tree with two or more members: O(V) runs of
// O(E log V), cheap on a tree where E = V - 1. Each row is folded into the
// summary as soon as it is computed, so no V×V table is ever held.
//
// Compute scans every unordered pair i < j inside one tree and reports:
//
//   - TotalWeight – copied from mst.Result, never re-derived from distances.
//   - Longest     – maximum pairwise distance.
//   - Shortest    – minimum pairwise distance.
//   - Average     – arithmetic mean over the scanned pairs.
//   - Pairs       – how many pairs were scanned.
//   - LongestPath – the vertices along one longest pair (dijkstra.PathTo).
//
// Zero pairs (a single vertex, or a forest of isolated vertices) yields
// Pairs == 0, Average == 0 and Shortest == 0. The running minimum starts at
// Unbounded and is mapped to 0 explicitly in that case.
package metrics
