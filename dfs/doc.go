// Package dfs implements depth-first search traversal and strongly connected
// components on a core.Graph.
//
// What:
//
//   - DFS (Depth-First Search): explores as far as possible along each
//     branch before backtracking. Supports:
//   - Pre-order and post-order hooks
//   - Cancellation via context.Context
//   - Reversed traversal (incoming edges) and caller-chosen root order
//   - StronglyConnected: Kosaraju's algorithm built from two DFS passes
//     driven by the OnExit and OnVisit hooks; the SCC command of the service
//     reports its output.
//
// Why:
//   - Find mutually reachable groups of vertices in the directed graph the
//     MST engine treats as undirected
//   - A graph is acyclic exactly when every component is a single vertex
//     without a self-loop
//
// Key Types:
//
//   - Option: functional options for DFS behavior
//   - DFSOptions: holds Context, hooks, Reverse, Order
//   - DFSResult: collects post-order and per-vertex Depth, Parent, Visited slices
//
// Complexity:
//
//   - DFS:               Time O(V+E), Memory O(V)
//   - StronglyConnected: Time O(V+E), Memory O(V+E)
//
// Errors:
//
//   - ErrGraphNil               graph pointer is nil
//   - ErrStartVertexOutOfRange  start vertex not in 1..n
//   - context.Canceled          DFS canceled via context
//   - hook errors               propagated from OnVisit or OnExit
package dfs
