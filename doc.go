// Package mstd is a concurrent minimum spanning tree service.
//
// Clients connect over TCP, build one shared directed weighted graph with
// text commands and ask for a minimum spanning tree (or forest) together with
// distance metrics over it.
//
// Packages, leaves first:
//
//	dsu/        disjoint-set union with path halving and union by rank
//	core/       dense 1..n directed weighted multigraph
//	mst/        Kruskal, Prim and Borůvka behind one Compute entry point
//	dijkstra/   single-source shortest paths with a lazy decrease-key heap
//	metrics/    all-pairs distances over a tree: longest, shortest, average
//	dfs/        depth-first search and Kosaraju strongly connected components
//	session/    the shared graph, its lock, version and update notifications
//	protocol/   stateful and batch line grammars, reply formatting
//	telemetry/  Prometheus collectors, admin HTTP router, tracing
//	config/     YAML + environment configuration with validation and watching
//	logging/    zap logger construction
//	server/     leader accept loop, bounded queue, worker pool, shutdown
//	cmd/mstd/   the serve, send and version commands
//
// A typical session:
//
//	$ mstd serve --workers 4 &
//	$ mstd send "Newgraph 4" "Newedge 1,2,1" "Newedge 2,3,2" "Newedge 3,4,3" "MST Prim 1"
//	New graph created
//	Edge added
//	Edge added
//	Edge added
//	MST Computed:
//	Total MST Weight: 6
//	Longest Distance in MST: 6
//	Average Distance in MST: 3.333333
//	Shortest Distance in MST: 1
package mstd
