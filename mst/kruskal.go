// Package mst provides an implementation of Kruskal’s Minimum Spanning Tree algorithm.
// It treats the directed *core.Graph as undirected and produces the MST (or forest).
package mst

import (
	"sort"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dsu"
)

// Kruskal computes a minimum spanning forest of graph, ignoring edge direction.
// It uses a disjoint-set (union-find) data structure with path compression and union by rank.
//
// Error Conditions:
//   - ErrNilGraph : if graph is nil.
//
// Steps:
//  1. Validate graph != nil.
//  2. Collect all edges via graph.Edges() (encounter order), skip self-loops.
//  3. Sort edges by ascending Weight (sort.SliceStable keeps encounter order for equal weights).
//  4. Initialize dsu.New(n).
//  5. Loop over sorted edges: if !Connected(u,v), then Union(u,v) and accept the edge.
//  6. Stop once |V|-1 edges have been accepted or edges run out.
//
// A disconnected graph yields fewer than |V|-1 edges and no error.
// Complexity: O(E log E + α(V)·E) ≈ O(E log V). Memory: O(E + V).
func Kruskal(graph *core.Graph) (*Result, error) {
	// 1. Validate.
	if graph == nil {
		return nil, ErrNilGraph
	}
	n := graph.Order()
	res := newResult(MethodKruskal, n)

	// 2. Collect edges, skipping self-loops: they can never join two components.
	all := graph.Edges()
	edges := make([]core.Edge, 0, len(all))
	for _, e := range all {
		if e.From == e.To {
			continue
		}
		edges = append(edges, e)
	}

	// 3. Stable sort by weight.
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	// 4-6. Scan and union.
	set := dsu.New(n)
	for _, e := range edges {
		if len(res.Edges) == n-1 {
			break
		}
		if set.Connected(e.From, e.To) {
			continue // would close a cycle
		}
		set.Union(e.From, e.To)
		res.accept(e)
	}

	return res, nil
}
