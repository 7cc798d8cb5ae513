// Package mst provides an implementation of Borůvka’s Minimum Spanning Tree algorithm.
package mst

import (
	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dsu"
)

// Boruvka computes a minimum spanning forest of graph, ignoring edge direction.
//
// Steps:
//  1. Validate graph != nil; collect non-loop edges in encounter order.
//  2. Start with one component per vertex (dsu.New(n)).
//  3. Round: scan every edge once; for each component remember its cheapest
//     edge leaving it. Equal weights keep the earlier edge, which makes the
//     ordering strict and prevents cycles among simultaneous choices.
//  4. Accept each remembered edge whose endpoints are still in different
//     components (dsu.Union), accumulating weight.
//  5. Repeat until one component remains.
//
// Stall guard: a round that merges nothing ends the loop. On a disconnected
// graph that round always comes, and the forest built so far is returned with
// Result.Components > 1 instead of looping forever.
//
// Complexity: O(E·α(V)) per round, O(log V) rounds. Memory: O(V + E).
func Boruvka(graph *core.Graph) (*Result, error) {
	// 1. Validate and collect.
	if graph == nil {
		return nil, ErrNilGraph
	}
	n := graph.Order()
	res := newResult(MethodBoruvka, n)

	all := graph.Edges()
	edges := make([]core.Edge, 0, len(all))
	for _, e := range all {
		if e.From != e.To {
			edges = append(edges, e)
		}
	}

	// 2. One component per vertex.
	set := dsu.New(n)
	cheapest := make([]int, n+1) // component root → edge index, -1 if none

	for set.Count() > 1 {
		res.Rounds++

		// 3. Cheapest outgoing edge per component.
		for i := range cheapest {
			cheapest[i] = -1
		}
		for i, e := range edges {
			ru, rv := set.Find(e.From), set.Find(e.To)
			if ru == rv {
				continue
			}
			if c := cheapest[ru]; c < 0 || e.Weight < edges[c].Weight {
				cheapest[ru] = i
			}
			if c := cheapest[rv]; c < 0 || e.Weight < edges[c].Weight {
				cheapest[rv] = i
			}
		}

		// 4. Contract.
		merged := 0
		for root := 1; root <= n; root++ {
			idx := cheapest[root]
			if idx < 0 {
				continue
			}
			if e := edges[idx]; set.Union(e.From, e.To) {
				res.accept(e)
				merged++
			}
		}

		// Stall guard: no component could reach another.
		if merged == 0 {
			break
		}
	}

	return res, nil
}
