package dfs

import (
	"context"
	"sort"

	"github.com/katalvlaran/mstd/core"
)

// StronglyConnected returns the strongly connected components of g using
// Kosaraju's two-pass algorithm:
//
//  1. Full DFS along edge direction; the OnExit hook stacks vertices as they
//     finish.
//  2. Full DFS over reversed edges, taking roots by decreasing finish time;
//     every tree of this pass is one component. The OnVisit hook records
//     pre-order, in which each tree is a contiguous run starting at its root.
//
// ctx cancels both passes. Each component is sorted ascending and components
// are ordered by their smallest member, so the output is deterministic.
// Complexity: O(V + E) time, O(V + E) memory.
func StronglyConnected(ctx context.Context, g *core.Graph) ([][]int, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	n := g.Order()

	// 1. Finish order.
	finished := make([]int, 0, n)
	_, err := DFS(g, 0,
		WithContext(ctx),
		WithFullTraversal(),
		WithOnExit(func(v int) error {
			finished = append(finished, v)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	order := make([]int, len(finished))
	for i, v := range finished {
		order[len(order)-1-i] = v
	}

	// 2. Reverse pass.
	visits := make([]int, 0, n)
	second, err := DFS(g, 0,
		WithContext(ctx),
		WithRootOrder(order),
		WithReverse(),
		WithOnVisit(func(v int) error {
			visits = append(visits, v)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	isRoot := make([]bool, n+1)
	for _, r := range second.Roots {
		isRoot[r] = true
	}

	comps := make([][]int, 0, len(second.Roots))
	var current []int
	for _, v := range visits {
		if isRoot[v] && len(current) > 0 {
			sort.Ints(current)
			comps = append(comps, current)
			current = nil
		}
		current = append(current, v)
	}
	if len(current) > 0 {
		sort.Ints(current)
		comps = append(comps, current)
	}
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })

	return comps, nil
}
