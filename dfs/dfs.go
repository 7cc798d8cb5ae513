// Package dfs implements depth-first search (single-source and forest) on core.Graph.
// It supports cancellation, pre- and post-order hooks, reversed traversal and
// full-graph traversal.
//
// Complexity:
//
//   - Time:   O(V + E), plus overhead of hooks.
//   - Memory: O(V) for the recursion stack and per-vertex slices, O(E) more
//     when WithReverse builds the incoming lists.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/mstd/core"
)

// dfsWalker encapsulates state during DFS.
type dfsWalker struct {
	graph    *core.Graph // underlying graph
	opts     DFSOptions  // traversal options
	res      *DFSResult  // result collector
	incoming [][]int     // reverse adjacency, only with opts.Reverse
}

// DFS performs depth-first search on graph g. If opts include WithFullTraversal,
// it covers all components; otherwise, it starts only from start.
// Returns DFSResult or error if aborted by context or hook.
func DFS(g *core.Graph, start int, opts ...Option) (*DFSResult, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	dopts := DefaultOptions()
	for _, fn := range opts {
		fn(&dopts)
	}

	// 3. Single-source mode: verify start
	if !dopts.FullTraversal && !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrStartVertexOutOfRange, start, g.Order())
	}

	// 4. Initialize result
	n := g.Order()
	res := &DFSResult{
		Order:   make([]int, 0, n),
		Depth:   make([]int, n+1),
		Parent:  make([]int, n+1),
		Visited: make([]bool, n+1),
	}
	walker := &dfsWalker{graph: g, opts: dopts, res: res}
	if dopts.Reverse {
		walker.incoming = reverseAdjacency(g)
	}

	// 5. Traverse: forest or single tree
	if dopts.FullTraversal {
		roots := dopts.Order
		if roots == nil {
			roots = make([]int, n)
			for i := range roots {
				roots[i] = i + 1
			}
		}
		for _, v := range roots {
			if !g.HasVertex(v) || res.Visited[v] {
				continue
			}
			res.Roots = append(res.Roots, v)
			if err := walker.traverse(v, 0); err != nil {
				return res, err
			}
		}
	} else {
		res.Roots = append(res.Roots, start)
		if err := walker.traverse(start, 0); err != nil {
			return res, err
		}
	}

	return res, nil
}

// traverse visits vertex v at given depth, recursing to neighbors.
func (w *dfsWalker) traverse(v int, depth int) error {
	// 1. Cancellation check
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}

	// 2. Mark visited and record depth
	w.res.Visited[v] = true
	w.res.Depth[v] = depth

	// 3. Pre-order hook
	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(v); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnVisit hook for %d: %w", v, err)
		}
	}

	// 4. Fetch neighbors once
	next, err := w.neighbors(v)
	if err != nil {
		w.res.Order = nil

		return fmt.Errorf("dfs: Neighbors(%d): %w", v, err)
	}

	// 5. Explore each neighbor
	for _, nb := range next {
		if !w.res.Visited[nb] {
			w.res.Parent[nb] = v
			if err = w.traverse(nb, depth+1); err != nil {
				return err
			}
		}
	}

	// 6. Post-order hook
	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(v); err != nil {
			w.res.Order = nil

			return fmt.Errorf("dfs: OnExit hook for %d: %w", v, err)
		}
	}

	// 7. Record finish order
	w.res.Order = append(w.res.Order, v)

	return nil
}

// neighbors returns the vertices reachable from v in one step, honoring Reverse.
func (w *dfsWalker) neighbors(v int) ([]int, error) {
	if w.incoming != nil {
		return w.incoming[v], nil
	}
	nbs, err := w.graph.Neighbors(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(nbs))
	for i, nb := range nbs {
		out[i] = nb.To
	}

	return out, nil
}

// reverseAdjacency lists, for every vertex, the sources of its incoming edges
// in core.Graph.Edges order.
func reverseAdjacency(g *core.Graph) [][]int {
	in := make([][]int, g.Order()+1)
	for _, e := range g.Edges() {
		in[e.To] = append(in[e.To], e.From)
	}

	return in
}
