// Package mst provides an implementation of Prim’s Minimum Spanning Tree (MST) algorithm.
// It grows the tree from a root vertex using a min‐heap, treating edges as undirected.
package mst

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/mstd/core"
)

// Prim computes the minimum spanning tree of the component containing root
// by growing outwards from root using a min‐heap.
//
// Edges are traversed in both directions (an edge u→v lets the tree reach v
// from u and u from v); accepted edges keep their original orientation.
//
// Error Conditions:
//   - ErrNilGraph       : if graph is nil.
//   - ErrRootOutOfRange : if root lies outside 1..n.
//
// Steps:
//  1. Validate graph and root.
//  2. Mark root as visited and push its incident edges (graph.Incident,
//     both directions) into pq.
//  3. While pq not empty and the tree has < |V|-1 edges:
//     a. Pop the smallest‐weight frontier edge.
//     b. If its far endpoint is already visited, skip (would form a cycle).
//     c. Otherwise accept it, mark the endpoint visited, push its incident edges.
//
// Vertices unreachable from root stay out of the tree; they show up as extra
// components in the Result, not as an error.
// Complexity: O(E log E) time, O(V + E) memory.
func Prim(graph *core.Graph, root int) (*Result, error) {
	// 1. Validate.
	if graph == nil {
		return nil, ErrNilGraph
	}
	n := graph.Order()
	if root < 1 || root > n {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrRootOutOfRange, root, n)
	}
	res := newResult(MethodPrim, n)
	res.Root = root

	// 2. Seed the frontier from root.
	visited := make([]bool, n+1)
	pq := &edgePQ{}
	heap.Init(pq)
	seq := 0
	push := func(from int) error {
		incident, err := graph.Incident(from)
		if err != nil {
			return err
		}
		for _, e := range incident {
			next := e.To
			if next == from {
				next = e.From
			}
			if visited[next] {
				continue // also drops self-loops
			}
			heap.Push(pq, &frontierEdge{edge: e, next: next, seq: seq})
			seq++
		}

		return nil
	}
	visited[root] = true
	if err := push(root); err != nil {
		return nil, err
	}

	// 3. Main loop.
	for pq.Len() > 0 && len(res.Edges) < n-1 {
		fe := heap.Pop(pq).(*frontierEdge)
		if visited[fe.next] {
			continue
		}
		visited[fe.next] = true
		res.accept(fe.edge)
		if err := push(fe.next); err != nil {
			return nil, err
		}
	}

	return res, nil
}

// frontierEdge is a heap entry: an edge leaving the tree toward next.
// seq records push order so equal weights pop deterministically.
type frontierEdge struct {
	edge core.Edge
	next int
	seq  int
}

// edgePQ implements heap.Interface for a min‐heap of *frontierEdge, ordered by
// Weight and then by push order.
type edgePQ []*frontierEdge

// Len returns the number of edges in the priority queue.
func (pq edgePQ) Len() int { return len(pq) }

// Less orders by ascending weight, breaking ties by push order.
func (pq edgePQ) Less(i, j int) bool {
	if pq[i].edge.Weight != pq[j].edge.Weight {
		return pq[i].edge.Weight < pq[j].edge.Weight
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps elements at indices i and j.
func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends a new *frontierEdge to the heap. Called by heap.Push.
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(*frontierEdge)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
