// Package dfs defines types and options for depth-first search traversal,
// including cancellation, pre-/post-order hooks, reversed edges and
// full-graph (forest) traversal.
package dfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to DFS or
	// StronglyConnected.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexOutOfRange indicates that the start vertex lies outside 1..n.
	ErrStartVertexOutOfRange = errors.New("dfs: start vertex out of range")
)

// Option configures optional behavior of DFS traversal.
// Use with DFS(g, start, opts...).
type Option func(*DFSOptions)

// DFSOptions holds configurable parameters for DFS traversal.
// Complexity remains O(V+E) when hooks are O(1).
type DFSOptions struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked immediately upon discovering a vertex (pre-order).
	// Returning an error aborts traversal with that error.
	OnVisit func(v int) error

	// OnExit, if non-nil, is invoked after all descendants of a vertex have
	// been explored (post-order), before appending to result.Order.
	// Returning an error aborts traversal and leaves Order empty.
	OnExit func(v int) error

	// FullTraversal, if true, runs DFS from every unvisited vertex in ascending
	// order, covering disconnected components (forest traversal).
	FullTraversal bool

	// Order, if non-nil, replaces the ascending root order of a full traversal.
	// Vertices missing from it are never used as roots.
	Order []int

	// Reverse follows edges against their direction (v→u for every stored u→v).
	Reverse bool
}

// DefaultOptions returns a DFSOptions struct with:
//   - Background context
//   - No pre-/post-order hooks
//   - Single-source traversal along edge direction
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx: context.Background(),
	}
}

// WithContext returns an Option that sets the Context for DFS traversal.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs fn as a pre-order hook.
func WithOnVisit(fn func(v int) error) Option {
	return func(o *DFSOptions) {
		o.OnVisit = fn
	}
}

// WithOnExit installs fn as a post-order hook.
func WithOnExit(fn func(v int) error) Option {
	return func(o *DFSOptions) {
		o.OnExit = fn
	}
}

// WithFullTraversal enables full-graph traversal.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// WithRootOrder enables full-graph traversal with roots tried in the given order.
func WithRootOrder(order []int) Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
		o.Order = order
	}
}

// WithReverse makes the traversal follow incoming edges instead of outgoing ones.
func WithReverse() Option {
	return func(o *DFSOptions) {
		o.Reverse = true
	}
}

// DFSResult captures the outcome of a depth-first traversal.
// Slices are indexed by vertex; index 0 is unused.
type DFSResult struct {
	// Order records vertices in the sequence they finished (post-order).
	Order []int

	// Depth is the discovery depth of each visited vertex (#edges from its root).
	Depth []int

	// Parent is the vertex each vertex was discovered from; 0 for roots and
	// unvisited vertices.
	Parent []int

	// Visited flags which vertices were reached during the traversal.
	Visited []bool

	// Roots lists the vertex each DFS tree started from, in traversal order.
	Roots []int
}
