// Package mst defines configuration options, results and sentinel errors for
// MST computation. It selects between Kruskal, Prim and Borůvka via Options.
package mst

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/mstd/core"
)

// ErrNilGraph indicates that Compute was handed a nil graph.
var ErrNilGraph = errors.New("mst: graph is nil")

// ErrUnknownAlgorithm indicates an Algorithm value or name outside the enumeration.
var ErrUnknownAlgorithm = errors.New("mst: unknown algorithm")

// ErrRootOutOfRange indicates that Prim's start vertex lies outside 1..n.
var ErrRootOutOfRange = errors.New("mst: root vertex out of range")

// Algorithm is the closed set of MST strategies.
type Algorithm int

const (
	// MethodKruskal sorts all edges and unions components (global edge scan).
	MethodKruskal Algorithm = iota
	// MethodPrim grows one tree from a root using a min-heap.
	MethodPrim
	// MethodBoruvka contracts every component's cheapest edge per round.
	MethodBoruvka
)

// DefaultRoot is the start vertex Prim uses when none is given.
const DefaultRoot = 1

// algorithmNames maps each Algorithm to its canonical wire name.
var algorithmNames = map[Algorithm]string{
	MethodKruskal: "Kruskal",
	MethodPrim:    "Prim",
	MethodBoruvka: "Boruvka",
}

// String returns the canonical name ("Kruskal", "Prim", "Boruvka").
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}

	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// ParseAlgorithm resolves a name case-insensitively. "Borůvka" is accepted
// as an alias of "Boruvka".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kruskal":
		return MethodKruskal, nil
	case "prim":
		return MethodPrim, nil
	case "boruvka", "borůvka":
		return MethodBoruvka, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Options configures which MST algorithm to run, and for Prim, which start vertex to use.
// Use DefaultOptions() to get a default setup (Kruskal, root 1).
//
// Fields:
//
//	Algorithm: one of MethodKruskal, MethodPrim, MethodBoruvka.
//	Root     : start vertex for Prim; ignored by Kruskal and Borůvka.
type Options struct {
	// Algorithm to run.
	Algorithm Algorithm

	// Root is the starting vertex for Prim's algorithm.
	Root int
}

// Option configures Options.
type Option func(*Options)

// WithAlgorithm returns an Option that selects the algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) { o.Algorithm = a }
}

// WithRoot returns an Option that sets Prim's start vertex.
func WithRoot(root int) Option {
	return func(o *Options) { o.Root = root }
}

// DefaultOptions returns Options for Kruskal with Root = DefaultRoot.
func DefaultOptions() Options {
	return Options{
		Algorithm: MethodKruskal,
		Root:      DefaultRoot,
	}
}

// Result is the outcome of one MST computation.
//
// Edges hold the accepted edges as their original directed triples, in
// acceptance order. For a disconnected graph the result is a minimum spanning
// forest: Components reports how many trees it has (isolated vertices count as
// one-vertex trees), so Components == 1 means the graph was spanned.
type Result struct {
	// Algorithm that produced the result.
	Algorithm Algorithm

	// Root used by Prim; zero for the other algorithms.
	Root int

	// Edges accepted into the tree/forest.
	Edges []core.Edge

	// TotalWeight is the sum of accepted edge weights.
	TotalWeight int64

	// Vertices is n, the vertex count of the input graph.
	Vertices int

	// Components is the number of trees in the resulting forest (n - len(Edges)).
	Components int

	// Rounds counts Borůvka rounds, including a final stalled round if any.
	Rounds int
}

// Spanning reports whether the result connects every vertex.
func (r *Result) Spanning() bool { return r.Components == 1 }

// newResult prepares an empty Result for g.
func newResult(a Algorithm, n int) *Result {
	capacity := n - 1
	if capacity < 0 {
		capacity = 0
	}

	return &Result{
		Algorithm:  a,
		Edges:      make([]core.Edge, 0, capacity),
		Vertices:   n,
		Components: n,
	}
}

// accept records e in the result.
func (r *Result) accept(e core.Edge) {
	r.Edges = append(r.Edges, e)
	r.TotalWeight += e.Weight
	r.Components--
}

// Compute selects and runs the MST algorithm based on opts.
//
//	- MethodKruskal: calls Kruskal(graph).
//	- MethodPrim:    calls Prim(graph, root).
//	- MethodBoruvka: calls Boruvka(graph).
//	- Otherwise:     returns ErrUnknownAlgorithm.
//
// Disconnected input is not an error; inspect Result.Components.
func Compute(graph *core.Graph, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.Algorithm {
	case MethodKruskal:
		return Kruskal(graph)
	case MethodPrim:
		return Prim(graph, cfg.Root)
	case MethodBoruvka:
		return Boruvka(graph)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(cfg.Algorithm))
	}
}
