// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on a *core.Graph.
//
// Options:
//
//	– Source:      starting vertex (must lie in 1..n).
//	– ReturnPath:  if true, return the predecessor slice for path reconstruction.
//	– MaxDistance: optional cap on distances to explore; vertices beyond this stay Unreachable.
//
// Errors (sentinel):
//
//	– ErrNilGraph          if the provided graph pointer is nil.
//	– ErrSourceOutOfRange  if the source vertex lies outside 1..n.
//	– ErrBadMaxDistance    if MaxDistance < 0 (raised as a panic by WithMaxDistance).
package dijkstra

import (
	"errors"
	"math"
)

// Unreachable is the distance reported for vertices no path reaches.
const Unreachable = int64(math.MaxInt64)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrSourceOutOfRange indicates that the source vertex is not in 1..n.
	// The zero Options value has Source 0, so forgetting Source(...) lands here.
	ErrSourceOutOfRange = errors.New("dijkstra: source vertex out of range")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source      – starting vertex (1..n).
// ReturnPath  – if true, return the predecessor slice; otherwise prev is nil.
// MaxDistance – optional cap on distances to explore. Must be ≥ 0.
// Default is Unreachable (no cap).
type Options struct {
	Source      int   // The source vertex
	ReturnPath  bool  // Whether to return the predecessor slice
	MaxDistance int64 // Maximum distance to explore
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting vertex. Must be called; the default 0 is invalid.
func Source(v int) Option {
	return func(o *Options) {
		o.Source = v
	}
}

// WithReturnPath enables generation of the predecessor slice in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Vertices whose shortest distance would exceed this value are not explored.
// A negative value panics with ErrBadMaxDistance when the option is built,
// not when it is applied.
func WithMaxDistance(max int64) Option {
	if max < 0 {
		panic(ErrBadMaxDistance)
	}

	return func(o *Options) {
		o.MaxDistance = max
	}
}

// DefaultOptions returns Options for the given source with no path and no cap.
func DefaultOptions(source int) Options {
	return Options{
		Source:      source,
		ReturnPath:  false,
		MaxDistance: Unreachable,
	}
}
