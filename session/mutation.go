package session

import (
	"fmt"

	"github.com/katalvlaran/mstd/core"
)

// MutationKind enumerates graph mutations.
type MutationKind int

const (
	// MutationReplace is Newgraph: a fresh empty graph of order N.
	MutationReplace MutationKind = iota
	// MutationAddEdge appends U→V with weight W.
	MutationAddEdge
	// MutationRemoveEdge deletes every U→V edge.
	MutationRemoveEdge
)

// String returns the wire command name of the mutation.
func (k MutationKind) String() string {
	switch k {
	case MutationReplace:
		return "Newgraph"
	case MutationAddEdge:
		return "Newedge"
	case MutationRemoveEdge:
		return "Removeedge"
	default:
		return fmt.Sprintf("MutationKind(%d)", int(k))
	}
}

// Mutation is one applied change, stamped with the version it produced.
type Mutation struct {
	Version uint64
	Kind    MutationKind
	N       int
	U, V    int
	W       int64
}

// Replay rebuilds the graph a journal describes up to and including version.
// It returns nil when no Newgraph precedes version.
func Replay(journal []Mutation, version uint64) (*core.Graph, error) {
	var g *core.Graph
	var err error
	for _, m := range journal {
		if m.Version > version {
			break
		}
		if g == nil && m.Kind != MutationReplace {
			return nil, fmt.Errorf("%w: %s at version %d", ErrNoGraph, m.Kind, m.Version)
		}
		switch m.Kind {
		case MutationReplace:
			if g, err = core.NewGraph(m.N); err != nil {
				return nil, err
			}
		case MutationAddEdge:
			if err = g.AddEdge(m.U, m.V, m.W); err != nil {
				return nil, err
			}
		case MutationRemoveEdge:
			if _, err = g.RemoveEdge(m.U, m.V); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}
