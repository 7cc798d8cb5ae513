package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/mst"
)

// ErrUnknownCommand is returned by Parse for any line outside the grammar.
var ErrUnknownCommand = errors.New("protocol: unknown command")

// ErrUnknownFraming indicates a framing name other than "stateful" or "batch".
var ErrUnknownFraming = errors.New("protocol: unknown framing")

// Framing selects the grammar a connection speaks.
type Framing int

const (
	// Stateful mutates and analyzes the shared session graph.
	Stateful Framing = iota
	// Batch computes an MST from edge triples carried on the request line.
	Batch
)

// String returns the configuration name of the framing.
func (f Framing) String() string {
	switch f {
	case Stateful:
		return "stateful"
	case Batch:
		return "batch"
	default:
		return fmt.Sprintf("Framing(%d)", int(f))
	}
}

// ParseFraming resolves a configuration name case-insensitively.
func ParseFraming(name string) (Framing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "stateful", "":
		return Stateful, nil
	case "batch":
		return Batch, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFraming, name)
	}
}

// Kind identifies a parsed command.
type Kind int

const (
	// KindNewGraph is "Newgraph <n>": replace the graph with n isolated vertices.
	KindNewGraph Kind = iota + 1
	// KindNewEdge is "Newedge <u>,<v>,<w>": append a directed edge.
	KindNewEdge
	// KindRemoveEdge is "Removeedge <u>,<v>": delete every u→v edge.
	KindRemoveEdge
	// KindMST is "MST <algorithm> [<root>]" on the shared graph.
	KindMST
	// KindSCC is "SCC": strongly connected components of the shared graph.
	KindSCC
	// KindExit is "exit": close the connection and stop the server.
	KindExit
	// KindBatchMST is the batch framing's "MST <ALGORITHM> u v w ...".
	KindBatchMST
)

// kindNames holds the wire token of each kind; also used as a metrics label.
var kindNames = map[Kind]string{
	KindNewGraph:   "Newgraph",
	KindNewEdge:    "Newedge",
	KindRemoveEdge: "Removeedge",
	KindMST:        "MST",
	KindSCC:        "SCC",
	KindExit:       "exit",
	KindBatchMST:   "MST",
}

// String returns the wire token of the kind, or "unknown".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// Command is one parsed request line. Only the fields of its Kind are set.
type Command struct {
	Kind Kind

	// N is the vertex count of Newgraph.
	N int

	// U, V and W are the endpoints and weight of Newedge / Removeedge.
	U, V int
	W    int64

	// Algorithm and Root select the MST strategy. Root is 0 when omitted.
	Algorithm mst.Algorithm
	Root      int

	// Edges are the triples of a batch request, in line order.
	Edges []core.Edge
}
