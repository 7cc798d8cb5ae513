package protocol

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/mst"
	"github.com/katalvlaran/mstd/session"
)

// Reply texts of the stateful framing.
const (
	ReplyGraphCreated = "New graph created"
	ReplyEdgeAdded    = "Edge added"
	ReplyEdgeRemoved  = "Edge removed"
	ReplyUnknown      = "Unknown command"
	ReplyMSTComputed  = "MST Computed:"
)

// Outcome labels a handled line for metrics and logs.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeError   Outcome = "error"
	OutcomeUnknown Outcome = "unknown"
)

// Workspace is the graph the stateful framing operates on.
// *session.State implements it.
type Workspace interface {
	Replace(n int) error
	AddEdge(u, v int, w int64) error
	RemoveEdge(u, v int) (int, error)
	ComputeMST(ctx context.Context, opts ...mst.Option) (*session.Analysis, error)
	StronglyConnected(ctx context.Context) (*session.Components, error)
}

// Response is the reply to one request line.
type Response struct {
	// Lines are written in order, each terminated by "\n". Empty for exit.
	Lines []string

	// Shutdown asks the server to stop after closing this connection.
	Shutdown bool

	// Command is the wire token of the request, "unknown" if it did not parse.
	Command string

	// Outcome classifies the result.
	Outcome Outcome

	// Err is the underlying error for OutcomeError and OutcomeUnknown.
	Err error
}

// Bytes renders the response as written to the connection.
func (r Response) Bytes() []byte {
	if len(r.Lines) == 0 {
		return nil
	}

	return []byte(strings.Join(r.Lines, "\n") + "\n")
}

// Dispatcher executes request lines of one framing against a Workspace.
// It is stateless and safe for concurrent use when the Workspace is.
type Dispatcher struct {
	framing     Framing
	ws          Workspace
	maxVertices int
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithMaxVertices caps the vertex count of Newgraph and of batch graphs,
// whose order is their largest endpoint. Values below 1 keep
// session.DefaultMaxVertices.
func WithMaxVertices(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n >= 1 {
			d.maxVertices = n
		}
	}
}

// NewDispatcher returns a Dispatcher for framing f. ws may be nil for Batch.
func NewDispatcher(f Framing, ws Workspace, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{framing: f, ws: ws, maxVertices: session.DefaultMaxVertices}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Framing reports the grammar the dispatcher speaks.
func (d *Dispatcher) Framing() Framing { return d.framing }

// Execute parses and runs one line.
func (d *Dispatcher) Execute(ctx context.Context, line string) Response {
	cmd, err := Parse(d.framing, line)
	if err != nil {
		return Response{Lines: []string{ReplyUnknown}, Command: "unknown", Outcome: OutcomeUnknown, Err: err}
	}

	resp := Response{Command: cmd.Kind.String(), Outcome: OutcomeOK}
	switch cmd.Kind {
	case KindExit:
		resp.Shutdown = true
		return resp
	case KindBatchMST:
		resp.Lines, err = d.batchMST(cmd)
	default:
		if d.ws == nil {
			err = errors.New("protocol: no workspace for stateful commands")
			break
		}
		resp.Lines, err = d.stateful(ctx, cmd)
	}
	if err != nil {
		resp.Lines = []string{"Error: " + err.Error()}
		resp.Outcome = OutcomeError
		resp.Err = err
	}

	return resp
}

// stateful runs a session command.
func (d *Dispatcher) stateful(ctx context.Context, cmd Command) ([]string, error) {
	switch cmd.Kind {
	case KindNewGraph:
		if err := d.checkOrder(cmd.N); err != nil {
			return nil, err
		}
		if err := d.ws.Replace(cmd.N); err != nil {
			return nil, err
		}
		return []string{ReplyGraphCreated}, nil

	case KindNewEdge:
		if err := d.ws.AddEdge(cmd.U, cmd.V, cmd.W); err != nil {
			return nil, err
		}
		return []string{ReplyEdgeAdded}, nil

	case KindRemoveEdge:
		if _, err := d.ws.RemoveEdge(cmd.U, cmd.V); err != nil {
			return nil, err
		}
		return []string{ReplyEdgeRemoved}, nil

	case KindMST:
		opts := []mst.Option{mst.WithAlgorithm(cmd.Algorithm)}
		if cmd.Root != 0 {
			opts = append(opts, mst.WithRoot(cmd.Root))
		}
		a, err := d.ws.ComputeMST(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return FormatAnalysis(a), nil

	case KindSCC:
		c, err := d.ws.StronglyConnected(ctx)
		if err != nil {
			return nil, err
		}
		return FormatComponents(c.Groups), nil
	}

	return nil, fmt.Errorf("protocol: unhandled command %s", cmd.Kind)
}

// checkOrder rejects vertex counts above the limit before anything is allocated.
func (d *Dispatcher) checkOrder(n int) error {
	if n > d.maxVertices {
		return fmt.Errorf("%w: %d > %d", session.ErrTooManyVertices, n, d.maxVertices)
	}

	return nil
}

// batchMST builds the throwaway graph over 1..max(u,v) and lists the tree.
func (d *Dispatcher) batchMST(cmd Command) ([]string, error) {
	n := 0
	for _, e := range cmd.Edges {
		if e.From > n {
			n = e.From
		}
		if e.To > n {
			n = e.To
		}
	}
	if len(cmd.Edges) == 0 {
		return []string{"Total weight: 0"}, nil
	}
	if err := d.checkOrder(n); err != nil {
		return nil, err
	}
	g, err := core.FromEdges(n, cmd.Edges)
	if err != nil {
		return nil, err
	}
	res, err := mst.Compute(g, mst.WithAlgorithm(cmd.Algorithm))
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(res.Edges)+1)
	for _, e := range res.Edges {
		lines = append(lines, e.String())
	}
	lines = append(lines, "Total weight: "+strconv.FormatInt(res.TotalWeight, 10))

	return lines, nil
}

// FormatAnalysis renders the multi-line MST reply.
func FormatAnalysis(a *session.Analysis) []string {
	s := a.Summary
	lines := []string{
		ReplyMSTComputed,
		fmt.Sprintf("Total MST Weight: %d", s.TotalWeight),
		fmt.Sprintf("Longest Distance in MST: %d", s.Longest),
		fmt.Sprintf("Average Distance in MST: %.6f", s.Average),
		fmt.Sprintf("Shortest Distance in MST: %d", s.Shortest),
	}
	if !a.Result.Spanning() {
		lines = append(lines, fmt.Sprintf("Forest: %d components", a.Result.Components))
	}

	return lines
}

// FormatComponents renders the SCC reply: a count line, then one line of
// space-separated members per component.
func FormatComponents(groups [][]int) []string {
	lines := make([]string, 0, len(groups)+1)
	lines = append(lines, fmt.Sprintf("SCC count: %d", len(groups)))
	for _, g := range groups {
		members := make([]string, len(g))
		for i, v := range g {
			members[i] = strconv.Itoa(v)
		}
		lines = append(lines, strings.Join(members, " "))
	}

	return lines
}
