package protocol_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mstd/protocol"
	"github.com/katalvlaran/mstd/session"
)

// run feeds lines to a fresh stateful dispatcher and returns every reply.
func run(t *testing.T, lines ...string) []protocol.Response {
	t.Helper()
	d := protocol.NewDispatcher(protocol.Stateful, session.New())
	out := make([]protocol.Response, 0, len(lines))
	for _, l := range lines {
		out = append(out, d.Execute(context.Background(), l))
	}

	return out
}

func TestDispatcher_EndToEndScenario(t *testing.T) {
	resp := run(t,
		"Newgraph 4",
		"Newedge 1,2,1",
		"Newedge 2,3,2",
		"Newedge 3,4,3",
		"Newedge 1,4,10",
		"MST Prim 1",
	)
	assert.Equal(t, []string{"New graph created"}, resp[0].Lines)
	for _, r := range resp[1:5] {
		assert.Equal(t, []string{"Edge added"}, r.Lines)
		assert.Equal(t, protocol.OutcomeOK, r.Outcome)
	}
	assert.Equal(t, []string{
		"MST Computed:",
		"Total MST Weight: 6",
		"Longest Distance in MST: 6",
		"Average Distance in MST: 3.333333",
		"Shortest Distance in MST: 1",
	}, resp[5].Lines)
	assert.Equal(t, "MST", resp[5].Command)
}

func TestDispatcher_Forest(t *testing.T) {
	resp := run(t, "Newgraph 4", "Newedge 1,2,5", "Newedge 4,3,7", "MST Boruvka")
	assert.Equal(t, []string{
		"MST Computed:",
		"Total MST Weight: 12",
		"Longest Distance in MST: 7",
		"Average Distance in MST: 6.000000",
		"Shortest Distance in MST: 5",
		"Forest: 2 components",
	}, resp[3].Lines)
}

func TestDispatcher_SingleVertex(t *testing.T) {
	resp := run(t, "Newgraph 1", "MST Kruskal")
	assert.Equal(t, []string{
		"MST Computed:",
		"Total MST Weight: 0",
		"Longest Distance in MST: 0",
		"Average Distance in MST: 0.000000",
		"Shortest Distance in MST: 0",
	}, resp[1].Lines)
}

func TestDispatcher_Errors(t *testing.T) {
	cases := []struct {
		lines []string
		want  string
	}{
		{[]string{"Newedge 1,2,3"}, "Error: session: no graph"},
		{[]string{"MST Prim 1"}, "Error: session: no graph"},
		{[]string{"Newgraph 0"}, "Error: core: vertex count must be positive"},
		{[]string{"Newgraph 2", "Newedge 1,3,1"}, "Error: core: vertex out of range"},
		{[]string{"Newgraph 2", "Newedge 1,2,-1"}, "Error: core: negative edge weight"},
		{[]string{"Newgraph 2", "MST Prim 5"}, "Error: mst: root vertex out of range"},
		{[]string{"Newgraph 2", "Newedge 1,2,9223372036854775807"}, "Error: core: edge weight out of range"},
		{[]string{"Newgraph 10001"}, "Error: session: vertex count exceeds limit"},
	}
	for _, tc := range cases {
		resp := run(t, tc.lines...)
		last := resp[len(resp)-1]
		require.Len(t, last.Lines, 1)
		assert.True(t, strings.HasPrefix(last.Lines[0], tc.want), "%v → %q", tc.lines, last.Lines[0])
		assert.Equal(t, protocol.OutcomeError, last.Outcome)
	}
}

// TestDispatcher_VertexLimit covers both framings: an oversized order is
// refused before any graph is allocated and the previous graph survives.
func TestDispatcher_VertexLimit(t *testing.T) {
	st := session.New()
	d := protocol.NewDispatcher(protocol.Stateful, st, protocol.WithMaxVertices(3))
	assert.Equal(t, []string{"New graph created"}, d.Execute(context.Background(), "Newgraph 3").Lines)

	resp := d.Execute(context.Background(), "Newgraph 4000000000")
	assert.Equal(t, protocol.OutcomeError, resp.Outcome)
	assert.ErrorIs(t, resp.Err, session.ErrTooManyVertices)
	assert.Equal(t, []string{"Edge added"}, d.Execute(context.Background(), "Newedge 1,3,1").Lines)

	b := protocol.NewDispatcher(protocol.Batch, nil, protocol.WithMaxVertices(3))
	resp = b.Execute(context.Background(), "MST Kruskal 1 4000000000 1")
	assert.Equal(t, protocol.OutcomeError, resp.Outcome)
	assert.ErrorIs(t, resp.Err, session.ErrTooManyVertices)
	assert.Equal(t, []string{"1 - 3 : 2", "Total weight: 2"}, b.Execute(context.Background(), "MST Kruskal 1 3 2").Lines)
}

// TestDispatcher_MaxWeightTotals checks that tree weights built from the
// largest accepted edge weights are reported exactly.
func TestDispatcher_MaxWeightTotals(t *testing.T) {
	resp := run(t, "Newgraph 3", "Newedge 1,2,2147483647", "Newedge 2,3,2147483647", "MST Kruskal")
	assert.Equal(t, []string{
		"MST Computed:",
		"Total MST Weight: 4294967294",
		"Longest Distance in MST: 4294967294",
		"Average Distance in MST: 2863311529.333333",
		"Shortest Distance in MST: 2147483647",
	}, resp[3].Lines)
}

func TestDispatcher_UnknownAndRemove(t *testing.T) {
	resp := run(t, "Newgraph 3", "Newedge 1,2,4", "Removeedge 1,2", "Removeedge 1,2", "Frobnicate", "Newedge a,b,c")
	assert.Equal(t, []string{"Edge removed"}, resp[2].Lines)
	assert.Equal(t, []string{"Edge removed"}, resp[3].Lines)
	for _, r := range resp[4:] {
		assert.Equal(t, []string{"Unknown command"}, r.Lines)
		assert.Equal(t, protocol.OutcomeUnknown, r.Outcome)
		assert.Equal(t, "unknown", r.Command)
	}
}

func TestDispatcher_SCC(t *testing.T) {
	resp := run(t, "Newgraph 4", "Newedge 1,2,1", "Newedge 2,1,1", "Newedge 3,4,1", "SCC")
	assert.Equal(t, []string{"SCC count: 3", "1 2", "3", "4"}, resp[4].Lines)
}

func TestDispatcher_Exit(t *testing.T) {
	resp := run(t, "exit")
	assert.True(t, resp[0].Shutdown)
	assert.Empty(t, resp[0].Lines)
	assert.Nil(t, resp[0].Bytes())
}

func TestDispatcher_Batch(t *testing.T) {
	d := protocol.NewDispatcher(protocol.Batch, nil)
	resp := d.Execute(context.Background(), "MST KRUSKAL 1 2 1 2 3 2 3 4 3 1 4 10")
	assert.Equal(t, []string{"1 - 2 : 1", "2 - 3 : 2", "3 - 4 : 3", "Total weight: 6"}, resp.Lines)
	assert.Equal(t, "1 - 2 : 1\n2 - 3 : 2\n3 - 4 : 3\nTotal weight: 6\n", string(resp.Bytes()))

	resp = d.Execute(context.Background(), "MST prim")
	assert.Equal(t, []string{"Total weight: 0"}, resp.Lines)

	resp = d.Execute(context.Background(), "MST PRIM 0 1 1")
	assert.Equal(t, protocol.OutcomeError, resp.Outcome)

	resp = d.Execute(context.Background(), "Newgraph 3")
	assert.Equal(t, []string{"Unknown command"}, resp.Lines)

	resp = d.Execute(context.Background(), "exit")
	assert.True(t, resp.Shutdown)
}

func TestDispatcher_StatefulWithoutWorkspace(t *testing.T) {
	d := protocol.NewDispatcher(protocol.Stateful, nil)
	resp := d.Execute(context.Background(), "Newgraph 3")
	assert.Equal(t, protocol.OutcomeError, resp.Outcome)
}
