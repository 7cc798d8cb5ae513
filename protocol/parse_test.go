package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/mst"
	"github.com/katalvlaran/mstd/protocol"
)

func TestParseStateful(t *testing.T) {
	cases := []struct {
		line string
		want protocol.Command
	}{
		{"Newgraph 4", protocol.Command{Kind: protocol.KindNewGraph, N: 4}},
		{"Newgraph 0", protocol.Command{Kind: protocol.KindNewGraph, N: 0}},
		{"Newedge 1,2,3", protocol.Command{Kind: protocol.KindNewEdge, U: 1, V: 2, W: 3}},
		{"Newedge 1, 2, 3", protocol.Command{Kind: protocol.KindNewEdge, U: 1, V: 2, W: 3}},
		{"Newedge 1,2,-3", protocol.Command{Kind: protocol.KindNewEdge, U: 1, V: 2, W: -3}},
		{"Removeedge 2,1", protocol.Command{Kind: protocol.KindRemoveEdge, U: 2, V: 1}},
		{"MST Prim 1", protocol.Command{Kind: protocol.KindMST, Algorithm: mst.MethodPrim, Root: 1}},
		{"MST Boruvka", protocol.Command{Kind: protocol.KindMST, Algorithm: mst.MethodBoruvka}},
		{"MST kruskal", protocol.Command{Kind: protocol.KindMST, Algorithm: mst.MethodKruskal}},
		{"  SCC  ", protocol.Command{Kind: protocol.KindSCC}},
		{"exit", protocol.Command{Kind: protocol.KindExit}},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			got, err := protocol.Parse(protocol.Stateful, tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseStateful_Unknown(t *testing.T) {
	lines := []string{
		"",
		"newgraph 4",  // case-sensitive token
		"Newgraph",    // missing arity
		"Newgraph x",  // malformed number
		"Newgraph 4 5",
		"Newedge 1,2",
		"Newedge 1,2,x",
		"Newedge 1,2,3,4",
		"Removeedge 1",
		"MST",
		"MST Dijkstra 1",
		"MST Prim one",
		"MST Prim 1 2",
		"SCC now",
		"hello",
	}
	for _, line := range lines {
		_, err := protocol.Parse(protocol.Stateful, line)
		assert.ErrorIs(t, err, protocol.ErrUnknownCommand, "line %q", line)
	}
}

func TestParseBatch(t *testing.T) {
	got, err := protocol.Parse(protocol.Batch, "MST PRIM 1 2 3 2 3 1")
	require.NoError(t, err)
	assert.Equal(t, protocol.Command{
		Kind:      protocol.KindBatchMST,
		Algorithm: mst.MethodPrim,
		Edges:     []core.Edge{{From: 1, To: 2, Weight: 3}, {From: 2, To: 3, Weight: 1}},
	}, got)

	for _, line := range []string{"MST", "MST FOO 1 2 3", "MST KRUSKAL 1 2", "MST KRUSKAL 1 x 3", "Newgraph 3"} {
		_, err = protocol.Parse(protocol.Batch, line)
		assert.ErrorIs(t, err, protocol.ErrUnknownCommand, "line %q", line)
	}
}

func TestParseFraming(t *testing.T) {
	f, err := protocol.ParseFraming("Batch")
	require.NoError(t, err)
	assert.Equal(t, protocol.Batch, f)
	f, err = protocol.ParseFraming("")
	require.NoError(t, err)
	assert.Equal(t, protocol.Stateful, f)
	_, err = protocol.ParseFraming("json")
	assert.ErrorIs(t, err, protocol.ErrUnknownFraming)
}
