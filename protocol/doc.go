// Package protocol translates the line-oriented text protocol into calls on
// the graph workspace and formats the replies.
//
// Two framings share one MST engine and are chosen per deployment:
//
//   - Stateful: Newgraph, Newedge, Removeedge, MST, SCC and exit operate on the
//     shared session graph.
//   - Batch: "MST <ALGORITHM> u v w u v w ..." builds a throwaway graph from the
//     triples on the line and lists the accepted edges.
//
// Leading tokens are case-sensitive; algorithm names are not.
//
// Failure policy: a line that does not parse (unknown token, wrong arity,
// malformed number, unknown algorithm) is answered with "Unknown command".
// A well-formed request the workspace rejects (no graph yet, vertex out of
// range, negative weight, bad vertex count, bad root) is answered with a single
// "Error: <diagnostic>" line. Neither ends the connection.
package protocol
