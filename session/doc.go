// Package session owns the one shared graph the service mutates and analyzes.
//
// State replaces the process-wide globals of a naive server: it holds the
// current *core.Graph, a monotonically increasing version, a single exclusive
// lock and the subscribers of graph-updated notifications. It is constructed
// explicitly at startup and torn down with Close after every worker has joined.
//
// Every operation runs under the lock, so across connections all mutation and
// MST computation is serialized and each computation observes one consistent
// graph snapshot. Results carry the version they were computed at.
//
// Notifications coalesce: a subscriber channel has room for one Update and a
// newer update replaces an unread one, so slow subscribers never block writers.
//
// Errors:
//
//   - ErrNoGraph – an operation needs a graph but Newgraph was never issued.
//   - ErrClosed  – the state has been torn down.
//   - errors from core, mst and dfs are returned wrapped, unchanged in identity.
package session
