package server_test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/mstd/config"
	"github.com/katalvlaran/mstd/protocol"
	"github.com/katalvlaran/mstd/server"
	"github.com/katalvlaran/mstd/session"
	"github.com/katalvlaran/mstd/telemetry"
)

const ioTimeout = 5 * time.Second

// harness runs a server on a loopback port for the duration of a test.
type harness struct {
	srv   *server.Server
	state *session.State
	reg   *prometheus.Registry
	done  chan error
}

func start(t *testing.T, cfg server.Config) *harness {
	t.Helper()
	cfg.Addr = "127.0.0.1:0"
	reg := prometheus.NewRegistry()
	st := session.New()
	srv := server.New(cfg, st,
		server.WithLogger(zaptest.NewLogger(t)),
		server.WithMetrics(telemetry.NewMetrics(reg)),
	)

	h := &harness{srv: srv, state: st, reg: reg, done: make(chan error, 1)}
	go func() { h.done <- srv.Run(context.Background()) }()
	select {
	case <-srv.Ready():
	case err := <-h.done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(ioTimeout):
		t.Fatal("server did not start")
	}
	t.Cleanup(func() {
		srv.Shutdown()
		h.wait(t)
	})

	return h
}

func (h *harness) wait(t *testing.T) {
	t.Helper()
	select {
	case err := <-h.done:
		require.NoError(t, err)
		h.done <- nil // let later waits return too
	case <-time.After(ioTimeout):
		t.Fatal("server did not stop")
	}
}

// client is a line-oriented test connection.
type client struct {
	conn net.Conn
	r    *bufio.Reader
}

func (h *harness) dial(t *testing.T) *client {
	t.Helper()
	conn, err := net.DialTimeout("tcp", h.srv.Addr().String(), ioTimeout)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &client{conn: conn, r: bufio.NewReader(conn)}
}

func (c *client) send(t *testing.T, line string) {
	t.Helper()
	require.NoError(t, c.conn.SetWriteDeadline(time.Now().Add(ioTimeout)))
	_, err := fmt.Fprintf(c.conn, "%s\n", line)
	require.NoError(t, err)
}

func (c *client) readLines(t *testing.T, n int) []string {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(ioTimeout)))
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		l, err := c.r.ReadString('\n')
		require.NoError(t, err)
		lines = append(lines, strings.TrimSuffix(l, "\n"))
	}

	return lines
}

func (c *client) do(t *testing.T, line string, replies int) []string {
	t.Helper()
	c.send(t, line)

	return c.readLines(t, replies)
}

// expectClosed asserts that the server closed the connection: the read must
// fail with EOF or a reset, never a deadline timeout.
func (c *client) expectClosed(t *testing.T) {
	t.Helper()
	require.NoError(t, c.conn.SetReadDeadline(time.Now().Add(ioTimeout)))
	_, err := c.r.ReadByte()
	require.Error(t, err)
	var ne net.Error
	if errors.As(err, &ne) {
		assert.False(t, ne.Timeout(), "connection should be closed, not idle")
	}
}

func TestServer_EndToEnd(t *testing.T) {
	h := start(t, server.Config{Workers: 2, QueueCapacity: 4})
	c := h.dial(t)

	assert.Equal(t, []string{"New graph created"}, c.do(t, "Newgraph 4", 1))
	for _, e := range []string{"1,2,1", "2,3,2", "3,4,3", "1,4,10"} {
		assert.Equal(t, []string{"Edge added"}, c.do(t, "Newedge "+e, 1))
	}
	assert.Equal(t, []string{
		"MST Computed:",
		"Total MST Weight: 6",
		"Longest Distance in MST: 6",
		"Average Distance in MST: 3.333333",
		"Shortest Distance in MST: 1",
	}, c.do(t, "MST Prim 1", 5))

	assert.Equal(t, []string{"Unknown command"}, c.do(t, "Newedge x,y", 1))
	assert.Equal(t, []string{"Edge removed"}, c.do(t, "Removeedge 1,4", 1))
	assert.Equal(t, []string{"Edge removed"}, c.do(t, "Removeedge 1,4", 1))

	assert.Equal(t, 1.0, counterValue(t, h.reg, "mstd_connections_accepted_total"))
}

func TestServer_CRLFLines(t *testing.T) {
	h := start(t, server.Config{Workers: 1})
	c := h.dial(t)
	assert.Equal(t, []string{"New graph created"}, c.do(t, "Newgraph 2\r", 1))
}

func TestServer_ErrorKeepsConnection(t *testing.T) {
	h := start(t, server.Config{Workers: 1})
	c := h.dial(t)
	reply := c.do(t, "Newedge 1,2,3", 1)
	assert.True(t, strings.HasPrefix(reply[0], "Error: session: no graph"), reply[0])
	assert.Equal(t, []string{"New graph created"}, c.do(t, "Newgraph 2", 1))
}

func TestServer_ExitShutsDown(t *testing.T) {
	h := start(t, server.Config{Workers: 2})
	idle := h.dial(t)
	assert.Equal(t, []string{"New graph created"}, idle.do(t, "Newgraph 2", 1))

	c := h.dial(t)
	c.send(t, "exit")
	c.expectClosed(t)

	h.wait(t)
	assert.False(t, h.srv.Running())
	// The in-flight idle connection was closed too.
	idle.expectClosed(t)
	// Session state was torn down after the workers joined.
	assert.ErrorIs(t, h.state.Replace(2), session.ErrClosed)

	_, err := net.DialTimeout("tcp", h.srv.Addr().String(), time.Second)
	assert.Error(t, err, "listener must be closed")
}

func TestServer_ContextCancel(t *testing.T) {
	st := session.New()
	srv := server.New(server.Config{Addr: "127.0.0.1:0", Workers: 1}, st)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	<-srv.Ready()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ioTimeout):
		t.Fatal("Run did not return after cancel")
	}
	assert.ErrorIs(t, srv.Run(context.Background()), server.ErrAlreadyRunning)
}

func TestServer_QueueFullRejects(t *testing.T) {
	h := start(t, server.Config{Workers: 1, QueueCapacity: 1})

	// a occupies the only worker.
	a := h.dial(t)
	assert.Equal(t, []string{"New graph created"}, a.do(t, "Newgraph 3", 1))

	// b waits in the queue.
	b := h.dial(t)
	b.send(t, "Newgraph 2")
	require.Eventually(t, func() bool { return h.srv.QueueLen() == 1 }, ioTimeout, 5*time.Millisecond)

	// c does not fit and is closed by the leader.
	c := h.dial(t)
	c.expectClosed(t)
	require.Eventually(t, func() bool {
		return counterValue(t, h.reg, "mstd_connections_rejected_total") == 1
	}, ioTimeout, 5*time.Millisecond)

	// Once a disconnects, b is served.
	_ = a.conn.Close()
	assert.Equal(t, []string{"New graph created"}, b.readLines(t, 1))
}

func TestServer_ConcurrentClients(t *testing.T) {
	h := start(t, server.Config{Workers: 4, QueueCapacity: 16})
	setup := h.dial(t)
	setup.do(t, "Newgraph 50", 1)

	const clients = 8
	var wg sync.WaitGroup
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := net.DialTimeout("tcp", h.srv.Addr().String(), ioTimeout)
			if !assert.NoError(t, err) {
				return
			}
			defer conn.Close()
			_ = conn.SetDeadline(time.Now().Add(ioTimeout))
			r := bufio.NewReader(conn)
			for j := 1; j < 50; j++ {
				fmt.Fprintf(conn, "Newedge %d,%d,%d\n", j, j+1, i+j)
				l, err := r.ReadString('\n')
				if !assert.NoError(t, err) || !assert.Equal(t, "Edge added\n", l) {
					return
				}
			}
			fmt.Fprintf(conn, "MST Kruskal\n")
			for k := 0; k < 5; k++ {
				l, err := r.ReadString('\n')
				if !assert.NoError(t, err) {
					return
				}
				if k == 0 {
					assert.Equal(t, "MST Computed:\n", l)
				}
			}
		}(i)
	}
	wg.Wait()

	snap, ok := h.state.Snapshot()
	require.True(t, ok)
	assert.Len(t, snap.Edges, clients*49)
}

func TestServer_RateLimit(t *testing.T) {
	h := start(t, server.Config{Workers: 1, RateLimit: 0.001, RateBurst: 1})
	c := h.dial(t)
	assert.Equal(t, []string{"New graph created"}, c.do(t, "Newgraph 2", 1))
	assert.Equal(t, []string{server.ReplyRateLimited}, c.do(t, "Newgraph 2", 1))
}

// TestServer_OversizedGraphRefused keeps an oversized order from reaching the
// allocator: the client gets an error line and the server keeps serving.
func TestServer_OversizedGraphRefused(t *testing.T) {
	h := start(t, server.Config{Workers: 2, MaxVertices: 100})
	c := h.dial(t)
	reply := c.do(t, "Newgraph 4000000000", 1)
	require.Len(t, reply, 1)
	assert.True(t, strings.HasPrefix(reply[0], "Error: session: vertex count exceeds limit"), reply[0])
	assert.Equal(t, []string{"New graph created"}, c.do(t, "Newgraph 100", 1))

	other := h.dial(t)
	assert.Equal(t, []string{"Edge added"}, other.do(t, "Newedge 1,100,3", 1))
	assert.True(t, h.srv.Running())
}

func TestServer_BatchFraming(t *testing.T) {
	h := start(t, server.Config{Workers: 1, Framing: protocol.Batch})
	c := h.dial(t)
	assert.Equal(t, []string{"1 - 2 : 1", "2 - 3 : 2", "Total weight: 3"}, c.do(t, "MST PRIM 1 2 1 2 3 2 1 3 5", 3))
	assert.Equal(t, []string{"Unknown command"}, c.do(t, "Newgraph 3", 1))
}

func TestConfigFrom(t *testing.T) {
	cfg, err := server.ConfigFrom(config.Default().Server)
	require.NoError(t, err)
	assert.Equal(t, server.Config{
		Addr:          ":9034",
		Workers:       4,
		QueueCapacity: 100,
		Framing:       protocol.Stateful,
		RateBurst:     10,
		MaxVertices:   10000,
	}, cfg)

	_, err = server.ConfigFrom(config.ServerConfig{Framing: "xml"})
	assert.ErrorIs(t, err, protocol.ErrUnknownFraming)
}

// counterValue reads the single-series counter name from reg, 0 if absent.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name && len(f.GetMetric()) == 1 {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}

	return 0
}
