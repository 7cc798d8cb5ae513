package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/katalvlaran/mstd/core"
	"github.com/katalvlaran/mstd/dfs"
	"github.com/katalvlaran/mstd/metrics"
	"github.com/katalvlaran/mstd/mst"
)

// TracerName identifies spans started by this package.
const TracerName = "github.com/katalvlaran/mstd/session"

// DefaultMaxVertices bounds Replace when WithMaxVertices is not given.
const DefaultMaxVertices = 10000

var (
	// ErrNoGraph indicates an operation before any graph was created.
	ErrNoGraph = errors.New("session: no graph, use Newgraph first")

	// ErrClosed indicates the state was already torn down.
	ErrClosed = errors.New("session: state closed")

	// ErrTooManyVertices indicates a vertex count above the configured limit.
	ErrTooManyVertices = errors.New("session: vertex count exceeds limit")
)

// Update describes the graph right after a successful mutation.
type Update struct {
	Version  uint64
	Vertices int
	Edges    int
}

// Analysis is one MST computation with its derived metrics.
type Analysis struct {
	Result  *mst.Result
	Summary metrics.Summary
	Version uint64 // graph version the result was computed at
}

// Components is one SCC computation.
type Components struct {
	Groups  [][]int
	Version uint64
}

// Snapshot is a point-in-time copy of the graph for read-only consumers.
// Graph is a private clone: algorithms may run on it without the state lock.
type Snapshot struct {
	Version  uint64
	Vertices int
	Edges    []core.Edge
	Graph    *core.Graph
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithTracer sets the tracer used for analysis spans; the default comes from
// the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *State) { s.tracer = t }
}

// WithJournal installs fn to receive every applied mutation, in order, while
// the lock is held. fn must not call back into the State.
func WithJournal(fn func(Mutation)) Option {
	return func(s *State) { s.journal = fn }
}

// WithMaxVertices caps the vertex count Replace accepts. Values below 1 keep
// DefaultMaxVertices.
func WithMaxVertices(n int) Option {
	return func(s *State) {
		if n >= 1 {
			s.maxVertices = n
		}
	}
}

// WithMSTObserver installs fn to receive the algorithm and duration of every
// successful MST computation.
func WithMSTObserver(fn func(mst.Algorithm, time.Duration)) Option {
	return func(s *State) { s.observe = fn }
}

// State is the shared server state. The zero value is not usable; call New.
type State struct {
	mu      sync.Mutex
	graph   *core.Graph
	version uint64
	subs    map[int]chan Update
	nextSub int
	closed  bool

	maxVertices int

	logger  *zap.Logger
	tracer  trace.Tracer
	journal func(Mutation)
	observe func(mst.Algorithm, time.Duration)
}

// New creates a State with no graph at version 0.
func New(opts ...Option) *State {
	s := &State{
		subs:        make(map[int]chan Update),
		maxVertices: DefaultMaxVertices,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(TracerName)
	}

	return s
}

// Version returns the current graph version; 0 means no mutation yet.
func (s *State) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

// Replace discards the current graph and installs an empty one over 1..n.
// n < 1 returns core.ErrBadOrder and n above the limit ErrTooManyVertices;
// both keep the previous graph.
func (s *State) Replace(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if n > s.maxVertices {
		return fmt.Errorf("%w: %d > %d", ErrTooManyVertices, n, s.maxVertices)
	}
	g, err := core.NewGraph(n)
	if err != nil {
		return err
	}
	s.graph = g
	s.commitLocked(Mutation{Kind: MutationReplace, N: n})

	return nil
}

// AddEdge appends the directed edge u→v with weight w.
func (s *State) AddEdge(u, v int, w int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graphLocked()
	if err != nil {
		return err
	}
	if err = g.AddEdge(u, v, w); err != nil {
		return err
	}
	s.commitLocked(Mutation{Kind: MutationAddEdge, U: u, V: v, W: w})

	return nil
}

// RemoveEdge deletes every u→v edge and reports how many were removed.
// Removing an absent edge succeeds without bumping the version.
func (s *State) RemoveEdge(u, v int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graphLocked()
	if err != nil {
		return 0, err
	}
	removed, err := g.RemoveEdge(u, v)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.commitLocked(Mutation{Kind: MutationRemoveEdge, U: u, V: v})
	}

	return removed, nil
}

// ComputeMST runs the selected MST algorithm and the metrics pass on the
// current graph. The lock is held for the whole computation.
func (s *State) ComputeMST(ctx context.Context, opts ...mst.Option) (*Analysis, error) {
	cfg := mst.DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graphLocked()
	if err != nil {
		return nil, err
	}

	_, span := s.tracer.Start(ctx, "session.ComputeMST",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("mst.algorithm", cfg.Algorithm.String()),
			attribute.Int("graph.vertices", g.Order()),
			attribute.Int("graph.edges", g.Size()),
			attribute.Int64("graph.version", int64(s.version)),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := mst.Compute(g, opts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}
	summary, err := metrics.Compute(res)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}
	elapsed := time.Since(start)

	span.SetAttributes(
		attribute.Int64("mst.total_weight", res.TotalWeight),
		attribute.Int("mst.components", res.Components),
		attribute.IntSlice("mst.longest_path", summary.LongestPath),
	)
	span.SetStatus(codes.Ok, "")
	if s.observe != nil {
		s.observe(res.Algorithm, elapsed)
	}
	s.logger.Debug("mst computed",
		zap.Stringer("algorithm", res.Algorithm),
		zap.Uint64("version", s.version),
		zap.Int64("total_weight", res.TotalWeight),
		zap.Int("components", res.Components),
		zap.Ints("longest_path", summary.LongestPath),
		zap.Duration("elapsed", elapsed),
	)

	return &Analysis{Result: res, Summary: summary, Version: s.version}, nil
}

// StronglyConnected returns the strongly connected components of the current graph.
func (s *State) StronglyConnected(ctx context.Context) (*Components, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.graphLocked()
	if err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, "session.StronglyConnected",
		trace.WithAttributes(attribute.Int("graph.vertices", g.Order())))
	defer span.End()

	groups, err := dfs.StronglyConnected(ctx, g)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}
	span.SetAttributes(attribute.Int("scc.count", len(groups)))

	return &Components{Groups: groups, Version: s.version}, nil
}

// Snapshot clones the current graph. ok is false when no graph exists.
func (s *State) Snapshot() (snap Snapshot, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.graph == nil || s.closed {
		return Snapshot{Version: s.version}, false
	}

	g := s.graph.Clone()

	return Snapshot{Version: s.version, Vertices: g.Order(), Edges: g.Edges(), Graph: g}, true
}

// Subscribe registers for graph-updated notifications. The returned cancel
// function unregisters and closes the channel; it is safe to call twice.
func (s *State) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Update, 1)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(c)
			}
		})
	}

	return ch, cancel
}

// Close tears the state down: the graph is dropped and every subscriber
// channel is closed. Later calls return ErrClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	s.graph = nil
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}

	return nil
}

// graphLocked returns the graph or the reason there is none. Caller holds mu.
func (s *State) graphLocked() (*core.Graph, error) {
	if s.closed {
		return nil, ErrClosed
	}
	if s.graph == nil {
		return nil, ErrNoGraph
	}

	return s.graph, nil
}

// commitLocked bumps the version, journals m and notifies subscribers.
// Caller holds mu.
func (s *State) commitLocked(m Mutation) {
	s.version++
	m.Version = s.version
	if s.journal != nil {
		s.journal(m)
	}

	u := Update{Version: s.version, Vertices: s.graph.Order(), Edges: s.graph.Size()}
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default:
			// Replace the unread update with the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- u:
			default:
			}
		}
	}
}
