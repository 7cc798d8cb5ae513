// Package server runs the TCP command service: one leader goroutine accepts
// connections onto a bounded queue and a fixed pool of workers serves them,
// one connection per worker for its whole session.
//
// Load shedding: when the queue is full the leader closes the new connection
// immediately instead of blocking the accept loop.
//
// Shutdown (an exit command, context cancellation or Shutdown) flips the
// running state once, cancels the worker context, closes the listener, closes
// the queue (queued connections are abandoned, not drained), closes every
// in-flight connection so blocked reads unwind, joins the leader and the
// workers and finally tears down the session state.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/mstd/config"
	"github.com/katalvlaran/mstd/protocol"
	"github.com/katalvlaran/mstd/session"
	"github.com/katalvlaran/mstd/telemetry"
)

// Reply lines written by the server itself rather than the dispatcher.
const (
	ReplyRateLimited   = "Error: rate limit exceeded"
	ReplyInternalError = "Error: internal error"
)

const (
	// maxLineBytes bounds one request line; batch lines carry many triples.
	maxLineBytes = 1 << 20

	// acceptBackoff is the pause after a transient Accept failure.
	acceptBackoff = 10 * time.Millisecond
)

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("server: already running")

// Config holds the runtime parameters of a Server.
type Config struct {
	Addr          string
	Workers       int
	QueueCapacity int
	Framing       protocol.Framing
	RateLimit     float64 // lines per second per connection, 0 disables
	RateBurst     int
	MaxVertices   int // graph order limit, below 1 means session.DefaultMaxVertices
}

// ConfigFrom converts the file/env configuration section.
func ConfigFrom(c config.ServerConfig) (Config, error) {
	framing, err := protocol.ParseFraming(c.Framing)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Addr:          c.Addr,
		Workers:       c.Workers,
		QueueCapacity: c.QueueCapacity,
		Framing:       framing,
		RateLimit:     c.RateLimit,
		RateBurst:     c.RateBurst,
		MaxVertices:   c.MaxVertices,
	}, nil
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the collectors; nil records nothing.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// Server is the leader/worker TCP service over one session.State.
type Server struct {
	cfg        Config
	state      *session.State
	dispatcher *protocol.Dispatcher
	queue      *Queue[net.Conn]
	logger     *zap.Logger
	metrics    *telemetry.Metrics

	started  atomic.Bool
	running  atomic.Bool
	stopOnce sync.Once
	stopped  chan struct{} // closed by Shutdown
	ready    chan struct{} // closed once the listener is bound

	mu       sync.Mutex // guards ln, cancel and conns
	ln       net.Listener
	cancel   context.CancelFunc
	conns    map[string]net.Conn
	shutdown bool

	wg sync.WaitGroup
}

// New creates a Server over st. Workers and QueueCapacity below 1 fall back
// to 4 and 100.
func New(cfg Config, st *session.State, opts ...Option) *Server {
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.QueueCapacity < 1 {
		cfg.QueueCapacity = 100
	}
	if cfg.RateBurst < 1 {
		cfg.RateBurst = 1
	}

	s := &Server{
		cfg:        cfg,
		state:      st,
		dispatcher: protocol.NewDispatcher(cfg.Framing, st, protocol.WithMaxVertices(cfg.MaxVertices)),
		queue:      NewQueue[net.Conn](cfg.QueueCapacity),
		logger:     zap.NewNop(),
		stopped:    make(chan struct{}),
		ready:      make(chan struct{}),
		conns:      make(map[string]net.Conn),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("server")

	return s
}

// Ready is closed once the listener is bound and Addr is valid.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Done is closed once shutdown has begun.
func (s *Server) Done() <-chan struct{} { return s.stopped }

// Addr returns the bound listener address, or nil before Ready.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

// Running reports whether the server is serving and not shutting down.
func (s *Server) Running() bool { return s.running.Load() }

// QueueLen returns the number of accepted connections waiting for a worker.
func (s *Server) QueueLen() int { return s.queue.Len() }

// Run binds the listener, starts the leader and the workers, and blocks until
// shutdown completes. The session state is closed before Run returns.
func (s *Server) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		_ = ln.Close()
		return nil
	}
	s.ln = ln
	s.cancel = cancel
	s.mu.Unlock()

	s.running.Store(true)
	close(s.ready)
	s.logger.Info("listening",
		zap.String("addr", ln.Addr().String()),
		zap.Int("workers", s.cfg.Workers),
		zap.Int("queue_capacity", s.cfg.QueueCapacity),
		zap.Stringer("framing", s.cfg.Framing),
	)

	// Context cancellation is one of the shutdown triggers.
	go func() {
		select {
		case <-ctx.Done():
			s.Shutdown()
		case <-s.stopped:
		}
	}()

	s.wg.Add(1 + s.cfg.Workers)
	go s.lead(ln)
	for i := 0; i < s.cfg.Workers; i++ {
		go s.work(ctx, i)
	}

	<-s.stopped
	s.wg.Wait()

	if err = s.state.Close(); err != nil && !errors.Is(err, session.ErrClosed) {
		s.logger.Warn("session teardown failed", zap.Error(err))
	}
	s.logger.Info("stopped")

	return nil
}

// Shutdown begins graceful shutdown. It is idempotent, safe from any
// goroutine and does not wait; Run returns once everything has joined.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		s.running.Store(false)

		s.mu.Lock()
		s.shutdown = true
		if s.cancel != nil {
			s.cancel()
		}
		if s.ln != nil {
			_ = s.ln.Close()
		}
		inflight := make([]net.Conn, 0, len(s.conns))
		for _, c := range s.conns {
			inflight = append(inflight, c)
		}
		s.mu.Unlock()

		abandoned := s.queue.Close()
		for _, c := range abandoned {
			_ = c.Close()
		}
		for _, c := range inflight {
			_ = c.Close()
		}
		s.metrics.SetQueueDepth(0)
		s.logger.Info("shutting down",
			zap.Int("abandoned", len(abandoned)),
			zap.Int("in_flight", len(inflight)),
		)

		close(s.stopped)
	})
}

// lead is the accept loop.
func (s *Server) lead(ln net.Listener) {
	defer s.wg.Done()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept failed", zap.Error(err))
			time.Sleep(acceptBackoff)
			continue
		}

		if err = s.queue.TryPush(conn); err != nil {
			_ = conn.Close()
			if errors.Is(err, ErrQueueClosed) {
				return
			}
			s.metrics.ConnectionRejected()
			s.logger.Warn("connection rejected",
				zap.String("remote", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			continue
		}
		s.metrics.ConnectionAccepted()
		s.metrics.SetQueueDepth(s.queue.Len())
	}
}

// work is one pool member: pop a connection, serve it to completion, repeat.
func (s *Server) work(ctx context.Context, id int) {
	defer s.wg.Done()
	logger := s.logger.With(zap.Int("worker", id))

	for {
		conn, err := s.queue.Pop(ctx)
		if err != nil {
			logger.Debug("worker exiting", zap.Error(err))
			return
		}
		s.metrics.SetQueueDepth(s.queue.Len())
		s.serve(ctx, conn, logger)
	}
}

// serve reads request lines from conn until EOF, an I/O error, exit or shutdown.
func (s *Server) serve(ctx context.Context, conn net.Conn, logger *zap.Logger) {
	connID := uuid.NewString()
	logger = logger.With(zap.String("conn_id", connID), zap.String("remote", conn.RemoteAddr().String()))

	if !s.track(connID, conn) {
		_ = conn.Close()
		return
	}
	idle := s.metrics.WorkerBusy()
	defer func() {
		idle()
		s.untrack(connID)
		_ = conn.Close()
	}()
	logger.Debug("connection opened")

	var limiter *rate.Limiter
	if s.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.RateBurst)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if limiter != nil && !limiter.Allow() {
			s.metrics.Command("ratelimited", string(protocol.OutcomeError))
			if !s.write(conn, []byte(ReplyRateLimited+"\n"), logger) {
				return
			}
			continue
		}

		resp := s.execute(ctx, line, logger)
		s.metrics.Command(resp.Command, string(resp.Outcome))
		if resp.Outcome == protocol.OutcomeError {
			logger.Debug("command failed", zap.String("command", resp.Command), zap.Error(resp.Err))
		}
		if !s.write(conn, resp.Bytes(), logger) {
			return
		}
		if resp.Shutdown {
			logger.Info("shutdown requested")
			_ = conn.Close()
			s.Shutdown()
			return
		}
	}
	if err := scanner.Err(); err != nil && s.running.Load() {
		logger.Debug("connection read failed", zap.Error(err))
		return
	}
	logger.Debug("connection closed by client")
}

// execute runs one line, converting a panic into an internal-error reply.
func (s *Server) execute(ctx context.Context, line string, logger *zap.Logger) (resp protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while handling command", zap.Any("panic", r), zap.String("line", line), zap.Stack("stack"))
			resp = protocol.Response{
				Lines:   []string{ReplyInternalError},
				Command: "unknown",
				Outcome: protocol.OutcomeError,
				Err:     fmt.Errorf("panic: %v", r),
			}
		}
	}()

	return s.dispatcher.Execute(ctx, line)
}

// write sends b; false means the connection is unusable.
func (s *Server) write(conn net.Conn, b []byte, logger *zap.Logger) bool {
	if len(b) == 0 {
		return true
	}
	if _, err := conn.Write(b); err != nil {
		logger.Debug("connection write failed", zap.Error(err))
		return false
	}

	return true
}

// track registers an in-flight connection; false once shutdown has begun.
func (s *Server) track(id string, conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return false
	}
	s.conns[id] = conn

	return true
}

func (s *Server) untrack(id string) {
	s.mu.Lock()
	delete(s.conns, id)
	s.mu.Unlock()
}
