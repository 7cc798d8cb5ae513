package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/mstd/mst"
	"github.com/katalvlaran/mstd/session"
)

// Metrics groups the service collectors. Build it with NewMetrics; a nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// connectionsAccepted counts connections handed to the queue
	connectionsAccepted prometheus.Counter

	// connectionsRejected counts connections closed because the queue was full
	connectionsRejected prometheus.Counter

	// commands counts handled lines by command token and outcome
	commands *prometheus.CounterVec

	// mstDuration tracks MST plus metrics computation time by algorithm
	mstDuration *prometheus.HistogramVec

	queueDepth    prometheus.Gauge
	busyWorkers   prometheus.Gauge
	graphVertices prometheus.Gauge
	graphEdges    prometheus.Gauge
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		connectionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "mstd_connections_accepted_total",
			Help: "Total connections accepted and queued",
		}),
		connectionsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "mstd_connections_rejected_total",
			Help: "Total connections closed on accept because the queue was full",
		}),
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mstd_commands_total",
			Help: "Total request lines by command and outcome",
		}, []string{"command", "outcome"}),
		mstDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mstd_mst_duration_seconds",
			Help:    "MST and metrics computation time by algorithm",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"algorithm"}),
		queueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mstd_queue_depth",
			Help: "Connections waiting for a worker",
		}),
		busyWorkers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mstd_busy_workers",
			Help: "Workers currently serving a connection",
		}),
		graphVertices: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mstd_graph_vertices",
			Help: "Vertex count of the current graph",
		}),
		graphEdges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mstd_graph_edges",
			Help: "Edge count of the current graph",
		}),
	}
}

// ConnectionAccepted records a queued connection.
func (m *Metrics) ConnectionAccepted() {
	if m == nil {
		return
	}
	m.connectionsAccepted.Inc()
}

// ConnectionRejected records a connection shed on a full queue.
func (m *Metrics) ConnectionRejected() {
	if m == nil {
		return
	}
	m.connectionsRejected.Inc()
}

// Command records one handled request line.
func (m *Metrics) Command(command, outcome string) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome).Inc()
}

// ObserveMST records one MST computation. Its signature matches
// session.WithMSTObserver.
func (m *Metrics) ObserveMST(a mst.Algorithm, d time.Duration) {
	if m == nil {
		return
	}
	m.mstDuration.WithLabelValues(a.String()).Observe(d.Seconds())
}

// SetQueueDepth publishes the current queue length.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.queueDepth.Set(float64(n))
}

// WorkerBusy marks a worker as serving; the returned func marks it idle again.
func (m *Metrics) WorkerBusy() func() {
	if m == nil {
		return func() {}
	}
	m.busyWorkers.Inc()

	return m.busyWorkers.Dec
}

// GraphUpdated publishes the size of the graph after a mutation.
func (m *Metrics) GraphUpdated(u session.Update) {
	if m == nil {
		return
	}
	m.graphVertices.Set(float64(u.Vertices))
	m.graphEdges.Set(float64(u.Edges))
}

// FollowGraph subscribes to st and keeps the graph gauges current until ctx
// ends or st is closed.
func (m *Metrics) FollowGraph(ctx context.Context, st *session.State) {
	updates, cancel := st.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			m.GraphUpdated(u)
		}
	}
}
