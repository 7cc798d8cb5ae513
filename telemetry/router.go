package telemetry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/katalvlaran/mstd/dijkstra"
	"github.com/katalvlaran/mstd/session"
)

// RouterConfig wires the admin router to its data sources.
type RouterConfig struct {
	// Gatherer backs /metrics; nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// State backs /graph and /paths; nil answers 503.
	State *session.State

	// Healthy reports liveness for /healthz; nil is always healthy.
	Healthy func() bool

	// Logger receives one line per request; nil disables request logging.
	Logger *zap.Logger
}

// graphView is the JSON body of GET /graph.
type graphView struct {
	Version  uint64     `json:"version"`
	Vertices int        `json:"vertices"`
	Edges    []edgeView `json:"edges"`
}

type edgeView struct {
	From   int   `json:"from"`
	To     int   `json:"to"`
	Weight int64 `json:"weight"`
}

// pathsView is the JSON body of GET /paths/{source}.
type pathsView struct {
	Version uint64              `json:"version"`
	Source  int                 `json:"source"`
	Targets map[string]pathView `json:"targets"`
}

type pathView struct {
	Distance int64 `json:"distance"`
	Path     []int `json:"path"`
}

// NewRouter builds the admin HTTP handler.
func NewRouter(cfg RouterConfig) http.Handler {
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		router.Use(requestLogger(cfg.Logger))
	}

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Healthy != nil && !cfg.Healthy() {
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok\n"))
	})
	router.Get("/graph", func(w http.ResponseWriter, r *http.Request) {
		if cfg.State == nil {
			http.Error(w, "no state", http.StatusServiceUnavailable)
			return
		}
		snap, ok := cfg.State.Snapshot()
		if !ok {
			http.Error(w, "no graph", http.StatusNotFound)
			return
		}
		view := graphView{Version: snap.Version, Vertices: snap.Vertices, Edges: make([]edgeView, len(snap.Edges))}
		for i, e := range snap.Edges {
			view.Edges[i] = edgeView{From: e.From, To: e.To, Weight: e.Weight}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	})
	router.Get("/paths/{source}", func(w http.ResponseWriter, r *http.Request) {
		if cfg.State == nil {
			http.Error(w, "no state", http.StatusServiceUnavailable)
			return
		}
		src, err := strconv.Atoi(chi.URLParam(r, "source"))
		if err != nil {
			http.Error(w, "bad source", http.StatusBadRequest)
			return
		}
		opts := []dijkstra.Option{dijkstra.Source(src), dijkstra.WithReturnPath()}
		if raw := r.URL.Query().Get("max"); raw != "" {
			limit, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || limit < 0 {
				http.Error(w, "bad max", http.StatusBadRequest)
				return
			}
			opts = append(opts, dijkstra.WithMaxDistance(limit))
		}
		snap, ok := cfg.State.Snapshot()
		if !ok {
			http.Error(w, "no graph", http.StatusNotFound)
			return
		}

		dist, prev, err := dijkstra.Dijkstra(snap.Graph, opts...)
		if errors.Is(err, dijkstra.ErrSourceOutOfRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		view := pathsView{Version: snap.Version, Source: src, Targets: make(map[string]pathView)}
		for v := 1; v < len(dist); v++ {
			if dist[v] == dijkstra.Unreachable {
				continue
			}
			view.Targets[strconv.Itoa(v)] = pathView{Distance: dist[v], Path: dijkstra.PathTo(prev, dist, src, v)}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(view)
	})

	return router
}

// requestLogger logs each admin request at debug level.
func requestLogger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("admin request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
