package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/katalvlaran/mstd/config"
	"github.com/katalvlaran/mstd/logging"
	"github.com/katalvlaran/mstd/server"
	"github.com/katalvlaran/mstd/session"
	"github.com/katalvlaran/mstd/telemetry"
)

// serveFlags are the command-line overrides of the loaded configuration.
type serveFlags struct {
	configPath  string
	addr        string
	workers     int
	queue       int
	framing     string
	rateLimit   float64
	rateBurst   int
	maxVertices int
	adminAddr   string
	logLevel    string
}

func newServeCommand() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the TCP command server",
		Long: `Run the TCP command server until a client sends "exit" or the process
receives SIGINT or SIGTERM.

Configuration is read from --config (YAML), then MSTD_* environment
variables, then the flags below.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if err = f.apply(cmd.Flags(), cfg); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, f.configPath)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "path to YAML config file")
	flags.StringVar(&f.addr, "addr", "", "listen address (default :9034)")
	flags.IntVar(&f.workers, "workers", 0, "worker pool size (default 4)")
	flags.IntVar(&f.queue, "queue", 0, "connection queue capacity (default 100)")
	flags.StringVar(&f.framing, "framing", "", "protocol framing: stateful or batch")
	flags.Float64Var(&f.rateLimit, "rate-limit", 0, "per-connection request lines per second, 0 disables")
	flags.IntVar(&f.rateBurst, "rate-burst", 0, "per-connection burst size (default 10)")
	flags.IntVar(&f.maxVertices, "max-vertices", 0, "largest accepted graph order (default 10000)")
	flags.StringVar(&f.adminAddr, "admin-addr", "", "admin HTTP address for /metrics, /healthz, /graph, /paths")
	flags.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

// apply copies every explicitly set flag into cfg and revalidates.
func (f *serveFlags) apply(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("addr") {
		cfg.Server.Addr = f.addr
	}
	if flags.Changed("workers") {
		cfg.Server.Workers = f.workers
	}
	if flags.Changed("queue") {
		cfg.Server.QueueCapacity = f.queue
	}
	if flags.Changed("framing") {
		cfg.Server.Framing = f.framing
	}
	if flags.Changed("rate-limit") {
		cfg.Server.RateLimit = f.rateLimit
	}
	if flags.Changed("rate-burst") {
		cfg.Server.RateBurst = f.rateBurst
	}
	if flags.Changed("max-vertices") {
		cfg.Server.MaxVertices = f.maxVertices
	}
	if flags.Changed("admin-addr") {
		cfg.Admin.Addr = f.adminAddr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}

	return cfg.Validate()
}

// serve wires the components together and blocks until shutdown.
func serve(ctx context.Context, cfg *config.Config, configPath string) error {
	logger, level, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := telemetry.SetupTracing(cfg.Tracing.Enabled, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	graphLog := logger.Named("graph")
	st := session.New(
		session.WithLogger(logger.Named("session")),
		session.WithMaxVertices(cfg.Server.MaxVertices),
		session.WithMSTObserver(metrics.ObserveMST),
		session.WithJournal(func(m session.Mutation) {
			graphLog.Debug("graph mutated",
				zap.Stringer("kind", m.Kind),
				zap.Uint64("version", m.Version),
				zap.Int("n", m.N),
				zap.Int("u", m.U),
				zap.Int("v", m.V),
				zap.Int64("w", m.W),
			)
		}),
	)

	srvCfg, err := server.ConfigFrom(cfg.Server)
	if err != nil {
		return err
	}
	srv := server.New(srvCfg, st, server.WithLogger(logger), server.WithMetrics(metrics))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go metrics.FollowGraph(ctx, st)

	if cfg.Admin.Addr != "" {
		admin := &http.Server{
			Addr: cfg.Admin.Addr,
			Handler: telemetry.NewRouter(telemetry.RouterConfig{
				State:   st,
				Healthy: srv.Running,
				Logger:  logger.Named("admin"),
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("admin listening", zap.String("addr", cfg.Admin.Addr))
			if err := admin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("admin server failed", zap.Error(err))
			}
		}()
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = admin.Shutdown(closeCtx)
		}()
	}

	if configPath != "" {
		go func() {
			err := config.Watch(ctx, configPath, logger.Named("config"), func(next *config.Config) {
				lvl, err := logging.ParseLevel(next.Log.Level)
				if err != nil {
					return
				}
				if lvl != level.Level() {
					level.SetLevel(lvl)
					logger.Info("log level changed", zap.Stringer("level", lvl))
				}
			})
			if err != nil {
				logger.Warn("config watch disabled", zap.Error(err))
			}
		}()
	}

	if err = srv.Run(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}

	return nil
}
