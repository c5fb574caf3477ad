package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/mlb-matchup-service/internal/archive"
	"github.com/preston-bernstein/mlb-matchup-service/internal/config"
	httpserver "github.com/preston-bernstein/mlb-matchup-service/internal/http"
	"github.com/preston-bernstein/mlb-matchup-service/internal/http/handlers"
	"github.com/preston-bernstein/mlb-matchup-service/internal/http/middleware"
	"github.com/preston-bernstein/mlb-matchup-service/internal/logging"
	"github.com/preston-bernstein/mlb-matchup-service/internal/metrics"
	"github.com/preston-bernstein/mlb-matchup-service/internal/poller"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        Syncer
	closers       []func() error
	metricsStop   func(context.Context) error
}

// New constructs a server wired to the configured upstreams.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithUpstreams(cfg, logger, nil, nil)
}

// newServerWithUpstreams wires the server; nil arguments are built from cfg.
func newServerWithUpstreams(cfg config.Config, logger *slog.Logger, u *upstreams, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	var wired upstreams
	if u != nil {
		wired = factory.wrap(cfg, *u)
	} else {
		wired = factory.build(cfg)
	}

	c := buildCore(cfg, logger, recorder, wired)
	store := openArchive(context.Background(), cfg.Job, logger)
	job := buildDailyJob(cfg, c, store, logger)
	plr := poller.New(dailyStatsTask, job.Task(), logger, recorder, cfg.Job.Interval)

	closers := []func() error{c.closeCache}
	if store != nil {
		closers = append(closers, store.Close)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		httpServer:    buildHTTPServer(cfg, c, store, plr, logger, recorder),
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        c.snapshots.syncer,
		closers:       closers,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, c core, store *archive.Store, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil && cfg.Job.Enabled {
		statusFn = plr.Status
	}
	var arch handlers.ArchiveReader
	if store != nil {
		arch = store
	}

	handler := handlers.NewHandler(c.service, c.enumerator, arch, logger, statusFn)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		var job handlers.JobRunner
		if plr != nil {
			job = plr
		}
		admin = handlers.NewAdminHandler(c.snapshots.syncer, job, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	return newNetHTTPServer(cfg.Port, wrapped)
}

// Run starts the snapshot preload, the daily job when enabled and the HTTP
// server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}
	if s.cfg.Job.Enabled && s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	for _, closeFn := range s.closers {
		if closeFn == nil {
			continue
		}
		if err := closeFn(); err != nil && s.logger != nil {
			s.logger.Warn("resource close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
