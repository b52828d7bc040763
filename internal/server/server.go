package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gng-scout/athlete-directory-service/internal/app/athletes"
	"github.com/gng-scout/athlete-directory-service/internal/app/claims"
	"github.com/gng-scout/athlete-directory-service/internal/app/ingest"
	"github.com/gng-scout/athlete-directory-service/internal/config"
	"github.com/gng-scout/athlete-directory-service/internal/divisions"
	httpserver "github.com/gng-scout/athlete-directory-service/internal/http"
	"github.com/gng-scout/athlete-directory-service/internal/http/handlers"
	"github.com/gng-scout/athlete-directory-service/internal/http/middleware"
	"github.com/gng-scout/athlete-directory-service/internal/logging"
	"github.com/gng-scout/athlete-directory-service/internal/metrics"
	"github.com/gng-scout/athlete-directory-service/internal/nlquery"
	"github.com/gng-scout/athlete-directory-service/internal/providers"
	"github.com/gng-scout/athlete-directory-service/internal/refresher"
	"github.com/gng-scout/athlete-directory-service/internal/storage/sqlite"
	"github.com/gng-scout/athlete-directory-service/internal/store"
)

var metricsSetup = metrics.Setup

// memoryDatabase keeps views and claims in process when no path is set.
const memoryDatabase = ":memory:"

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	directory     *athletes.Service
	db            io.Closer
	httpServer    httpServer
	metricsServer httpServer
	refresher     Refresher
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and refresher wiring.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, nil, nil)
}

func newServerWithProvider(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.DirectoryProvider) (*Server, error) {
	return newServerWithMetrics(ctx, cfg, logger, provider, nil)
}

func newServerWithMetrics(ctx context.Context, cfg config.Config, logger *slog.Logger, provider providers.DirectoryProvider, recorder *metrics.Recorder) (*Server, error) {
	classifier, err := buildClassifier(cfg)
	if err != nil {
		return nil, err
	}
	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	directory := athletes.NewService(store.NewMemoryStore(), classifier,
		athletes.WithViews(db),
		athletes.WithVerifier(provider),
		athletes.WithRecorder(recorder),
		athletes.WithLogger(logger),
	)
	claimsSvc := claims.NewService(db, logger)

	snaps := buildSnapshots(cfg)
	ref := refresher.New(provider, directory, snaps.writer, logger, recorder, cfg.RefreshInterval)
	if snaps.store != nil {
		if _, err := ref.Warm(snaps.store); err != nil {
			logging.Info(logger, "no snapshot to warm from", logging.FieldError, err)
		}
	}

	parser := nlquery.NewParser(nlquery.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}, logger)
	handler := handlers.NewHandler(directory, claimsSvc, parser, logger, ref.Status)
	importer := ingest.NewService(provider, provider, logger, recorder)
	admin := handlers.NewAdminHandler(directory, claimsSvc, importer, ref.Refresh, cfg.AdminToken, logger)
	httpSrv := buildHTTPServer(cfg, httpserver.NewRouter(handler, admin), logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		directory:     directory,
		db:            db,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		refresher:     ref,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, directory *athletes.Service, httpSrv httpServer, ref Refresher) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		directory:  directory,
		httpServer: httpSrv,
		refresher:  ref,
	}
}

// buildClassifier loads the reference table from cfg.DivisionsFile, or the
// embedded table when unset.
func buildClassifier(cfg config.Config) (*divisions.Classifier, error) {
	table, err := divisions.LoadTable(cfg.DivisionsFile)
	if err != nil {
		return nil, fmt.Errorf("load division table: %w", err)
	}
	return divisions.New(table), nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlite.Store, error) {
	path := cfg.DatabasePath
	if path == "" {
		path = memoryDatabase
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func buildHTTPServer(cfg config.Config, router http.Handler, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the refresher and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.refresher.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
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
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop refresher", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	// Releases the rate limiter ticker behind the retry decorator.
	if rl, ok := s.refresherProvider().(interface{ Close() }); ok {
		rl.Close()
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logging.Warn(s.logger, "database close failed", logging.FieldError, err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

// refresherProvider extracts the provider from the refresher when it exposes one.
func (s *Server) refresherProvider() providers.AthleteProvider {
	if pa, ok := s.refresher.(interface {
		Provider() providers.AthleteProvider
	}); ok {
		return pa.Provider()
	}
	return nil
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
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
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
