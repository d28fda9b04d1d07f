// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/law-makers/itemscrape/internal/batch"
	"github.com/law-makers/itemscrape/internal/cache"
	"github.com/law-makers/itemscrape/internal/config"
	"github.com/law-makers/itemscrape/internal/extract"
	"github.com/law-makers/itemscrape/internal/utils/output"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per command invocation and shared by the CLI commands.
// Use Close() to stop the metrics endpoint and log cache statistics.
type Application struct {
	Config     *config.Config
	Logger     *zerolog.Logger
	Format     output.Format
	Dispatcher *extract.Dispatcher
	Cache      *cache.RecordCache
	Metrics    *batch.Metrics

	metricsServer *http.Server
	startTime     time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Builds the embedded-data decoder and the extractor dispatcher
//   - Creates the record cache and the batch metrics
//
// The metrics endpoint is only started by ServeMetrics.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := newLogger(cfg)

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	decoder := extract.Decoder{
		Lenient:     cfg.Lenient,
		EvalTimeout: cfg.EvalTimeout,
	}
	dispatcher := extract.NewDispatcher(
		extract.NewTaobaoExtractor(decoder),
		extract.NewTmallExtractor(),
	)
	logger.Debug().
		Bool("lenient", cfg.Lenient).
		Dur("eval_timeout", cfg.EvalTimeout).
		Msg("Extractors initialized")

	recordCache, err := cache.NewRecordCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create record cache: %w", err)
	}
	logger.Debug().Int("size", cfg.CacheSize).Msg("Record cache initialized")

	app := &Application{
		Config:     cfg,
		Logger:     &logger,
		Format:     format,
		Dispatcher: dispatcher,
		Cache:      recordCache,
		Metrics:    batch.NewMetrics(),
		startTime:  time.Now(),
	}

	logger.Info().Msg("Application initialized successfully")
	return app, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logLevel := zerolog.ErrorLevel // default: suppress non-verbose info logs
	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	var logWriter io.Writer
	if cfg.JSONLog {
		// JSON logs to stderr
		logWriter = os.Stderr
	} else {
		logWriter = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	logger := log.Output(logWriter).With().Timestamp().Logger()
	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")
	return logger
}

// Runner returns a batch runner wired to the application's dispatcher,
// cache and metrics.
func (a *Application) Runner() *batch.Runner {
	return batch.New(a.Dispatcher,
		batch.WithConcurrency(a.Config.Workers),
		batch.WithCache(a.Cache),
		batch.WithMetrics(a.Metrics),
	)
}

// ServeMetrics exposes the batch metrics on addr until Close is called.
// An empty addr is a no-op.
func (a *Application) ServeMetrics(addr string) error {
	if addr == "" || a.metricsServer != nil {
		return nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.Metrics.Registry, promhttp.HandlerOpts{}))
	a.metricsServer = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.metricsServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Warn().Err(err).Msg("Metrics server stopped")
		}
	}()

	a.Logger.Info().Str("addr", ln.Addr().String()).Msg("Serving metrics")
	return nil
}

// Close gracefully shuts down the application.
//
// A context with a timeout should be provided to prevent indefinite blocking.
func (a *Application) Close(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")

	var err error
	if a.metricsServer != nil {
		if err = a.metricsServer.Shutdown(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("Error stopping metrics server")
		}
		a.metricsServer = nil
	}

	if a.Cache != nil {
		stats := a.Cache.Stats()
		a.Logger.Debug().
			Uint64("hits", stats.Hits).
			Uint64("misses", stats.Misses).
			Int("entries", a.Cache.Len()).
			Msg("Record cache statistics")
	}

	a.Logger.Info().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return err
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
