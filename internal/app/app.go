package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/colengine/internal/ctxlog"
	"github.com/specialistvlad/colengine/internal/encodings"
	"github.com/specialistvlad/colengine/internal/engine"
	"github.com/specialistvlad/colengine/internal/hclspec"
	"github.com/specialistvlad/colengine/internal/inmemoryframe"
	"github.com/specialistvlad/colengine/internal/metrics"
	"github.com/specialistvlad/colengine/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config    *Config
	outW      io.Writer
	logger    *slog.Logger
	logCloser io.Closer

	promReg  *prometheus.Registry
	observer *metrics.Observer
	store    *inmemoryframe.Store
	registry *registry.Manager
	engine   *engine.Engine
	loader   *encodings.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own logger, metrics registry and empty dataset.
func NewApp(outW io.Writer, cfg *Config) *App {
	logW, logCloser := logWriter(cfg, outW)
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "file", cfg.LogFile)

	promReg := prometheus.NewRegistry()
	observer := metrics.New(promReg)

	store := inmemoryframe.New()
	reg := registry.New(registry.WithObserver(observer))
	eng := engine.New(reg, store,
		engine.WithObserver(observer),
		engine.WithDenseCache(cfg.DenseCacheSize),
	)

	return &App{
		config:    cfg,
		outW:      outW,
		logger:    logger,
		logCloser: logCloser,
		promReg:   promReg,
		observer:  observer,
		store:     store,
		registry:  reg,
		engine:    eng,
		loader:    encodings.NewLoader(reg, store, eng),
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Load reads the configured definition files, populates the dataset and
// registers every column. Default columns are registered before the
// definitions so that definitions can replace them.
func (a *App) Load(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Load started.", "paths", a.config.DefinitionPaths, "defaults", a.config.LoadDefaults)

	var defs *hclspec.Definitions
	if len(a.config.DefinitionPaths) > 0 {
		var err error
		defs, err = hclspec.Load(ctx, a.config.DefinitionPaths...)
		if err != nil {
			return fmt.Errorf("failed to load definitions: %w", err)
		}
		if err := defs.Populate(ctx, a.store); err != nil {
			return fmt.Errorf("failed to populate dataset: %w", err)
		}
	}

	if a.config.LoadDefaults {
		if err := a.loader.LoadDefaultColumns(ctx); err != nil {
			return err
		}
		if err := a.loader.LoadEncodingColumns(ctx); err != nil {
			return err
		}
	}

	if defs != nil {
		if err := defs.Register(ctx, a.loader); err != nil {
			return fmt.Errorf("failed to register columns: %w", err)
		}
	}

	nodes, edges := a.registry.GraphSize()
	a.logger.Info("Columns loaded.", "columns", len(a.registry.ActiveIDs()), "graph_nodes", nodes, "graph_edges", edges)
	return nil
}

// Close releases the log file, if any.
func (a *App) Close() error {
	if a.logCloser == nil {
		return nil
	}
	return a.logCloser.Close()
}

// Registry returns the application's column registry.
func (a *App) Registry() *registry.Manager { return a.registry }

// Engine returns the application's materialization engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// Store returns the application's dataframe.
func (a *App) Store() *inmemoryframe.Store { return a.store }

// Loader returns the loader used to add columns to the dataset.
func (a *App) Loader() *encodings.Loader { return a.loader }

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// MetricsRegistry returns the Prometheus registry holding the app's collectors.
func (a *App) MetricsRegistry() *prometheus.Registry { return a.promReg }
