package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/starlane-supply/internal/adapters/graph"
	"github.com/andrescamacho/starlane-supply/internal/adapters/metrics"
	"github.com/andrescamacho/starlane-supply/internal/adapters/persistence"
	"github.com/andrescamacho/starlane-supply/internal/application/logging"
	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/commands"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/queries"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
	"github.com/andrescamacho/starlane-supply/internal/infrastructure/config"
	"github.com/andrescamacho/starlane-supply/internal/infrastructure/database"
	infralogging "github.com/andrescamacho/starlane-supply/internal/infrastructure/logging"
)

// app wires configuration, storage, the supply manager and the mediator for one CLI run
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	db        *gorm.DB
	galaxies  *graph.GalaxyService
	snapshots *persistence.GormSnapshotRepository
	manager   *supply.Manager
	mediator  mediator.Mediator
}

// newApp loads configuration and connects everything a command needs
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return newAppWithConfig(cfg)
}

func newAppWithConfig(cfg *config.Config) (*app, error) {
	if verbose {
		cfg.Logging.Level = "debug"
	}
	logger, logCloser, err := infralogging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		logCloser.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		logCloser: logCloser,
		db:        db,
		galaxies:  graph.NewGalaxyService(persistence.NewGormGalaxyRepository(db)),
		snapshots: persistence.NewGormSnapshotRepository(db),
		manager: supply.NewManager(
			supply.WithJumpLength(cfg.Supply.JumpLength),
			supply.WithParallelism(cfg.Supply.Parallelism),
		),
		mediator: mediator.NewMediator(),
	}

	if err := a.registerHandlers(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) registerHandlers() error {
	var supplyMetrics *metrics.SupplyMetricsCollector
	var commandMetrics *metrics.CommandMetricsCollector
	if a.cfg.Metrics.Enabled {
		if !metrics.IsEnabled() {
			metrics.InitRegistry()
		}
		supplyMetrics = metrics.NewSupplyMetricsCollector()
		commandMetrics = metrics.NewCommandMetricsCollector()
		if err := supplyMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register supply metrics: %w", err)
		}
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
	}

	a.mediator.Use(a.loggingMiddleware)
	a.mediator.Use(metrics.PrometheusMiddleware(commandMetrics))

	var recorder commands.UpdateRecorder
	if supplyMetrics != nil {
		recorder = supplyMetrics
	}

	registrations := []error{
		mediator.RegisterHandler[*commands.ImportGalaxyCommand](a.mediator,
			commands.NewImportGalaxyHandler(a.galaxies)),
		mediator.RegisterHandler[*commands.UpdateSupplyCommand](a.mediator,
			commands.NewUpdateSupplyHandler(a.galaxies, a.snapshots, a.manager, recorder, nil)),
		mediator.RegisterHandler[*queries.GetSupplySnapshotQuery](a.mediator,
			queries.NewGetSupplySnapshotHandler(a.galaxies, a.snapshots)),
		mediator.RegisterHandler[*queries.CheckFleetSupplyQuery](a.mediator,
			queries.NewCheckFleetSupplyHandler(a.galaxies, a.snapshots)),
	}
	for _, err := range registrations {
		if err != nil {
			return fmt.Errorf("failed to register handler: %w", err)
		}
	}
	return nil
}

func (a *app) loggingMiddleware(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
	start := time.Now()
	resp, err := next(ctx, request)
	if err != nil {
		a.logger.Debug("request failed", "request", fmt.Sprintf("%T", request), "error", err)
	} else {
		a.logger.Debug("request handled", "request", fmt.Sprintf("%T", request), "duration", time.Since(start))
	}
	return resp, err
}

// context attaches the application logger for handlers
func (a *app) context(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, logging.NewSlogLogger(a.logger))
}

// send dispatches a request with the application logger attached
func (a *app) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(a.context(ctx), request)
}

// Close releases the database and log file
func (a *app) Close() error {
	var firstErr error
	if a.db != nil {
		firstErr = database.Close(a.db)
	}
	if a.logCloser != nil {
		if err := a.logCloser.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
