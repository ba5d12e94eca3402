package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/speculum/internal/common"
	"github.com/ternarybob/speculum/internal/handlers"
	"github.com/ternarybob/speculum/internal/interfaces"
	"github.com/ternarybob/speculum/internal/services/crawler"
	"github.com/ternarybob/speculum/internal/services/mirror"
	"github.com/ternarybob/speculum/internal/services/scheduler"
	badgerstorage "github.com/ternarybob/speculum/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	CrawlService     interfaces.CrawlService
	MirrorService    interfaces.MirrorService
	SchedulerService interfaces.SchedulerService

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	ConfigHandler   *handlers.ConfigHandler
	CrawlHandler    *handlers.CrawlHandler
	MirrorHandler   *handlers.MirrorHandler
	SnapshotHandler *handlers.SnapshotHandler
	DocumentHandler *handlers.DocumentHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initServices()
	app.initHandlers()

	if err := app.SchedulerService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().
		Str("environment", cfg.Environment).
		Bool("scheduler_enabled", cfg.Scheduler.Enabled).
		Msg("Application initialization complete")

	return app, nil
}

// initStorage initializes the storage layer (Badger)
func (a *App) initStorage() error {
	storageManager, err := badgerstorage.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

func (a *App) initServices() {
	a.CrawlService = crawler.NewService(a.Config)
	a.MirrorService = mirror.NewService(a.Config)
	a.SchedulerService = scheduler.NewService(a.Config, a.CrawlService, a.StorageManager.SnapshotStorage(), a.StorageManager.KVStorage(), a.Logger)
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.ConfigHandler = handlers.NewConfigHandler(a.Logger, a.Config)
	a.CrawlHandler = handlers.NewCrawlHandler(a.CrawlService, a.StorageManager.SnapshotStorage(), a.Config, a.Logger)
	a.MirrorHandler = handlers.NewMirrorHandler(a.MirrorService, a.StorageManager.DocumentStorage(), a.Logger)
	a.SnapshotHandler = handlers.NewSnapshotHandler(a.StorageManager.SnapshotStorage(), a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.StorageManager.DocumentStorage(), a.Logger)
}

// Close shuts down application components in reverse dependency order
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application shut down")
	return nil
}
