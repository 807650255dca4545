package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/omniora/omniora-api/internal/config"
	"github.com/omniora/omniora-api/internal/domain/progression"
	"github.com/omniora/omniora-api/internal/events"
	"github.com/omniora/omniora-api/internal/generation"
	"github.com/omniora/omniora-api/internal/platform/gemini"
	"github.com/omniora/omniora-api/internal/platform/postgres"
	"github.com/omniora/omniora-api/internal/service"
	"github.com/omniora/omniora-api/internal/store"
	"github.com/omniora/omniora-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	profileStore store.ProfileStore
	contentStore store.ContentStore

	// Service interfaces
	generator          generation.Generator
	progressionEngine  progression.Service
	progressionService service.ProgressionService
	contentService     service.ContentService
	engagementService  service.EngagementService

	// Event system
	eventEmitter events.EventEmitter

	// Background work
	taskRunner *task.TaskRunner
	scheduler  *task.EngagementScheduler
}

// newApplication creates a new application instance with all
// dependencies initialized. It accepts core dependencies like
// configuration, logger, and database connection that must be
// established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.profileStore = postgres.NewProfileStore(db, logger)
	app.contentStore = postgres.NewContentStore(db, logger)

	// LLM generator
	var err error
	app.generator, err = gemini.NewGeminiGenerator(
		ctx,
		logger.With(slog.String("component", "llm_generator")),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized", "model_name", cfg.LLM.ModelName)

	// Event emitter with a logging handler so progression events show
	// up in the structured logs.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger))
	app.eventEmitter = emitter

	// Progression engine (pure domain logic, default parameters)
	app.progressionEngine = progression.NewDefaultService()

	// Services
	app.progressionService, err = service.NewProgressionService(
		app.profileStore,
		app.progressionEngine,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create progression service: %w", err)
	}

	app.contentService, err = service.NewContentService(
		app.contentStore,
		app.profileStore,
		app.generator,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create content service: %w", err)
	}

	app.engagementService, err = service.NewEngagementService(
		app.profileStore,
		app.generator,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create engagement service: %w", err)
	}

	// Background task processing
	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.Start()

	app.scheduler = task.NewEngagementScheduler(
		app.taskRunner,
		app.engagementService,
		time.Duration(cfg.Engagement.SettlingDelaySeconds)*time.Second,
		time.Duration(cfg.Engagement.CheckIntervalHours)*time.Hour,
		logger,
	)
	app.scheduler.Start()

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters
// problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
