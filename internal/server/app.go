// Package server initializes and runs the translation pipeline: it opens
// the database, applies migrations, registers the change-detection and
// propagation observers, and drives the worker pool until shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/NaFo61/BervinovAcademy/internal/logging"
	"github.com/NaFo61/BervinovAcademy/internal/server/config"
	"github.com/NaFo61/BervinovAcademy/internal/server/entities"
	"github.com/NaFo61/BervinovAcademy/internal/server/memory"
	"github.com/NaFo61/BervinovAcademy/internal/server/migrations"
	"github.com/NaFo61/BervinovAcademy/internal/server/propagation"
	"github.com/NaFo61/BervinovAcademy/internal/server/queue"
	"github.com/NaFo61/BervinovAcademy/internal/server/registry"
	"github.com/NaFo61/BervinovAcademy/internal/server/service"
	"github.com/NaFo61/BervinovAcademy/internal/server/translator"
	"github.com/NaFo61/BervinovAcademy/internal/server/watcher"
	"github.com/NaFo61/BervinovAcademy/internal/server/worker"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	store   *memory.Store
	service *service.Service
	pool    *worker.Pool
	tracker *watcher.Tracker
	reg     *registry.Registry
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store := memory.NewStore(memory.NewPostgresRepository(db), logger)
	jobQueue := queue.NewPostgresQueue(db)
	svc := service.NewService(store, jobQueue, logger)

	specStore := entities.NewSpecializationStore(db)
	courseStore := entities.NewCourseStore(db)

	reg := registry.New()
	if err := reg.Register("Specialization", []string{"title", "description"}, specStore); err != nil {
		return nil, err
	}
	if err := reg.Register("Course", []string{"title", "description"}, courseStore); err != nil {
		return nil, err
	}

	tracker := watcher.NewTracker()
	w := watcher.New(tracker, svc, reg, logger)
	specStore.Register(w)
	courseStore.Register(w)

	store.Register(propagation.New(reg, logger))

	tr := translator.NewHTTPClient(cfg.TranslatorEndpoint, cfg.TranslatorTimeout, logger)
	pool := worker.NewPool(jobQueue, store, tr, worker.Options{
		Workers:       cfg.WorkerCount,
		PollInterval:  cfg.PollInterval,
		JobLease:      cfg.JobLease,
		RetryAttempts: cfg.RetryAttempts,
		RetryBackoff:  cfg.RetryBackoff,
	}, logger)

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		store:   store,
		service: svc,
		pool:    pool,
		tracker: tracker,
		reg:     reg,
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

// Memory exposes the translation memory store (review flows, tooling).
func (app *App) Memory() *memory.Store { return app.store }

// Translations exposes the synchronous lookup-or-dispatch service.
func (app *App) Translations() *service.Service { return app.service }

// Registry exposes the record-kind resolution table.
func (app *App) Registry() *registry.Registry { return app.reg }

// Tracker exposes the observed-value side table, so record loaders can
// prime it and disposal paths can clear it.
func (app *App) Tracker() *watcher.Tracker { return app.tracker }

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until the context is cancelled or a termination signal
// arrives, then waits for in-flight jobs to drain.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting translation workers...", "count", app.config.WorkerCount)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.pool.Run(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "failed to close db", "error", err)
	}
	app.logger.Info(ctx, "Shutdown complete")
}
