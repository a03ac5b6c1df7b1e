package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/careers/internal/careers/http"
	"github.com/aussiebroadwan/careers/internal/careers/observability"
	"github.com/aussiebroadwan/careers/internal/careers/service"
	"github.com/aussiebroadwan/careers/internal/careers/store"
	"github.com/aussiebroadwan/careers/internal/careers/store/drivers/postgres"
	"github.com/aussiebroadwan/careers/internal/careers/store/drivers/sqlite"
	"github.com/aussiebroadwan/careers/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the careers service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	keys    *identityKeys
	metrics *observability.Metrics

	// Services
	directory     *service.TenantDirectory
	guard         *service.Guard
	tenantService *service.TenantService
	inviteService *service.InviteService
	sweeper       *service.InviteSweeper

	// Background key refresh
	stopKeys context.CancelFunc

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "careers-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: observability.NewMetrics(nil),
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keys, err := initIdentityKeys(ctx, app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize identity keys: %w", err)
	}
	app.keys = keys

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	keysCtx, stopKeys := context.WithCancel(context.Background())
	app.stopKeys = stopKeys
	go app.keys.Source.Run(keysCtx)

	app.sweeper.Start()

	app.logger.Info("careers service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down careers service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.stopKeys != nil {
		app.stopKeys()
	}
	app.sweeper.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("careers service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(dsn)
	case "postgres":
		if app.cfg.DatabaseURL == "" {
			return fmt.Errorf("CAREERS_DATABASE_URL is required for the postgres driver")
		}
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(connectCtx, app.cfg.DatabaseURL)
	default:
		return fmt.Errorf("unknown database driver %q", app.cfg.DatabaseDriver)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.directory = service.NewTenantDirectory(app.db, app.cfg.DirectoryCacheSz, app.cfg.DirectoryCacheTTL)

	app.guard = &service.Guard{
		Store:     app.db,
		Directory: app.directory,
		OpTimeout: app.cfg.StoreTimeout,
		Metrics:   app.metrics,
	}

	app.tenantService = &service.TenantService{
		Store:     app.db,
		Directory: app.directory,
		Guard:     app.guard,
		OpTimeout: app.cfg.StoreTimeout,
		Metrics:   app.metrics,
	}

	app.inviteService = &service.InviteService{
		Store:     app.db,
		Guard:     app.guard,
		OpTimeout: app.cfg.StoreTimeout,
		InviteTTL: app.cfg.InviteTTL,
		Metrics:   app.metrics,
	}

	app.sweeper = service.NewInviteSweeper(app.db, app.logger, app.cfg.SweepInterval)
	app.sweeper.OpTimeout = app.cfg.StoreTimeout
	app.sweeper.OnSweep = app.metrics.InvitesLapsed
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.Guard = app.guard
	router.TenantService = app.tenantService
	router.InviteService = app.inviteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
