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

	httpapi "github.com/projecthub/projecthub/internal/hub/http"
	"github.com/projecthub/projecthub/internal/hub/live"
	"github.com/projecthub/projecthub/internal/hub/mail"
	"github.com/projecthub/projecthub/internal/hub/service"
	"github.com/projecthub/projecthub/internal/hub/store"
	"github.com/projecthub/projecthub/internal/hub/store/drivers/sqlite"
	"github.com/projecthub/projecthub/pkg/jwtx"
	"github.com/projecthub/projecthub/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application encapsulates the hub service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	keypair *jwtx.Keypair
	liveHub *live.Hub
	mailer  *mail.Mailer

	accountService      *service.AccountService
	inviteService       *service.InviteService
	notifyService       *service.NotifyService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "hub-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSessionKeys(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("hub service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down hub service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("hub service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initSessionKeys loads the pinned Ed25519 session key, or generates an
// ephemeral one when no key path is configured (sessions then die with the
// process, which is fine for dev).
func (app *Application) initSessionKeys() error {
	if app.cfg.SessionKeyPath == "" {
		keypair, err := jwtx.GenerateKeypair()
		if err != nil {
			return fmt.Errorf("failed to generate session keypair: %w", err)
		}
		app.keypair = keypair
		app.logger.Info("session keys generated (ephemeral mode)")
		return nil
	}

	pemBytes, err := os.ReadFile(app.cfg.SessionKeyPath)
	if err != nil {
		return fmt.Errorf("failed to read session key file: %w", err)
	}
	keypair, err := jwtx.KeypairFromPEM(pemBytes)
	if err != nil {
		return fmt.Errorf("failed to parse session key: %w", err)
	}
	app.keypair = keypair
	app.logger.Info("session keys loaded", "path", app.cfg.SessionKeyPath)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.liveHub = live.NewHub()
	app.mailer = mail.New(mail.Config{
		Host:            app.cfg.SMTPHost,
		Port:            app.cfg.SMTPPort,
		Username:        app.cfg.SMTPUsername,
		Password:        app.cfg.SMTPPassword,
		From:            app.cfg.SMTPFrom,
		FrontendBaseURL: app.cfg.FrontendBaseURL,
	}, app.logger)

	app.accountService = &service.AccountService{
		Store:          app.db,
		Sessions:       app.keypair,
		Issuer:         app.cfg.Issuer,
		SessionTTL:     app.cfg.SessionTTL,
		BootstrapToken: app.cfg.BootstrapToken,
	}

	app.notifyService = &service.NotifyService{
		Store: app.db,
		Live:  app.liveHub,
	}

	app.inviteService = &service.InviteService{
		Store:    app.db,
		Accounts: app.accountService,
		Effects: &service.Effects{
			Mailer:   app.mailer,
			Notifier: app.notifyService,
		},
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keypair,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.AccountService = app.accountService
	router.InviteService = app.inviteService
	router.NotifyService = app.notifyService
	router.Live = app.liveHub
	router.AcceptURL = app.mailer.AcceptURL
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
