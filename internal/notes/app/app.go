package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/notepad/internal/notes/http"
	"github.com/aussiebroadwan/notepad/internal/notes/service"
	"github.com/aussiebroadwan/notepad/internal/notes/store"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/postgres"
	"github.com/aussiebroadwan/notepad/internal/notes/store/drivers/sqlite"
	"github.com/aussiebroadwan/notepad/pkg/cryptox"
	"github.com/aussiebroadwan/notepad/pkg/httpx"
	"github.com/aussiebroadwan/notepad/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application wires the notes service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	tokenService *service.TokenService
	authService  *service.AuthService
	noteService  *service.NoteService

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "notepad",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.JWTSecret == DevJWTSecret {
		app.logger.Warn("using development JWT secret, set JWT_SECRET before deploying")
	}

	if err := cryptox.LoadPepper(cfg.PepperFile); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the server and blocks until a signal arrives or it fails.
func (app *Application) Run() error {
	app.logger.Info("notepad starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// Shutdown drains in-flight requests, then closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down notepad...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("notepad stopped")
	return nil
}

func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqliteDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)

	app.db = store.WithTimeout(db, app.cfg.StoreTimeout)
	return nil
}

func sqliteDSN(file string) string {
	if file == ":memory:" {
		return file
	}
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", file)
}

func (app *Application) initServices() error {
	tokens, err := service.NewTokenService([]byte(app.cfg.JWTSecret), app.cfg.JWTIssuer, app.cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}
	app.tokenService = tokens

	app.authService = &service.AuthService{Store: app.db, Tokens: tokens}
	app.noteService = &service.NoteService{Store: app.db}
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokenService,
		httpx.CookieConfig{Name: httpx.SessionCookieName, Secure: app.cfg.CookieSecure},
		app.cfg.ClientURL,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Limits = httpapi.RateLimits{
		Strict:   app.cfg.RateLimits.Strict(),
		Moderate: app.cfg.RateLimits.Moderate(),
		Lenient:  app.cfg.RateLimits.Lenient(),
	}
	router.AuthService = app.authService
	router.NoteService = app.noteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
