package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/jasiripay/krabridge/internal/proxy/http"
	"github.com/jasiripay/krabridge/internal/proxy/service"
	"github.com/jasiripay/krabridge/internal/proxy/store"
	"github.com/jasiripay/krabridge/internal/proxy/store/drivers/memory"
	"github.com/jasiripay/krabridge/internal/proxy/store/drivers/sqlite"
	"github.com/jasiripay/krabridge/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the bridge with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	tokenStore store.TokenStore

	tokenService   *service.TokenService
	forwardService *service.ForwardService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "krabridge",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := app.initTokenStore(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("krabridge starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"token_store", app.cfg.TokenStore,
		"apps", len(app.cfg.Apps),
	)

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
	app.logger.Info("shutting down krabridge...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.tokenStore.Close(); err != nil {
		app.logger.Error("error closing token store", "error", err)
		return err
	}

	app.logger.Info("krabridge stopped")
	return nil
}

// initTokenStore selects the cache driver. The sqlite driver persists tokens
// across restarts; migrations are applied on startup.
func (app *Application) initTokenStore() error {
	switch app.cfg.TokenStore {
	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.TokenStoreFile)
		st, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize token store: %w", err)
		}
		if err := st.ApplyMigrations(); err != nil {
			_ = st.Close()
			return fmt.Errorf("failed to apply token store migrations: %w", err)
		}
		app.logger.Info("token store migrations applied successfully")
		app.tokenStore = st
	default:
		app.tokenStore = memory.NewStore()
	}
	return nil
}

// initServices initializes the token and forward services with a shared
// upstream HTTP client. Certificate validation is on unless explicitly
// disabled for the sandbox.
func (app *Application) initServices() {
	transport := http.DefaultTransport
	if app.cfg.TLSSkipVerify {
		app.logger.Warn("upstream TLS certificate validation DISABLED; sandbox use only")
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit sandbox opt-out
		transport = t
	}

	client := &http.Client{Transport: transport}

	app.tokenService = &service.TokenService{
		Store:  app.tokenStore,
		Apps:   app.cfg.Apps,
		Client: client,
		TTL:    app.cfg.TokenTTL,
	}

	app.forwardService = &service.ForwardService{
		Tokens:     app.tokenService,
		Client:     client,
		MaxRetries: app.cfg.MaxRetries,
		Timeout:    app.cfg.Timeout,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.tokenStore, app.logger)

	router.TokenService = app.tokenService
	router.ForwardService = app.forwardService
	router.PinByIDURL = app.cfg.PinByIDURL
	router.PinByPinURL = app.cfg.PinByPinURL
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
