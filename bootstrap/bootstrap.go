// Package bootstrap wires configuration, adapters, the resource
// registry and the HTTP server into a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/admingate/adapters/auth"
	"github.com/artpar/admingate/adapters/clock"
	"github.com/artpar/admingate/adapters/hasher"
	"github.com/artpar/admingate/adapters/memory"
	"github.com/artpar/admingate/adapters/metrics"
	"github.com/artpar/admingate/adapters/sqlite"
	"github.com/artpar/admingate/config"
	"github.com/artpar/admingate/core/registry"
	"github.com/artpar/admingate/ports"
	"github.com/artpar/admingate/web"
)

// App is the assembled application.
type App struct {
	Config     *config.Config
	Holder     *config.Holder
	Logger     zerolog.Logger
	HTTPServer *http.Server
	Metrics    *metrics.Collector
	Adapter    ports.Adapter

	mu  sync.RWMutex
	reg *registry.Registry

	db *sqlite.DB
}

// New creates the application from a static configuration.
func New(cfg *config.Config) (*App, error) {
	return build(cfg, nil)
}

// NewWithHotReload creates the application with config file watching.
// Resource options and branding are rebuilt on every reload; server
// address and database settings require a restart.
func NewWithHotReload(path string) (*App, error) {
	logger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"})

	holder, err := config.NewHolder(path, logger)
	if err != nil {
		return nil, err
	}

	app, err := build(holder.Get(), holder)
	if err != nil {
		holder.Stop()
		return nil, err
	}

	holder.OnChange(func(cfg *config.Config) {
		app.rebuild(cfg)
	})
	if err := holder.WatchFile(); err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}
	holder.WatchSignals()

	return app, nil
}

func build(cfg *config.Config, holder *config.Holder) (*App, error) {
	logger := setupLogger(cfg.Logging)

	app := &App{
		Config: cfg,
		Holder: holder,
		Logger: logger,
	}

	if cfg.Metrics.Enabled {
		app.Metrics = metrics.New()
	}

	// Datasource adapter
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		app.db = db
		app.Adapter = sqlite.NewAdapter(db, cfg.Database.Name)
	case "memory":
		adapter, err := memory.NewDemoAdapter()
		if err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		app.Adapter = adapter
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	// Decorated resource registry
	reg, err := registry.Build(context.Background(), app.Adapter, cfg.Resources, branding(cfg))
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	app.reg = reg
	if app.Metrics != nil {
		app.Metrics.ResourcesDecorated.Set(float64(len(reg.List())))
	}
	logger.Info().
		Str("adapter", app.Adapter.Name()).
		Int("resources", len(reg.List())).
		Msg("resource registry built")

	// Authentication (optional)
	var sessions ports.SessionStore
	var authenticator *auth.Authenticator
	if len(cfg.Auth.Accounts) > 0 {
		accounts := make([]auth.Account, len(cfg.Auth.Accounts))
		for i, a := range cfg.Auth.Accounts {
			accounts[i] = auth.Account{
				Email:        a.Email,
				PasswordHash: []byte(a.PasswordHash),
				Role:         a.Role,
			}
		}
		authenticator = auth.NewAuthenticator(accounts, hasher.NewBcrypt(0))
		sessions = auth.NewSessionService(cfg.Auth.SessionSecret, clock.Real{})
		logger.Info().Int("accounts", len(accounts)).Msg("authentication enabled")
	} else {
		logger.Warn().Msg("no admin accounts configured, panel runs unauthenticated")
	}

	handler := web.NewHandler(web.Deps{
		Registry:      app.Registry,
		Sessions:      sessions,
		Authenticator: authenticator,
		SessionTTL:    cfg.Auth.SessionTTL,
		Logger:        logger,
		Metrics:       app.Metrics,
		MetricsPath:   cfg.Metrics.Path,
	})

	app.HTTPServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return app, nil
}

// Registry returns the current resource registry (thread-safe).
func (a *App) Registry() *registry.Registry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.reg
}

// rebuild re-decorates all resources with the new options. The old
// registry stays in place when the rebuild fails.
func (a *App) rebuild(cfg *config.Config) {
	reg, err := registry.Build(context.Background(), a.Adapter, cfg.Resources, branding(cfg))
	if err != nil {
		if a.Metrics != nil {
			a.Metrics.RegistryRebuildErrors.Inc()
		}
		a.Logger.Error().Err(err).Msg("registry rebuild failed, keeping old registry")
		return
	}

	a.mu.Lock()
	a.reg = reg
	a.mu.Unlock()

	if a.Metrics != nil {
		a.Metrics.RegistryRebuilds.Inc()
		a.Metrics.ResourcesDecorated.Set(float64(len(reg.List())))
	}
	a.Logger.Info().Int("resources", len(reg.List())).Msg("registry rebuilt")
}

func branding(cfg *config.Config) registry.Branding {
	return registry.Branding{
		CompanyName: cfg.Branding.CompanyName,
		RootPath:    cfg.Branding.RootPath,
		Logo:        cfg.Branding.Logo,
	}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Holder != nil {
		a.Holder.Stop()
	}

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
