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

	httpapi "github.com/aussiebroadwan/finlink/internal/finlink/http"
	"github.com/aussiebroadwan/finlink/internal/finlink/metrics"
	"github.com/aussiebroadwan/finlink/internal/finlink/service"
	"github.com/aussiebroadwan/finlink/internal/finlink/simulate"
	"github.com/aussiebroadwan/finlink/internal/finlink/store"
	"github.com/aussiebroadwan/finlink/internal/finlink/store/drivers/postgres"
	"github.com/aussiebroadwan/finlink/internal/finlink/store/drivers/sqlite"
	"github.com/aussiebroadwan/finlink/internal/finlink/widget"
	"github.com/aussiebroadwan/finlink/pkg/cryptox"
	"github.com/aussiebroadwan/finlink/pkg/jwtx"
	"github.com/aussiebroadwan/finlink/pkg/linkapi"
	"github.com/aussiebroadwan/finlink/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

var (
	ErrUnknownStoreDriver = errors.New("app: unknown STORE_DRIVER")
	ErrUnknownWidgetMode  = errors.New("app: unknown WIDGET_MODE")
)

// Application encapsulates the finlink service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db          store.Store
	credentials *store.Credentials
	signer      *jwtx.EdDSASigner
	metrics     *metrics.Metrics

	dataService         *service.LinkDataService
	sessionService      *service.SessionService
	dashboardService    *service.DashboardService
	institutionService  *service.InstitutionService
	healthMonitor       *service.HealthMonitor
	housekeepingService *service.HousekeepingService
	widget              widget.Provider
	hosted              *widget.Hosted // Optional: only with WIDGET_MODE=hosted

	server *http.Server
	router *httpapi.Router

	// workersStarted is set once Run has started the background workers.
	workersStarted bool
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "finlink",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	signer, err := InitSessionSigner(cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session key: %w", err)
	}
	app.signer = signer

	if err := app.initServices(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	if err := app.healthMonitor.Start(); err != nil {
		return fmt.Errorf("health monitor: %w", err)
	}
	app.housekeepingService.Start()
	app.workersStarted = true

	app.logger.Info("finlink starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"real_api", app.dataService.RealMode(),
		"gateway_mode", app.dataService.Mode(),
		"widget", app.cfg.WidgetMode,
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down finlink...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.workersStarted {
		app.healthMonitor.Stop()
		app.housekeepingService.Stop()
	}
	app.sessionService.CloseAll()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("finlink stopped")
	return nil
}

// Handler exposes the router, for tests that drive the application in process.
func (app *Application) Handler() http.Handler { return app.router }

func (app *Application) initDatabase(ctx context.Context) error {
	switch app.cfg.StoreDriver {
	case "", "sqlite":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	case "postgres":
		db, err := postgres.NewStore(ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		app.db = db
	default:
		return fmt.Errorf("%w %q", ErrUnknownStoreDriver, app.cfg.StoreDriver)
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.StoreDriver)
	return nil
}

func (app *Application) initServices(ctx context.Context) error {
	var sealer *cryptox.Sealer
	if app.cfg.CredentialSecret != "" {
		s, err := cryptox.NewSealer(app.cfg.CredentialSecret)
		if err != nil {
			return err
		}
		sealer = s
	} else {
		app.logger.Warn("CREDENTIAL_SECRET not set, access credentials are stored in plaintext")
	}
	app.credentials = store.NewCredentials(app.db, sealer)

	gateway, err := app.gatewayConfig(ctx)
	if err != nil {
		return err
	}

	mode, err := service.ParseMode(app.cfg.GatewayMode)
	if err != nil {
		return err
	}

	sim := simulate.New()
	app.dataService = service.NewLinkDataService(gateway, mode, sim, app.metrics)
	app.dataService.SetSimulatedLatency(app.cfg.SimulatedLatency)

	sel := &widget.Selector{
		Simulated: widget.NewSimulated(sim, app.cfg.WidgetDelay),
		RealMode:  app.dataService.RealMode,
	}
	switch app.cfg.WidgetMode {
	case "", "simulated":
	case "hosted":
		app.hosted = widget.NewHosted(app.cfg.PendingLinkTTL)
		sel.Hosted = app.hosted
	default:
		return fmt.Errorf("%w %q", ErrUnknownWidgetMode, app.cfg.WidgetMode)
	}
	app.widget = sel

	app.sessionService = service.NewSessionService(app.signer, app.cfg.SessionIssuer, app.cfg.SessionTTL, service.LinkDeps{
		Data:        app.dataService,
		Credentials: app.credentials,
		Widget:      app.widget,
	}, app.metrics)
	app.dashboardService = service.NewDashboardService(sim, app.db)
	app.institutionService = service.NewInstitutionService(app.dataService, app.credentials)

	app.healthMonitor = service.NewHealthMonitor(app.dataService, app.logger, app.cfg.HealthSchedule, app.metrics)
	sweeps := []service.Sweep{service.SessionSweep(app.sessionService)}
	if app.hosted != nil {
		sweeps = append(sweeps, service.Sweep{Name: "pending_link_tokens", Run: app.hosted.Purge})
	}
	app.housekeepingService = service.NewHousekeepingService(app.logger, app.cfg.HousekeepingInterval, sweeps...)

	return nil
}

// gatewayConfig starts from the environment and lets settings saved through
// the API win.
func (app *Application) gatewayConfig(ctx context.Context) (linkapi.Config, error) {
	cfg := linkapi.Config{
		UseRealAPI: app.cfg.UseRealAPI,
		APIURL:     app.cfg.APIURL,
		Timeout:    app.cfg.GatewayTimeout,
	}

	saved, ok, err := app.credentials.GatewayConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to load gateway settings: %w", err)
	}
	if ok {
		cfg.UseRealAPI = saved.UseRealAPI
		cfg.APIURL = saved.APIURL
		app.logger.Info("gateway settings restored", "use_real_api", cfg.UseRealAPI, "api_url", cfg.APIURL)
	}

	return cfg, nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		jwtx.NewVerifierEdDSA(app.cfg.SessionIssuer, app.signer),
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)

	router.Sessions = app.sessionService
	router.Data = app.dataService
	router.Credentials = app.credentials
	router.Institution = app.institutionService
	router.Dashboard = app.dashboardService
	router.Health = app.healthMonitor
	router.Widget = app.widget
	router.Hosted = app.hosted // nil unless hosted
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
