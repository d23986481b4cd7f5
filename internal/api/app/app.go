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

	httpapi "github.com/feedme/feedme/internal/api/http"
	"github.com/feedme/feedme/internal/api/oidc"
	"github.com/feedme/feedme/internal/api/service"
	"github.com/feedme/feedme/internal/api/store"
	"github.com/feedme/feedme/internal/api/store/drivers/sqlite"
	"github.com/feedme/feedme/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v1.0.0"
)

// Application encapsulates the API server with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db        store.Store
	providers *oidc.Registry

	tokenService          *service.TokenService
	authService           *service.AuthService
	userService           *service.UserService
	recipeService         *service.RecipeService
	ingredientService     *service.IngredientService
	inventoryService      *service.InventoryService
	mealPlanService       *service.MealPlanService
	recommendationService *service.RecommendationService
	adminService          *service.AdminService

	server *http.Server
	router *httpapi.Router

	purgeStop chan struct{}
}

// New creates an Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "feedme-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		purgeStop: make(chan struct{}),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initProviders()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	go app.runInventoryPurge()

	app.logger.Info("api server starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"providers", app.providers.Names(),
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
	app.logger.Info("shutting down api server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	close(app.purgeStop)

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api server stopped")
	return nil
}

// initDatabase opens the database and applies migrations.
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

// initProviders builds the federated login registry. Providers missing
// credentials are skipped; none configured just means password-only login.
func (app *Application) initProviders() {
	app.providers = oidc.NewRegistry(app.cfg.Providers)
	if names := app.providers.Names(); len(names) == 0 {
		app.logger.Info("no federated login providers configured")
	} else {
		app.logger.Info("federated login providers configured", "providers", names)
	}
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.tokenService = service.NewTokenService(
		[]byte(app.cfg.JWTSecret),
		[]byte(app.cfg.JWTRefreshSecret),
		app.cfg.AccessTokenTTL,
		app.cfg.RefreshTokenTTL,
	)

	app.authService = &service.AuthService{Store: app.db, Tokens: app.tokenService}
	app.userService = &service.UserService{Store: app.db}
	app.recipeService = &service.RecipeService{Store: app.db}
	app.ingredientService = &service.IngredientService{Store: app.db}
	app.inventoryService = &service.InventoryService{Store: app.db}
	app.mealPlanService = &service.MealPlanService{Store: app.db}
	app.recommendationService = &service.RecommendationService{Store: app.db}
	app.adminService = &service.AdminService{Store: app.db, StartedAt: time.Now()}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.db,
		app.providers,
		app.cfg.FrontendURL,
		app.cfg.SecureCookies,
		app.logger,
	)

	router.TokenService = app.tokenService
	router.AuthService = app.authService
	router.UserService = app.userService
	router.RecipeService = app.recipeService
	router.IngredientService = app.ingredientService
	router.InventoryService = app.inventoryService
	router.MealPlanService = app.mealPlanService
	router.RecommendationService = app.recommendationService
	router.AdminService = app.adminService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// runInventoryPurge sweeps expired pantry rows on an interval until
// shutdown.
func (app *Application) runInventoryPurge() {
	if app.cfg.InventoryPurgeInterval <= 0 {
		return
	}

	ticker := time.NewTicker(app.cfg.InventoryPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			n, err := app.inventoryService.PurgeExpired(ctx)
			cancel()
			if err != nil {
				app.logger.Error("expired inventory sweep failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info("purged expired inventory items", "count", n)
			}
		case <-app.purgeStop:
			return
		}
	}
}
