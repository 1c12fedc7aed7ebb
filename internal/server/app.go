// Package server initializes and runs the application server. It wires the
// durable store, the credential and analysis services, and the public HTTP
// endpoint, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/veritaslab/veritas/internal/logging"
	"github.com/veritaslab/veritas/internal/server/config"
	"github.com/veritaslab/veritas/internal/server/httpapi"
	"github.com/veritaslab/veritas/internal/server/repositories/repomanager"
	"github.com/veritaslab/veritas/internal/server/services"
	"github.com/veritaslab/veritas/internal/server/uplink"
)

type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	store *services.Store

	authService     *services.AuthService
	analysisService *services.AnalysisService
	evidenceService *services.EvidenceService
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store := services.NewStore(db, repomanager.NewPostgresRepositoryManager(), logger)

	engine := uplink.NewClient(uplink.Config{
		BaseURL:    cfg.UplinkBaseURL,
		Credential: cfg.UplinkCredential,
		Model:      cfg.UplinkModel,
	})

	return &App{
		config:          cfg,
		logger:          logger,
		db:              db,
		store:           store,
		authService:     services.NewAuthService(store, cfg),
		analysisService: services.NewAnalysisService(store, engine),
		evidenceService: services.NewEvidenceService(cfg),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newFiberApp() *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:      "veritas",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	f.Use(recover.New())
	f.Use(fiberlogger.New())
	f.Use(cors.New(cors.Config{
		AllowOrigins: []string{app.config.FrontendURL},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
	}))
	f.Use(httpapi.AuditMiddleware(app.store))

	authHandler := httpapi.NewAuthHandler(app.authService)
	authHandler.Register(f)

	f.Get("/api/v1/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := f.Group("/api/v1", httpapi.SessionMiddleware([]byte(app.config.SecretKey)))

	authHandler.RegisterProtected(api)
	httpapi.NewInvestigationsHandler(app.analysisService).Register(api)
	httpapi.NewAuditHandler(app.store).Register(api)
	httpapi.NewEvidenceHandler(app.evidenceService).Register(api)

	return f
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.store.Open(ctx); err != nil {
		app.logger.Error(ctx, "store init failed", "error", err)
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "store close error", "error", err)
		}
		return
	}

	f := app.newFiberApp()

	go func() {
		<-ctx.Done()
		if err := f.Shutdown(); err != nil {
			app.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "Listening", "addr", app.config.EndpointAddr)
	if err := f.Listen(app.config.EndpointAddr); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	// Drain fire-and-forget audit writes before letting the pool go.
	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close error", "error", err)
	}
}
