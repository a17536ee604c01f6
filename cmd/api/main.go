package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/jhoicas/podocare-api/internal/application/analytics"
	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/application/inventory"
	"github.com/jhoicas/podocare-api/internal/infrastructure/factory"
	infrapdf "github.com/jhoicas/podocare-api/internal/infrastructure/pdf"
	"github.com/jhoicas/podocare-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/podocare-api/internal/interfaces/http"
	"github.com/jhoicas/podocare-api/pkg/config"
	"github.com/jhoicas/podocare-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("repository", cfg.Repository.Type).
		Msg("iniciando aplicación")

	ctx := context.Background()
	blobStore, closeStore, err := store.Open(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStore()

	repos, err := factory.New(factory.FromConfig(cfg.Repository), factory.Deps{
		Store:  blobStore,
		Logger: log.Zerolog(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("construir repositorios")
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.Products, repos.ProductMovements)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Products, repos.ProductMovements)
	checkoutUC := billing.NewCheckoutUseCase(
		repos.Products, repos.Sales, repos.Payments, repos.Abonos,
		registerMovementUC, log.Zerolog(),
	)

	// PDF: recibo de venta del punto de venta
	receiptUC := billing.NewReceiptUseCase(repos.Sales, repos.Patients, infrapdf.NewReceiptGenerator(), billing.ClinicInfo{
		Name:    cfg.Clinic.Name,
		NIT:     cfg.Clinic.NIT,
		Address: cfg.Clinic.Address,
		Phone:   cfg.Clinic.Phone,
		Email:   cfg.Clinic.Email,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(repos)

	app := httpRouter.NewApp(cfg.App.Name, log.Zerolog())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PodoCare API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Repos:            repos,
		RegisterMovement: registerMovementUC,
		Replenishment:    replenishmentUC,
		Checkout:         checkoutUC,
		Receipt:          receiptUC,
		Dashboard:        dashboardUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
