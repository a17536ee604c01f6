package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/podocare-api/internal/application/analytics"
	"github.com/jhoicas/podocare-api/internal/application/billing"
	"github.com/jhoicas/podocare-api/internal/application/inventory"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Repos            *repository.Repositories
	RegisterMovement *inventory.RegisterMovementUseCase
	Replenishment    *inventory.ReplenishmentUseCase
	Checkout         *billing.CheckoutUseCase
	Receipt          *billing.ReceiptUseCase
	Dashboard        *appanalytics.DashboardUseCase
	JWTSecret        string
}

// NewApp crea la aplicación fiber con el manejador de errores del
// envoltorio, recover, log de peticiones y /health.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Debug()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("http")
		return err
	}
}

// Router registra las rutas de la API. Todo /api requiere Bearer Token; el
// borrado queda reservado a admin y a los tokens de integración.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	guard := RequireRole(entity.WorkerRoleAdmin, RoleService)

	// Ventas: cobro y recibo antes de las rutas genéricas
	sales := api.Group("/sale")
	saleHandler := NewSaleHandler(deps.Checkout, deps.Receipt)
	sales.Post("/checkout", saleHandler.Checkout)
	sales.Get("/:id/receipt", saleHandler.DownloadReceipt)
	mountSales(sales, deps.Repos.Sales, guard)

	mountResources(api, deps.Repos, guard)

	// Inventario
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.Replenishment)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/replenishment", inventoryHandler.GetReplenishmentList)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
