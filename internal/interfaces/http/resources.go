package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// mountResources registra las rutas de cada repositorio. Los buscadores van
// antes de /:id para que "active", "stats", etc. no se tomen como ids.
func mountResources(api fiber.Router, repos *repository.Repositories, guard fiber.Handler) {
	// ── Pacientes y personal ──────────────────────────────────────────────────
	patients := api.Group("/patient")
	patients.Get("/document/:document", oneBy("paciente", func(ctx context.Context, c *fiber.Ctx) (*entity.Patient, error) {
		return repos.Patients.GetByDocumentNumber(ctx, c.Params("document"))
	}))
	NewCRUDHandler[entity.Patient, entity.PatientInput, entity.PatientPatch](repos.Patients, "paciente").Mount(patients, guard)

	workers := api.Group("/worker")
	workers.Get("/active", all(repos.Workers.GetActive))
	workers.Get("/role/:role", byParam("role", repos.Workers.GetByRole))
	NewCRUDHandler[entity.Worker, entity.WorkerInput, entity.WorkerPatch](repos.Workers, "trabajador").Mount(workers, guard)

	// ── Agenda ────────────────────────────────────────────────────────────────
	appointments := api.Group("/appointment")
	appointments.Get("/patient/:id", byParam("id", repos.Appointments.GetByPatientID))
	appointments.Get("/worker/:id", byParam("id", repos.Appointments.GetByWorkerID))
	appointments.Get("/status/:status", byParam("status", repos.Appointments.GetByStatus))
	appointments.Get("/date-range", inRange(repos.Appointments.GetByDateRange))
	appointments.Get("/stats", stats(func(ctx context.Context, _ *fiber.Ctx) (*entity.AppointmentStats, error) {
		return repos.Appointments.GetStats(ctx)
	}))
	NewCRUDHandler[entity.Appointment, entity.AppointmentInput, entity.AppointmentPatch](repos.Appointments, "cita").Mount(appointments, guard)

	// ── Inventario ────────────────────────────────────────────────────────────
	categories := api.Group("/product-category")
	categories.Get("/active", all(repos.ProductCategories.GetActive))
	NewCRUDHandler[entity.ProductCategory, entity.ProductCategoryInput, entity.ProductCategoryPatch](repos.ProductCategories, "categoría").Mount(categories, guard)

	products := api.Group("/product")
	products.Get("/code/:code", oneBy("producto", func(ctx context.Context, c *fiber.Ctx) (*entity.Product, error) {
		return repos.Products.GetByCode(ctx, c.Params("code"))
	}))
	products.Get("/category/:id", byParam("id", repos.Products.GetByCategoryID))
	products.Get("/active", all(repos.Products.GetActive))
	products.Get("/low-stock", all(repos.Products.GetLowStock))
	NewCRUDHandler[entity.Product, entity.ProductInput, entity.ProductPatch](repos.Products, "producto").Mount(products, guard)

	movements := api.Group("/product-movement")
	movements.Get("/product/:id", byParam("id", repos.ProductMovements.GetByProductID))
	movements.Get("/type/:type", byParam("type", repos.ProductMovements.GetByType))
	movements.Get("/date-range", inRange(repos.ProductMovements.GetByDateRange))
	NewCRUDHandler[entity.ProductMovement, entity.ProductMovementInput, entity.ProductMovementPatch](repos.ProductMovements, "movimiento").Mount(movements, guard)

	// ── Caja ──────────────────────────────────────────────────────────────────
	payments := api.Group("/payment")
	payments.Get("/patient/:id", byParam("id", repos.Payments.GetByPatientID))
	payments.Get("/date-range", inRange(repos.Payments.GetByDateRange))
	payments.Get("/stats/income", stats(func(ctx context.Context, c *fiber.Ctx) (*entity.IncomeStats, error) {
		r, err := domain.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			return nil, err
		}
		return repos.Payments.GetIncomeStats(ctx, r)
	}))
	NewCRUDHandler[entity.Payment, entity.PaymentInput, entity.PaymentPatch](repos.Payments, "pago").Mount(payments, guard)

	abonos := api.Group("/abono")
	abonos.Get("/patient/:id/active", byParam("id", repos.Abonos.GetActiveByPatientID))
	abonos.Get("/patient/:id/balance", stats(func(ctx context.Context, c *fiber.Ctx) (fiber.Map, error) {
		balance, err := repos.Abonos.GetPatientBalance(ctx, c.Params("id"))
		if err != nil {
			return nil, err
		}
		return fiber.Map{"patientId": c.Params("id"), "balance": balance}, nil
	}))
	abonos.Get("/patient/:id", byParam("id", repos.Abonos.GetByPatientID))
	abonos.Get("/:id/usages", byParam("id", repos.Abonos.GetUsageHistory))
	abonos.Post("/:id/use", func(c *fiber.Ctx) error {
		var in entity.UseAbonoInput
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
		res, err := repos.Abonos.UseAbono(c.Context(), c.Params("id"), in)
		if err != nil {
			if res != nil {
				return partial(c, res, err)
			}
			return writeError(c, err)
		}
		return ok(c, res)
	})
	NewCRUDHandler[entity.Abono, entity.AbonoInput, entity.AbonoPatch](repos.Abonos, "abono").Mount(abonos, guard)

	// ── Paquetes ──────────────────────────────────────────────────────────────
	packages := api.Group("/package")
	packages.Get("/active", all(repos.Packages.GetActive))
	NewCRUDHandler[entity.Package, entity.PackageInput, entity.PackagePatch](repos.Packages, "paquete").Mount(packages, guard)

	patientPackages := api.Group("/patient-package")
	patientPackages.Get("/patient/:id/active", byParam("id", repos.PatientPackages.GetActiveByPatientID))
	patientPackages.Get("/patient/:id", byParam("id", repos.PatientPackages.GetByPatientID))
	patientPackages.Get("/:id/sessions", byParam("id", repos.PatientPackages.GetSessionHistory))
	patientPackages.Post("/:id/use-session", func(c *fiber.Ctx) error {
		var in entity.UseSessionInput
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&in); err != nil {
				return badBody(c)
			}
		}
		res, err := repos.PatientPackages.UseSession(c.Context(), c.Params("id"), in)
		if err != nil {
			if res != nil {
				return partial(c, res, err)
			}
			return writeError(c, err)
		}
		return ok(c, res)
	})
	NewCRUDHandler[entity.PatientPackage, entity.PatientPackageInput, entity.PatientPackagePatch](repos.PatientPackages, "paquete de paciente").Mount(patientPackages, guard)
}

// mountSales rutas de ventas; checkout y recibo se registran en SaleHandler.
func mountSales(sales fiber.Router, repo repository.SaleRepository, guard fiber.Handler) {
	sales.Get("/patient/:id", byParam("id", repo.GetByPatientID))
	sales.Get("/date-range", inRange(repo.GetByDateRange))
	sales.Get("/stats", stats(func(ctx context.Context, c *fiber.Ctx) (*entity.SalesStats, error) {
		r, err := domain.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			return nil, err
		}
		return repo.GetStats(ctx, r)
	}))
	NewCRUDHandler[entity.Sale, entity.SaleInput, entity.SalePatch](repo, "venta").Mount(sales, guard)
}
