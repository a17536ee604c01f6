package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/podocare-api/internal/application/dto"
	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// CRUDHandler expone un repositorio con las cinco rutas estándar.
type CRUDHandler[T any, C any, U any] struct {
	repo repository.CRUD[T, C, U]
	name string
}

// NewCRUDHandler construye el handler; name se usa en los mensajes.
func NewCRUDHandler[T any, C any, U any](repo repository.CRUD[T, C, U], name string) *CRUDHandler[T, C, U] {
	return &CRUDHandler[T, C, U]{repo: repo, name: name}
}

// Mount registra GET /, POST /, GET /:id, PUT /:id y DELETE /:id. Las rutas
// de búsqueda del recurso deben registrarse antes. deleteGuard (opcional)
// protege el borrado.
func (h *CRUDHandler[T, C, U]) Mount(r fiber.Router, deleteGuard fiber.Handler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/:id", h.GetByID)
	r.Put("/:id", h.Update)
	if deleteGuard != nil {
		r.Delete("/:id", deleteGuard, h.Delete)
		return
	}
	r.Delete("/:id", h.Delete)
}

// List GET /?page&limit&search&<filtros>. Cualquier otro parámetro de la
// query se pasa como filtro.
func (h *CRUDHandler[T, C, U]) List(c *fiber.Ctx) error {
	page, err := h.repo.GetAll(c.Context(), listParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, dto.NewPageResponse(page))
}

// GetByID GET /:id.
func (h *CRUDHandler[T, C, U]) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", h.name+" no encontrado")
	}
	return ok(c, out)
}

// Create POST /.
func (h *CRUDHandler[T, C, U]) Create(c *fiber.Ctx) error {
	var in C
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.repo.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return created(c, out)
}

// Update PUT /:id con actualización parcial.
func (h *CRUDHandler[T, C, U]) Update(c *fiber.Ctx) error {
	var patch U
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	out, err := h.repo.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Delete DELETE /:id.
func (h *CRUDHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	if err := h.repo.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.Envelope{State: dto.StateSuccess, Message: h.name + " eliminado"})
}

func listParams(c *fiber.Ctx) pagination.Params {
	params := pagination.Params{
		Page:   c.QueryInt("page", 0),
		Limit:  c.QueryInt("limit", 0),
		Search: c.Query("search"),
	}
	for k, v := range c.Queries() {
		switch k {
		case "page", "limit", "search":
			continue
		}
		if params.Filters == nil {
			params.Filters = make(map[string]string)
		}
		params.Filters[k] = v
	}
	return params
}

// ── buscadores ────────────────────────────────────────────────────────────────

// listBy responde un listado no paginado.
func listBy[T any](find func(ctx context.Context, c *fiber.Ctx) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := find(c.Context(), c)
		if err != nil {
			return writeError(c, err)
		}
		if out == nil {
			out = []T{}
		}
		return ok(c, out)
	}
}

// oneBy responde un registro; nil → 404.
func oneBy[T any](name string, find func(ctx context.Context, c *fiber.Ctx) (*T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := find(c.Context(), c)
		if err != nil {
			return writeError(c, err)
		}
		if out == nil {
			return fail(c, fiber.StatusNotFound, "NOT_FOUND", name+" no encontrado")
		}
		return ok(c, out)
	}
}

// inRange lee startDate y endDate de la query.
func inRange[T any](find func(ctx context.Context, r domain.DateRange) ([]T, error)) fiber.Handler {
	return listBy(func(ctx context.Context, c *fiber.Ctx) ([]T, error) {
		r, err := domain.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			return nil, err
		}
		return find(ctx, r)
	})
}

// byParam adapta un buscador por parámetro de ruta.
func byParam[T any](param string, find func(ctx context.Context, v string) ([]T, error)) fiber.Handler {
	return listBy(func(ctx context.Context, c *fiber.Ctx) ([]T, error) {
		return find(ctx, c.Params(param))
	})
}

// all adapta un buscador sin parámetros.
func all[T any](find func(ctx context.Context) ([]T, error)) fiber.Handler {
	return listBy(func(ctx context.Context, _ *fiber.Ctx) ([]T, error) {
		return find(ctx)
	})
}

// stats responde el valor que devuelve fn.
func stats[T any](fn func(ctx context.Context, c *fiber.Ctx) (T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := fn(c.Context(), c)
		if err != nil {
			return writeError(c, err)
		}
		return ok(c, out)
	}
}
