package local

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/entity"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// Schema describe cómo se guarda, busca y filtra una entidad.
type Schema[T entity.Entity] struct {
	Entity     string                                  // nombre en errores
	Plural     string                                  // sufijo de la clave
	Searchable func(T) []string                        // campos de Params.Search
	Field      func(item T, name string) (string, bool) // campos de Params.Filters
	Date       func(T) time.Time                       // orden y rangos; nil = CreatedAt
	Unique     func(T) string                          // clave única opcional (vacía = sin restricción)
	Seed       func(now time.Time) []T
}

// Repository implementación genérica del CRUD sobre una colección.
type Repository[T entity.Entity, C entity.Input[T], U entity.Patch[T]] struct {
	schema Schema[T]
	col    collection[T]
	opts   Options
}

// NewRepository enlaza el esquema con su clave en opts.Store.
func NewRepository[T entity.Entity, C entity.Input[T], U entity.Patch[T]](schema Schema[T], opts Options) *Repository[T, C, U] {
	opts = opts.withDefaults()
	now := opts.Now
	var seed func() []T
	if schema.Seed != nil {
		seed = func() []T { return schema.Seed(now()) }
	}
	return &Repository[T, C, U]{
		schema: schema,
		opts:   opts,
		col: collection[T]{
			store: opts.Store,
			key:   opts.Key(schema.Plural),
			seed:  seed,
			log:   opts.Logger.With().Str("collection", schema.Plural).Logger(),
		},
	}
}

// Key clave de la colección en el blob store.
func (r *Repository[T, C, U]) Key() string { return r.col.key }

// GetAll aplica búsqueda y filtros, ordena de más reciente a más antiguo y
// pagina. Total cuenta el conjunto filtrado completo.
func (r *Repository[T, C, U]) GetAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	items = search(items, params.Search, r.schema.Searchable)
	items, err = r.applyFilters(items, params.Filters)
	if err != nil {
		return nil, err
	}
	newestFirst(items, r.schema.Date)
	return pagination.Paginate(items, params.WithDefaults(r.opts.DefaultLimit)), nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *Repository[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, func(it T) bool { return it.GetID() == id })
}

// Create valida, asigna id y timestamps y persiste.
func (r *Repository[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	unlock := r.opts.Locks.Lock(r.col.key)
	defer unlock()

	items, err := r.col.loadForWrite(ctx)
	if err != nil {
		return nil, err
	}
	now := r.opts.Now()
	item := in.Build(r.opts.NewID(now), now)
	if err := r.checkUnique(items, item); err != nil {
		return nil, err
	}
	items = append(items, item)
	if err := r.col.save(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update aplica el patch; *domain.NotFoundError si no existe.
func (r *Repository[T, C, U]) Update(ctx context.Context, id string, patch U) (*T, error) {
	var out T
	err := r.mutate(ctx, id, func(item *T) error {
		patch.Apply(item, r.opts.Now())
		out = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el registro; *domain.NotFoundError si no existe (cada vez).
func (r *Repository[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.col.key)
	defer unlock()

	items, err := r.col.loadForWrite(ctx)
	if err != nil {
		return err
	}
	kept := filterBy(items, func(it T) bool { return it.GetID() != id })
	if len(kept) == len(items) {
		return domain.NewNotFoundError(r.schema.Entity, id)
	}
	return r.col.save(ctx, kept)
}

// Reset reescribe la colección con la semilla.
func (r *Repository[T, C, U]) Reset(ctx context.Context) error {
	unlock := r.opts.Locks.Lock(r.col.key)
	defer unlock()
	return r.col.reset(ctx)
}

// Clear borra la clave; la próxima lectura vuelve a sembrar.
func (r *Repository[T, C, U]) Clear(ctx context.Context) error {
	unlock := r.opts.Locks.Lock(r.col.key)
	defer unlock()
	return r.col.clear(ctx)
}

// ── helpers para los repositorios concretos ───────────────────────────────────

func (r *Repository[T, C, U]) all(ctx context.Context) ([]T, error) {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return nil, err
	}
	return r.col.load(ctx), nil
}

// list filtra y ordena de más reciente a más antiguo.
func (r *Repository[T, C, U]) list(ctx context.Context, pred func(T) bool) ([]T, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := filterBy(items, pred)
	newestFirst(out, r.schema.Date)
	return out, nil
}

func (r *Repository[T, C, U]) listInRange(ctx context.Context, dr domain.DateRange) ([]T, error) {
	return r.list(ctx, func(it T) bool { return dr.Contains(r.date(it)) })
}

func (r *Repository[T, C, U]) findOne(ctx context.Context, pred func(T) bool) (*T, error) {
	items, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if pred(items[i]) {
			item := items[i]
			return &item, nil
		}
	}
	return nil, nil
}

// mutate bloquea la clave, localiza id y persiste el resultado de fn.
// Si fn falla no se escribe nada.
func (r *Repository[T, C, U]) mutate(ctx context.Context, id string, fn func(item *T) error) error {
	if err := r.opts.Latency.Wait(ctx); err != nil {
		return err
	}
	unlock := r.opts.Locks.Lock(r.col.key)
	defer unlock()

	items, err := r.col.loadForWrite(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i := range items {
		if items[i].GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.NewNotFoundError(r.schema.Entity, id)
	}
	if err := fn(&items[idx]); err != nil {
		return err
	}
	return r.col.save(ctx, items)
}

func (r *Repository[T, C, U]) checkUnique(items []T, item T) error {
	if r.schema.Unique == nil {
		return nil
	}
	key := r.schema.Unique(item)
	if key == "" {
		return nil
	}
	for _, it := range items {
		if equalFold(r.schema.Unique(it), key) {
			return fmt.Errorf("%s %q: %w", r.schema.Entity, key, domain.ErrDuplicate)
		}
	}
	return nil
}

func (r *Repository[T, C, U]) date(it T) time.Time {
	if r.schema.Date != nil {
		return r.schema.Date(it)
	}
	return it.GetCreatedAt()
}

// applyFilters interpreta Params.Filters: startDate/endDate filtran por la
// fecha del esquema; el resto compara por igualdad con Schema.Field.
// Las claves desconocidas se ignoran.
func (r *Repository[T, C, U]) applyFilters(items []T, filters map[string]string) ([]T, error) {
	if len(filters) == 0 {
		return items, nil
	}
	start, end := filters["startDate"], filters["endDate"]
	if start != "" || end != "" {
		dr, err := openRange(start, end)
		if err != nil {
			return nil, err
		}
		items = filterBy(items, func(it T) bool { return dr.Contains(r.date(it)) })
	}
	if r.schema.Field == nil {
		return items, nil
	}
	for name, want := range filters {
		if name == "startDate" || name == "endDate" || strings.TrimSpace(want) == "" {
			continue
		}
		items = filterBy(items, func(it T) bool {
			got, ok := r.schema.Field(it, name)
			return !ok || equalFold(got, want)
		})
	}
	return items, nil
}

// openRange admite rangos abiertos por uno de los extremos.
func openRange(start, end string) (domain.DateRange, error) {
	dr := domain.DateRange{Start: time.Time{}, End: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)}
	if start != "" {
		t, err := domain.ParseDate(start)
		if err != nil {
			return dr, domain.NewValidationError("filtro", "startDate", err.Error(), domain.ErrInvalidInput)
		}
		dr.Start = t
	}
	if end != "" {
		t, err := domain.ParseEndDate(end)
		if err != nil {
			return dr, domain.NewValidationError("filtro", "endDate", err.Error(), domain.ErrInvalidInput)
		}
		dr.End = t
	}
	return dr, nil
}
