// Package hybrid combina el backend REST con el respaldo local: cada llamada
// va primero a la API y, si esta no está disponible, se atiende en local.
// Lo escrito en local durante el respaldo no se sincroniza de vuelta.
package hybrid

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/pkg/pagination"
)

// DefaultRetryAfter tiempo que se omite la API tras un fallo.
const DefaultRetryAfter = 30 * time.Second

// Gate interruptor compartido por todos los repositorios de un agregado.
// Tras un fallo de disponibilidad la API se omite durante retryAfter.
type Gate struct {
	mu         sync.Mutex
	retryAfter time.Duration
	openUntil  time.Time
	now        func() time.Time
	log        zerolog.Logger
}

// NewGate crea el interruptor. retryAfter <= 0 usa DefaultRetryAfter.
func NewGate(retryAfter time.Duration, log zerolog.Logger) *Gate {
	if retryAfter <= 0 {
		retryAfter = DefaultRetryAfter
	}
	return &Gate{retryAfter: retryAfter, now: time.Now, log: log.With().Str("component", "hybrid").Logger()}
}

// WithClock reemplaza el reloj (pruebas).
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Open indica si la API se está omitiendo.
func (g *Gate) Open() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.now().Before(g.openUntil)
}

func (g *Gate) trip(op string, err error) {
	g.mu.Lock()
	g.openUntil = g.now().Add(g.retryAfter)
	g.mu.Unlock()
	g.log.Warn().Err(err).Str("op", op).Dur("retry_after", g.retryAfter).Msg("API no disponible, usando respaldo local")
}

func (g *Gate) reset() {
	g.mu.Lock()
	g.openUntil = time.Time{}
	g.mu.Unlock()
}

// call ejecuta remote y cae a local solo ante errores de disponibilidad.
// Los 4xx, validaciones y not-found se devuelven tal cual. Si el contexto del
// llamador se canceló o venció, el error se devuelve sin abrir el interruptor.
func call[R any](ctx context.Context, g *Gate, op string, remote, local func() (R, error)) (R, error) {
	if err := ctx.Err(); err != nil {
		var zero R
		return zero, err
	}
	if g.Open() {
		return local()
	}
	res, err := remote()
	if err == nil {
		g.reset()
		return res, nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) || !domain.IsUnavailable(err) {
		return res, err
	}
	g.trip(op, err)
	return local()
}

// Resource CRUD híbrido genérico.
type Resource[T any, C any, U any] struct {
	remote   repository.CRUD[T, C, U]
	fallback repository.CRUD[T, C, U]
	gate     *Gate
	entity   string
}

func newResource[T any, C any, U any](remote, fallback repository.CRUD[T, C, U], gate *Gate, name string) *Resource[T, C, U] {
	return &Resource[T, C, U]{remote: remote, fallback: fallback, gate: gate, entity: name}
}

func (r *Resource[T, C, U]) op(name string) string { return r.entity + "." + name }

func (r *Resource[T, C, U]) GetAll(ctx context.Context, params pagination.Params) (*pagination.Page[T], error) {
	return call(ctx, r.gate, r.op("GetAll"),
		func() (*pagination.Page[T], error) { return r.remote.GetAll(ctx, params) },
		func() (*pagination.Page[T], error) { return r.fallback.GetAll(ctx, params) })
}

func (r *Resource[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	return call(ctx, r.gate, r.op("GetByID"),
		func() (*T, error) { return r.remote.GetByID(ctx, id) },
		func() (*T, error) { return r.fallback.GetByID(ctx, id) })
}

func (r *Resource[T, C, U]) Create(ctx context.Context, in C) (*T, error) {
	return call(ctx, r.gate, r.op("Create"),
		func() (*T, error) { return r.remote.Create(ctx, in) },
		func() (*T, error) { return r.fallback.Create(ctx, in) })
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id string, patch U) (*T, error) {
	return call(ctx, r.gate, r.op("Update"),
		func() (*T, error) { return r.remote.Update(ctx, id, patch) },
		func() (*T, error) { return r.fallback.Update(ctx, id, patch) })
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := call(ctx, r.gate, r.op("Delete"),
		func() (struct{}, error) { return struct{}{}, r.remote.Delete(ctx, id) },
		func() (struct{}, error) { return struct{}{}, r.fallback.Delete(ctx, id) })
	return err
}
