package local

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/jhoicas/podocare-api/internal/domain"
	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// collection documento JSON de una clave del blob store.
type collection[T any] struct {
	store repository.BlobStore
	key   string
	seed  func() []T
	log   zerolog.Logger
}

// load lee la colección. Si la clave no existe persiste la semilla y la
// devuelve; un fallo de lectura o de decodificación degrada a la semilla con
// un warning, nunca a error.
func (c collection[T]) load(ctx context.Context) []T {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		items := c.seedItems()
		if err := c.save(ctx, items); err != nil {
			c.log.Warn().Err(err).Str("key", c.key).Msg("no se pudo persistir la semilla")
		}
		return items
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("lectura fallida, usando semilla")
		return c.seedItems()
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Str("key", c.key).Msg("colección corrupta, usando semilla")
		return c.seedItems()
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// loadForWrite lectura estricta para read-modify-write: clave ausente = semilla,
// cualquier otro fallo es *domain.StorageError para no pisar lo persistido.
func (c collection[T]) loadForWrite(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return c.seedItems(), nil
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "leer", Key: c.key, Err: err}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &domain.StorageError{Op: "decodificar", Key: c.key, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c collection[T]) seedItems() []T {
	if c.seed == nil {
		return []T{}
	}
	items := c.seed()
	if items == nil {
		return []T{}
	}
	return items
}

// save reescribe la colección completa.
func (c collection[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return &domain.StorageError{Op: "serializar", Key: c.key, Err: err}
	}
	if err := c.store.Put(ctx, c.key, raw); err != nil {
		return &domain.StorageError{Op: "escribir", Key: c.key, Err: err}
	}
	return nil
}

func (c collection[T]) reset(ctx context.Context) error {
	return c.save(ctx, c.seedItems())
}

func (c collection[T]) clear(ctx context.Context) error {
	if err := c.store.Delete(ctx, c.key); err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
		return &domain.StorageError{Op: "borrar", Key: c.key, Err: err}
	}
	return nil
}
