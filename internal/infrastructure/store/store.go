// Package store abre el BlobStore del backend local según STORE_DRIVER.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/postgres"
	"github.com/jhoicas/podocare-api/internal/infrastructure/redis"
	"github.com/jhoicas/podocare-api/pkg/config"
)

// Drivers soportados.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver STORE_DRIVER no reconocido.
var ErrUnknownDriver = errors.New("store: driver desconocido")

// Open construye el BlobStore y devuelve la función que libera sus conexiones.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.BlobStore, func(), error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	noop := func() {}

	switch driver {
	case "", DriverMemory:
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return blob.NewMemory(), noop, nil

	case DriverFile:
		s, err := blob.NewFile(cfg.Store.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("store file: %w", err)
		}
		log.Info().Str("dir", cfg.Store.Dir).Msg("store en archivos")
		return s, noop, nil

	case DriverRedis:
		s, err := redis.NewBlobStore(redis.Config{
			URL:      cfg.Store.RedisURL,
			MaxConns: cfg.Store.RedisMaxConns,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("store redis: %w", err)
		}
		log.Info().Msg("store en Redis")
		return s, func() { _ = s.Close() }, nil

	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("store postgres: %w", err)
		}
		s := postgres.NewBlobStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("store postgres: %w", err)
		}
		log.Info().Msg("store en PostgreSQL")
		return s, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Store.Driver)
}
