// Package redis implementa repository.BlobStore sobre Redis (go-redis v9).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

type redisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// Config conexión al servidor Redis.
type Config struct {
	URL              string
	MaxConns         int
	OperationTimeout time.Duration
	Namespace        string // prefijo "<namespace>:" de las claves; vacío = sin prefijo
}

// BlobStore guarda cada colección como un string Redis sin expiración.
type BlobStore struct {
	client    redisClient
	opTimeout time.Duration
	namespace string
}

var _ repository.BlobStore = (*BlobStore)(nil)

// NewBlobStore crea el cliente a partir de REDIS_URL.
func NewBlobStore(cfg Config) (*BlobStore, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, errors.New("redis: url requerida")
	}
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		opts.PoolSize = cfg.MaxConns
	}
	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BlobStore{
		client:    goredis.NewClient(opts),
		opTimeout: timeout,
		namespace: strings.TrimSpace(cfg.Namespace),
	}, nil
}

// Ping verifica la conexión.
func (s *BlobStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Get devuelve repository.ErrKeyNotFound si la clave no existe.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Put reemplaza el valor.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete es idempotente.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close cierra el cliente.
func (s *BlobStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *BlobStore) key(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}
