package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// Schema tabla clave-valor donde el backend local guarda sus colecciones.
const Schema = `
CREATE TABLE IF NOT EXISTS kv_collections (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var _ repository.BlobStore = (*BlobStore)(nil)

// BlobStore implementación de repository.BlobStore sobre PostgreSQL (pool o tx).
type BlobStore struct {
	q Querier
}

// NewBlobStore construye el adaptador. Pasar pool o tx (Querier).
func NewBlobStore(q Querier) *BlobStore {
	return &BlobStore{q: q}
}

// EnsureSchema crea la tabla si no existe.
func (s *BlobStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("crear kv_collections: %w", err)
	}
	return nil
}

// Get lee el documento de una colección.
func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.q.QueryRow(ctx, `SELECT value FROM kv_collections WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("get %s: tabla kv_collections inexistente (ejecute EnsureSchema): %w", key, err)
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Put inserta o reemplaza el documento.
func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_collections (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.q.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete es idempotente.
func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM kv_collections WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
