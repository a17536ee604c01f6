// Package blob implementa repository.BlobStore en memoria y en disco.
package blob

import (
	"context"
	"sync"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// Memory store en memoria del proceso. Copia los valores al entrar y salir.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ repository.BlobStore = (*Memory)(nil)

// NewMemory crea un store vacío.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get devuelve repository.ErrKeyNotFound si la clave no existe.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put reemplaza el valor.
func (m *Memory) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Delete es idempotente.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys claves presentes (tests y diagnóstico).
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys
}
