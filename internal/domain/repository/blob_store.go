package repository

import (
	"context"
	"errors"
)

// ErrKeyNotFound lo devuelve BlobStore.Get cuando la clave no existe.
var ErrKeyNotFound = errors.New("blob store: clave no encontrada")

// BlobStore almacenamiento clave-valor opaco donde el backend local guarda
// cada colección como un único documento JSON.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
