// Package local implementa los repositorios sobre un repository.BlobStore:
// cada colección es un documento JSON bajo la clave <prefijo>_<plural>.
// Toda operación relee la colección completa y la reescribe entera al mutar;
// no hay caché entre llamadas.
package local

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// DefaultPrefix prefijo de las claves de almacenamiento.
const DefaultPrefix = "podocare"

// Options dependencias compartidas por los repositorios locales.
type Options struct {
	Store        repository.BlobStore
	Prefix       string
	Latency      Latency
	Locks        *KeyLocks
	NewID        func(now time.Time) string
	Now          func() time.Time
	DefaultLimit int
	Logger       zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Latency == nil {
		o.Latency = DefaultLatency()
	}
	if o.Locks == nil {
		o.Locks = NewKeyLocks()
	}
	if o.NewID == nil {
		o.NewID = NewID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Key construye la clave de una colección: <prefix>_<plural>.
func (o Options) Key(plural string) string {
	return o.Prefix + "_" + plural
}

// NewID identificador de timestamp en base 36 más un sufijo aleatorio.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}

// ── Latencia simulada ─────────────────────────────────────────────────────────

// Latency retardo aplicado al inicio de cada operación.
type Latency interface {
	Wait(ctx context.Context) error
}

// RandomLatency espera un tiempo uniforme en [Min, Max].
type RandomLatency struct {
	Min time.Duration
	Max time.Duration
}

// DefaultLatency 100–300 ms.
func DefaultLatency() RandomLatency {
	return RandomLatency{Min: 100 * time.Millisecond, Max: 300 * time.Millisecond}
}

// Wait respeta la cancelación del contexto.
func (l RandomLatency) Wait(ctx context.Context) error {
	d := l.Min
	if l.Max > l.Min {
		d += time.Duration(rand.Int64N(int64(l.Max - l.Min)))
	}
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NoLatency sin retardo (tests y uso en servidor).
type NoLatency struct{}

// Wait solo comprueba el contexto.
func (NoLatency) Wait(ctx context.Context) error { return ctx.Err() }

// ── Bloqueo por clave ─────────────────────────────────────────────────────────

// KeyLocks serializa las secuencias leer-modificar-escribir sobre una misma
// clave dentro del proceso. No ofrece garantías entre procesos.
type KeyLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyLocks crea el registro de bloqueos.
func NewKeyLocks() *KeyLocks {
	return &KeyLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock bloquea key y devuelve la función de desbloqueo.
func (k *KeyLocks) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()
	m.Lock()
	return m.Unlock
}
