package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

// fakeClient mapa en memoria con la semántica de GET/SET/DEL.
type fakeClient struct {
	data    map[string]string
	setErr  error
	closed  bool
	lastTTL time.Duration
}

func (f *fakeClient) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd {
	if f.setErr != nil {
		return goredis.NewStatusResult("", f.setErr)
	}
	f.lastTTL = expiration
	f.data[key] = string(value.([]byte))
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	n := 0
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(int64(n), nil)
}

func (f *fakeClient) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func newTestStore(namespace string) (*BlobStore, *fakeClient) {
	fc := &fakeClient{data: map[string]string{}}
	return &BlobStore{client: fc, opTimeout: time.Second, namespace: namespace}, fc
}

func TestBlobStore_Ciclo(t *testing.T) {
	ctx := context.Background()
	s, fc := newTestStore("clinica")

	_, err := s.Get(ctx, "podocare_patients")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "podocare_patients", []byte(`[{"id":"pat-001"}]`)))
	assert.Contains(t, fc.data, "clinica:podocare_patients")
	assert.Zero(t, fc.lastTTL, "las colecciones no expiran")

	got, err := s.Get(ctx, "podocare_patients")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"pat-001"}]`, string(got))

	require.NoError(t, s.Delete(ctx, "podocare_patients"))
	require.NoError(t, s.Delete(ctx, "podocare_patients"))
	_, err = s.Get(ctx, "podocare_patients")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, s.Ping(ctx))
	require.NoError(t, s.Close())
	assert.True(t, fc.closed)
}

func TestBlobStore_SinNamespace(t *testing.T) {
	s, _ := newTestStore("")
	assert.Equal(t, "podocare_sales", s.key("podocare_sales"))
}

func TestBlobStore_ErrorDeEscritura(t *testing.T) {
	s, fc := newTestStore("")
	fc.setErr = errors.New("OOM command not allowed")
	err := s.Put(context.Background(), "k", []byte("1"))
	assert.ErrorIs(t, err, fc.setErr)
}

func TestNewBlobStore_Validacion(t *testing.T) {
	_, err := NewBlobStore(Config{})
	assert.Error(t, err)

	_, err = NewBlobStore(Config{URL: "://malformada"})
	assert.Error(t, err)

	s, err := NewBlobStore(Config{URL: "redis://localhost:6379/0", MaxConns: 4})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, s.opTimeout)
	require.NoError(t, s.Close())
}
