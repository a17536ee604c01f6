package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/domain/repository"
)

func exerciseStore(t *testing.T, store repository.BlobStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "podocare_patients")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, store.Put(ctx, "podocare_patients", []byte(`[{"id":"1"}]`)))
	got, err := store.Get(ctx, "podocare_patients")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, store.Put(ctx, "podocare_patients", []byte(`[]`)))
	got, err = store.Get(ctx, "podocare_patients")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	require.NoError(t, store.Delete(ctx, "podocare_patients"))
	require.NoError(t, store.Delete(ctx, "podocare_patients"))
	_, err = store.Get(ctx, "podocare_patients")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestMemory(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestMemory_CopiaValores(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	v := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", v))
	v[0] = 'x'
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, f)
}

func TestFile_ClaveConCaracteresInseguros(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, f.Put(ctx, "../escape/key", []byte("1")))
	got, err := f.Get(ctx, "../escape/key")
	require.NoError(t, err)
	assert.Equal(t, "1", string(got))
}

func TestStore_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
