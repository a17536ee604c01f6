package store_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/podocare-api/internal/infrastructure/blob"
	"github.com/jhoicas/podocare-api/internal/infrastructure/store"
	"github.com/jhoicas/podocare-api/pkg/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := store.Open(ctx, &config.Config{}, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &blob.Memory{}, s)

	cfg := &config.Config{Store: config.StoreConfig{Driver: "FILE", Dir: t.TempDir()}}
	s, closeFn, err = store.Open(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()
	require.NoError(t, s.Put(ctx, "clave", []byte(`[]`)))
	raw, err := s.Get(ctx, "clave")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	_, _, err = store.Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "mongo"}}, zerolog.Nop())
	assert.ErrorIs(t, err, store.ErrUnknownDriver)

	_, _, err = store.Open(ctx, &config.Config{Store: config.StoreConfig{Driver: "redis", RedisURL: "nota-url://"}}, zerolog.Nop())
	assert.Error(t, err)
}
