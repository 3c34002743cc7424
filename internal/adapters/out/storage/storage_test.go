package storage

import (
	"context"
	"testing"

	"github.com/Chrid17/Elite-Barbershop-Website/internal/adapters/out/logger"
	"github.com/Chrid17/Elite-Barbershop-Website/internal/core/ports/out"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlobBackends(t *testing.T) map[string]out.BlobPort {
	t.Helper()

	badgerAdapter, err := NewBadgerAdapter("", logger.NopLogger{})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisAdapter := NewRedisAdapter(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	backends := map[string]out.BlobPort{
		"memory": NewMemoryAdapter(),
		"badger": badgerAdapter,
		"redis":  redisAdapter,
	}
	t.Cleanup(func() {
		for _, b := range backends {
			b.Close()
		}
	})
	return backends
}

func TestBlobBackends_GetPut(t *testing.T) {
	ctx := context.Background()

	for name, backend := range newBlobBackends(t) {
		t.Run(name, func(t *testing.T) {
			value, ok, err := backend.Get(ctx, "bookings")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Nil(t, value)

			require.NoError(t, backend.Put(ctx, "bookings", []byte(`{"version":1}`)))

			value, ok, err = backend.Get(ctx, "bookings")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"version":1}`, string(value))

			require.NoError(t, backend.Put(ctx, "bookings", []byte(`[]`)))
			value, _, err = backend.Get(ctx, "bookings")
			require.NoError(t, err)
			assert.Equal(t, `[]`, string(value))
		})
	}
}

func TestMemoryAdapter_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()

	original := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", original))
	original[0] = 'x'

	value, _, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(value))

	value[1] = 'y'
	again, _, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestRedisAdapter_FromOptions(t *testing.T) {
	mr := miniredis.RunT(t)

	adapter, err := NewRedisAdapterFromOptions(context.Background(), &redis.Options{Addr: mr.Addr()})
	require.NoError(t, err)
	defer adapter.Close()

	require.NoError(t, adapter.Put(context.Background(), "key", []byte("value")))
	stored, err := mr.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "value", stored)
}
