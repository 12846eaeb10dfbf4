package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, opts ...RedisOption) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, opts...), mr
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "booking-formData")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "booking-formData", `{"step":1}`))
	got, err := store.Get(ctx, "booking-formData")
	require.NoError(t, err)
	assert.Equal(t, `{"step":1}`, got)

	require.NoError(t, store.Set(ctx, "booking-formData", `{"step":2}`))
	got, err = store.Get(ctx, "booking-formData")
	require.NoError(t, err)
	assert.Equal(t, `{"step":2}`, got)

	require.NoError(t, store.Delete(ctx, "booking-formData"))
	_, err = store.Get(ctx, "booking-formData")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "booking-formData"))
	assert.ErrorIs(t, store.Set(ctx, "", "x"), ErrInvalidKey)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	exerciseStore(t, store)
}

func TestFileStore_EscapesKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "../escape/key", "v"))
	got, err := store.Get(ctx, "../escape/key")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestRedisStore(t *testing.T) {
	store, _ := setupRedisStore(t)
	exerciseStore(t, store)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStore_PrefixAndTTL(t *testing.T) {
	store, mr := setupRedisStore(t, WithRedisPrefix("site:"), WithRedisTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "courseData", "blob"))
	assert.True(t, mr.Exists("site:courseData"))
	assert.Equal(t, time.Hour, mr.TTL("site:courseData"))

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "courseData")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_DefaultsKeepLogicalKey(t *testing.T) {
	store, mr := setupRedisStore(t)
	require.NoError(t, store.Set(context.Background(), "formwizard_booking-formData", "v"))
	assert.Equal(t, []string{"formwizard_booking-formData"}, mr.Keys())
	assert.Equal(t, MaxAge, mr.TTL("formwizard_booking-formData"))
}
