package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sakshamyadav19/HireMe-Backend/internal/testutil"
)

func TestRedisCacheRepo_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client, WithNamespace("hireme-test"))
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		ttl := 5 * time.Minute
		require.NoError(t, repo.Set(ctx, "emb:1", []byte("vector"), ttl))

		got, err := repo.Get(ctx, "emb:1")
		require.NoError(t, err)
		assert.Equal(t, []byte("vector"), got)

		actualTTL := client.TTL(ctx, "hireme-test:emb:1").Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("namespace applied", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "emb:2", []byte("x"), time.Minute))
		assert.Equal(t, int64(1), client.Exists(ctx, "hireme-test:emb:2").Val())
		assert.Equal(t, int64(0), client.Exists(ctx, "emb:2").Val())
	})

	t.Run("missing key", func(t *testing.T) {
		got, err := repo.Get(ctx, "emb:missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "emb:3", []byte("x"), time.Minute))

		deleted, err := repo.Delete(ctx, "emb:3")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "emb:3")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("health", func(t *testing.T) {
		assert.NoError(t, repo.Health(ctx))
	})
}

func TestRedisCacheRepo_Validation(t *testing.T) {
	repo := NewRedisCacheRepo(nil)
	ctx := context.Background()

	assert.Error(t, repo.Set(ctx, "", []byte("x"), time.Minute))

	_, err := repo.Get(ctx, "")
	assert.Error(t, err)

	_, err = repo.Delete(ctx, "")
	assert.Error(t, err)
}

func TestRedisCacheRepo_Key(t *testing.T) {
	assert.Equal(t, "k", NewRedisCacheRepo(nil).key("k"))
	assert.Equal(t, "ns:k", NewRedisCacheRepo(nil, WithNamespace("ns")).key("k"))
}
