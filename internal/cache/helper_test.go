package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withTestRedis points the package client at a miniredis instance for the
// duration of the test.
func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	old := client
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		client = old
	})
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		var got payload
		found, err := GetJSON(ctx, "missing", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("roundtrip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, "k", payload{Name: "agora", Count: 3}, time.Minute))

		var got payload
		found, err := GetJSON(ctx, "k", &got)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, payload{Name: "agora", Count: 3}, got)
	})

	t.Run("expiry", func(t *testing.T) {
		mr := withTestRedis(t)
		require.NoError(t, SetJSON(ctx, "short", payload{Name: "gone"}, time.Second))
		mr.FastForward(2 * time.Second)

		var got payload
		found, err := GetJSON(ctx, "short", &got)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAside(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			fetches++
			*dest = payload{Name: "db", Count: fetches}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "user:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "db", first.Name)

	// Second read is served from the cache; fetch must not run again.
	var second payload
	require.NoError(t, Aside(ctx, "user:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, first, second)
}

func TestAside_NilClientAlwaysFetches(t *testing.T) {
	old := client
	client = nil
	t.Cleanup(func() { client = old })

	ctx := context.Background()
	fetches := 0
	for i := 0; i < 2; i++ {
		var got payload
		require.NoError(t, Aside(ctx, "user:1", &got, time.Minute, func() error {
			fetches++
			got.Name = "db"
			return nil
		}))
		assert.Equal(t, "db", got.Name)
	}
	assert.Equal(t, 2, fetches)
}
