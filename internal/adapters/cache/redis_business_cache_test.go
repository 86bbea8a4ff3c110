package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-point-service/internal/domain"
)

func newTestCache(t *testing.T) (*RedisBusinessCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBusinessCache(client, time.Minute), mr
}

func TestRedisBusinessCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	at := domain.Coordinates{Lat: 33.448376, Lon: -112.074036}
	in := []domain.Business{{
		ID:          "abc",
		Name:        "Taco Spot",
		Rating:      4.5,
		ReviewCount: 120,
		Coordinates: domain.Coordinates{Lat: 33.45, Lon: -112.07},
		Categories:  []string{"Mexican", "Tacos"},
		Address:     "1 Main St, Phoenix, AZ",
	}}

	_, ok, err := c.Get(ctx, at)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, at, in))

	// Nearby searches share the rounded key.
	out, ok, err := c.Get(ctx, domain.Coordinates{Lat: 33.44838, Lon: -112.07404})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestRedisBusinessCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	at := domain.Coordinates{Lat: 1, Lon: 2}
	require.NoError(t, c.Put(ctx, at, []domain.Business{{ID: "x"}}))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, at)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBusinessCacheCorruptValue(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	at := domain.Coordinates{Lat: 1, Lon: 2}
	require.NoError(t, mr.Set(c.key(at), "not json"))

	_, _, err := c.Get(ctx, at)
	require.Error(t, err)
}

func TestUniqueKeys(t *testing.T) {
	got := uniqueKeys([]string{" a ", "b", "a", "", "  "})
	assert.Equal(t, []string{"a", "b"}, got)
}
