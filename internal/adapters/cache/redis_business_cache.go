package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"meeting-point-service/internal/ports"
)

// RedisBusinessCache stores business search results in Redis as JSON.
// Keys round coordinates to 4 decimals (~11 m) so nearby medians share entries.
type RedisBusinessCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

var _ ports.BusinessCache = (*RedisBusinessCache)(nil)

type cachedBusiness struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Categories  []string `json:"categories"`
	Address     string   `json:"address"`
	ImageURL    string   `json:"image_url"`
	URL         string   `json:"url"`
	Distance    float64  `json:"distance"`
}

func NewRedisBusinessCache(client *redis.Client, ttl time.Duration) *RedisBusinessCache {
	return &RedisBusinessCache{client: client, ttl: ttl, prefix: "businesses:"}
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

func (c *RedisBusinessCache) key(at domain.Coordinates) string {
	return fmt.Sprintf("%s%.4f,%.4f", c.prefix, at.Lat, at.Lon)
}

func (c *RedisBusinessCache) Get(ctx context.Context, at domain.Coordinates) (_ []domain.Business, ok bool, err error) {
	defer obs.Time(ctx, "business.cache.Get")(&err)

	raw, err := c.client.Get(ctx, c.key(at)).Bytes()
	if errors.Is(err, redis.Nil) {
		obs.CacheLookups.WithLabelValues("business", "miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("business cache get: %w", err)
	}

	var stored []cachedBusiness
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, false, fmt.Errorf("business cache get: decode: %w", err)
	}

	out := make([]domain.Business, 0, len(stored))
	for _, b := range stored {
		out = append(out, domain.Business{
			ID:          b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			Coordinates: domain.Coordinates{Lat: b.Lat, Lon: b.Lon},
			Categories:  b.Categories,
			Address:     b.Address,
			ImageURL:    b.ImageURL,
			URL:         b.URL,
			Distance:    b.Distance,
		})
	}

	obs.CacheLookups.WithLabelValues("business", "hit").Inc()
	return out, true, nil
}

func (c *RedisBusinessCache) Put(ctx context.Context, at domain.Coordinates, businesses []domain.Business) error {
	stored := make([]cachedBusiness, 0, len(businesses))
	for _, b := range businesses {
		stored = append(stored, cachedBusiness{
			ID:          b.ID,
			Name:        b.Name,
			Rating:      b.Rating,
			ReviewCount: b.ReviewCount,
			Lat:         b.Coordinates.Lat,
			Lon:         b.Coordinates.Lon,
			Categories:  b.Categories,
			Address:     b.Address,
			ImageURL:    b.ImageURL,
			URL:         b.URL,
			Distance:    b.Distance,
		})
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("business cache put: encode: %w", err)
	}

	if err := c.client.Set(ctx, c.key(at), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("business cache put: %w", err)
	}
	return nil
}
