package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

const cacheKeyPrefix = "geocode:"

// CachingGeocoder decorates a Geocoder with a redis TTL cache keyed by the
// normalized address line. Customer addresses repeat across subscription
// renewals, so cache hits save most provider calls. Cache failures degrade
// to the inner geocoder; they are logged, never surfaced.
type CachingGeocoder struct {
	inner ports.Geocoder
	rdb   *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

type cachedCoordinates struct {
	Found     bool    `json:"found"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NewCachingGeocoder wraps inner with a redis cache. The redis URL is parsed
// and the connection verified at construction.
func NewCachingGeocoder(
	inner ports.Geocoder,
	redisURL string,
	ttl time.Duration,
	logger *slog.Logger,
) (*CachingGeocoder, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &CachingGeocoder{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   logger.With("component", "geocode_cache"),
	}, nil
}

// Geocode checks the cache before delegating. Negative results ("address not
// found") are cached too, so a bad address does not hammer the provider.
func (c *CachingGeocoder) Geocode(ctx context.Context, address order.DeliveryAddress) (*ports.Coordinates, error) {
	key := cacheKeyPrefix + address.Line()

	val, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached cachedCoordinates
		if unmarshalErr := json.Unmarshal([]byte(val), &cached); unmarshalErr == nil {
			if !cached.Found {
				return nil, nil
			}
			return &ports.Coordinates{Latitude: cached.Latitude, Longitude: cached.Longitude}, nil
		}
		c.log.WarnContext(ctx, "dropping unreadable cache entry", "key", key)
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		c.log.WarnContext(ctx, "cache read failed, falling through to geocoder", "error", err)
	}

	coords, err := c.inner.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, coords)
	return coords, nil
}

// Close releases the redis connection.
func (c *CachingGeocoder) Close() error {
	return c.rdb.Close()
}

func (c *CachingGeocoder) store(ctx context.Context, key string, coords *ports.Coordinates) {
	cached := cachedCoordinates{}
	if coords != nil {
		cached = cachedCoordinates{Found: true, Latitude: coords.Latitude, Longitude: coords.Longitude}
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err = c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "cache write failed", "error", err)
	}
}
