// Package cache provides Redis-backed caching for hot lookups.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rodobedrossian/claritalacuenta-sub000/internal/application/adapter"
)

// DefaultRateTTL is how long a cached quote is trusted. Quotes move during
// the day, so the window stays short.
const DefaultRateTTL = 10 * time.Minute

// RateCache decorates an ExchangeRateSource with a Redis cache. Cache
// failures degrade to the underlying source, never to an error.
type RateCache struct {
	source adapter.ExchangeRateSource
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache creates a new RateCache instance. A zero ttl uses the default.
func NewRateCache(source adapter.ExchangeRateSource, client *redis.Client, ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = DefaultRateTTL
	}
	return &RateCache{
		source: source,
		client: client,
		ttl:    ttl,
	}
}

func rateKey(source string) string {
	return "exchange_rate:" + source
}

// GetRate returns the cached rate for the source, falling through to the
// underlying source on a miss and caching what it finds.
func (c *RateCache) GetRate(ctx context.Context, source string) (decimal.Decimal, error) {
	key := rateKey(source)

	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}
		slog.Warn("dropping unparseable cached rate", "key", key, "value", cached)
		c.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("rate cache read failed", "key", key, "error", err)
	}

	rate, err := c.source.GetRate(ctx, source)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.client.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		slog.Warn("rate cache write failed", "key", key, "error", err)
	}
	return rate, nil
}
