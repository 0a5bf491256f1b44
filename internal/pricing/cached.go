package pricing

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"btc_wallet/internal/utils"
)

const quoteKey = "btc-usd"

// Cached serves quotes from Redis for ttl before asking the upstream provider
// again. Redis failures fall back to the upstream call. A ttl of zero or less
// disables the cache.
type Cached struct {
	upstream Provider
	cache    *utils.JSONCache[Quote]
	enabled  bool // ttl > 0
}

// NewCached puts a Redis cache with the given ttl in front of upstream.
func NewCached(upstream Provider, rdb redis.Cmdable, ttl time.Duration) *Cached {
	return &Cached{
		upstream: upstream,
		cache:    utils.NewJSONCache[Quote](rdb, "price:", ttl),
		enabled:  ttl > 0,
	}
}

// BTCUSD returns the cached quote, fetching and storing a fresh one on a miss.
func (c *Cached) BTCUSD(ctx context.Context) (Quote, error) {
	if !c.enabled {
		return c.upstream.BTCUSD(ctx)
	}
	q, found, err := c.cache.Get(ctx, quoteKey)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("price cache read failed")
	} else if found {
		return q, nil
	}

	q, err = c.upstream.BTCUSD(ctx)
	if err != nil {
		return Quote{}, err
	}
	if err := c.cache.Set(ctx, quoteKey, q); err != nil {
		logrus.WithField("error", err.Error()).Warn("price cache write failed")
	}
	return q, nil
}
