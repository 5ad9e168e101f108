// Package cache provides the two-level search-result cache: a small
// in-process ccache in front of memcached, both TTL-bound. Cache failures are
// never fatal; the caller falls through to the store.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog"

	"github.com/staysmart/hospitality-platform/internal/api/metrics"
	"github.com/staysmart/hospitality-platform/internal/core/domain"
)

const (
	localMaxSize = 1000
	keyPrefix    = "search:"
)

// SearchCache implements service.SearchCache with a local ccache level and a
// shared memcached level.
type SearchCache struct {
	local  *ccache.Cache[[]domain.PropertySummary]
	remote *memcache.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSearchCache(memcachedAddr string, ttl time.Duration, logger zerolog.Logger) *SearchCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &SearchCache{
		local:  ccache.New(ccache.Configure[[]domain.PropertySummary]().MaxSize(localMaxSize)),
		remote: memcache.New(memcachedAddr),
		ttl:    ttl,
		logger: logger,
	}
}

// Get checks the local level first, then memcached, promoting remote hits
// into the local level.
func (c *SearchCache) Get(_ context.Context, key string) ([]domain.PropertySummary, bool) {
	if item := c.local.Get(key); item != nil && !item.Expired() {
		metrics.SearchRequestsTotal.WithLabelValues("hit").Inc()
		return item.Value(), true
	}

	raw, err := c.remote.Get(keyPrefix + key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("key", key).Msg("memcached get failed")
		}
		metrics.SearchRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var items []domain.PropertySummary
	if err := json.Unmarshal(raw.Value, &items); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("corrupt cache entry dropped")
		_ = c.remote.Delete(keyPrefix + key)
		metrics.SearchRequestsTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	c.local.Set(key, items, c.ttl)
	metrics.SearchRequestsTotal.WithLabelValues("hit").Inc()
	return items, true
}

// Set writes both levels. Remote failures are logged and ignored.
func (c *SearchCache) Set(_ context.Context, key string, items []domain.PropertySummary) {
	c.local.Set(key, items, c.ttl)

	payload, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}

	if err := c.remote.Set(&memcache.Item{
		Key:        keyPrefix + key,
		Value:      payload,
		Expiration: int32(c.ttl.Seconds()),
	}); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("memcached set failed")
	}
}
