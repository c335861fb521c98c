package query

import (
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/marketwatch/pricewatch/internal/metrics"
	"github.com/marketwatch/pricewatch/pkg/logger"
)

// Cache defaults.
const (
	DefaultStaleness = 5 * time.Minute
	DefaultSize      = 256
)

type entry struct {
	data      any
	fetchedAt time.Time
}

// Cache is the shared client-side store of completed query results. It is
// explicitly constructed and passed by reference, never ambient global
// state, so each test can own an isolated instance.
//
// Entries expire after the staleness window; an expired or absent entry
// forces a fetch. Per-key generation counters discard results of fetches
// that were superseded by an invalidation while in flight.
type Cache struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, entry]
	gens    map[string]uint64

	size    int
	ttl     time.Duration
	metrics *metrics.Metrics
	log     *slog.Logger
	nowFunc func() time.Time
}

// CacheOption configures the Cache.
type CacheOption func(*Cache)

// WithStaleness sets the staleness window after which cached data is
// eligible for re-fetch.
func WithStaleness(d time.Duration) CacheOption {
	return func(c *Cache) { c.ttl = d }
}

// WithSize sets the maximum number of cached entries.
func WithSize(n int) CacheOption {
	return func(c *Cache) { c.size = n }
}

// WithMetrics sets the metrics bundle the cache reports to.
func WithMetrics(m *metrics.Metrics) CacheOption {
	return func(c *Cache) { c.metrics = m }
}

// WithLogger sets the logger for cache diagnostics.
func WithLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) { c.log = l }
}

// WithNowFunc overrides the time source for testing.
func WithNowFunc(f func() time.Time) CacheOption {
	return func(c *Cache) { c.nowFunc = f }
}

// NewCache creates a query cache with the given options.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		gens:    make(map[string]uint64),
		size:    DefaultSize,
		ttl:     DefaultStaleness,
		metrics: metrics.New(),
		log:     logger.Nop(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = expirable.NewLRU[string, entry](c.size, nil, c.ttl)
	return c
}

// Metrics returns the cache's metrics bundle.
func (c *Cache) Metrics() *metrics.Metrics {
	return c.metrics
}

// Invalidate drops the cached entry for k and supersedes any fetch for it
// still in flight. Invalidating an absent or already-invalidated key is a
// no-op beyond the generation bump.
func (c *Cache) Invalidate(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := k.String()
	c.gens[key]++
	c.entries.Remove(key)
	c.metrics.CacheInvalidations.Inc()
	c.log.Debug("cache invalidated", "key", key)
}

// InvalidateAll drops every cached entry and supersedes all in-flight
// fetches.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.gens {
		c.gens[key]++
	}
	c.entries.Purge()
	c.log.Debug("cache cleared")
}

// Len returns the number of live cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// lookup returns the cached data for k if a live (non-stale) entry exists.
func (c *Cache) lookup(k Key) (any, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(k.String())
	if !ok {
		c.metrics.CacheMisses.Inc()
		return nil, time.Time{}, false
	}
	c.metrics.CacheHits.Inc()
	return e.data, e.fetchedAt, true
}

// generation returns the current generation of k. A fetch captures it
// before going to the network and passes it back to store.
func (c *Cache) generation(k Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[k.String()]
}

// store caches data for k unless the key's generation moved on since gen
// was captured, in which case the result is discarded and store reports
// false.
func (c *Cache) store(k Key, gen uint64, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := k.String()
	if c.gens[key] != gen {
		c.metrics.CacheSuperseded.Inc()
		c.log.Debug("stale fetch discarded", "key", key)
		return false
	}
	c.entries.Add(key, entry{data: data, fetchedAt: c.nowFunc()})
	c.metrics.CacheStores.Inc()
	return true
}
