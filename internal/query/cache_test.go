package query

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketwatch/pricewatch/internal/metrics"
)

func TestCache_StoreAndLookup(t *testing.T) {
	t.Parallel()

	c := NewCache()
	k := SearchKey("갤럭시")

	_, _, ok := c.lookup(k)
	assert.False(t, ok)

	require.True(t, c.store(k, c.generation(k), "result"))

	data, fetchedAt, ok := c.lookup(k)
	require.True(t, ok)
	assert.Equal(t, "result", data)
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Second)

	m := c.Metrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheStores))
}

func TestCache_StalenessExpiry(t *testing.T) {
	t.Parallel()

	c := NewCache(WithStaleness(20 * time.Millisecond))
	k := ProductKey(1)

	require.True(t, c.store(k, c.generation(k), "fresh"))
	_, _, ok := c.lookup(k)
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, _, ok = c.lookup(k)
	assert.False(t, ok, "expired entry must force a re-fetch")
}

func TestCache_InvalidateIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewCache()
	k := WatchesKey()

	require.True(t, c.store(k, c.generation(k), "watches"))
	c.Invalidate(k)
	c.Invalidate(k) // second invalidation of the same key is a no-op

	_, _, ok := c.lookup(k)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCache_GenerationSupersedesInFlightFetch(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	c := NewCache(WithMetrics(m))
	k := OffersKey(42)

	gen := c.generation(k)
	c.Invalidate(k) // key invalidated while the fetch is in flight

	stored := c.store(k, gen, "stale offers")
	assert.False(t, stored, "superseded result must be discarded")

	_, _, ok := c.lookup(k)
	assert.False(t, ok)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheSuperseded))
}

func TestCache_InvalidateAll(t *testing.T) {
	t.Parallel()

	c := NewCache()
	gen := c.generation(SearchKey("a"))
	require.True(t, c.store(SearchKey("a"), gen, 1))
	require.True(t, c.store(ProductKey(2), c.generation(ProductKey(2)), 2))
	require.Equal(t, 2, c.Len())

	c.InvalidateAll()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.store(SearchKey("a"), gen, 1), "pre-clear generation must be stale")
}

func TestKey_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "search?q=갤럭시", SearchKey("갤럭시").String())
	assert.Equal(t, "product?id=42", ProductKey(42).String())
	assert.Equal(t, "offers?product_id=42", OffersKey(42).String())
	assert.Equal(t, "price-history?offer_id=7", HistoryKey(7).String())
	assert.Equal(t, "watches", WatchesKey().String())
}
