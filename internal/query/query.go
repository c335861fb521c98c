package query

import (
	"context"
	"time"
)

// Fetch retrieves fresh data for a query from the API.
type Fetch[T any] func(ctx context.Context) (T, error)

// Query binds a cache key to a fetch function behind a guard condition.
//
// Running a query serves cached data when a live entry exists, otherwise
// it fetches with exactly one automatic retry. A retry that succeeds is
// indistinguishable from a first-try success: no intermediate error is
// ever observable. Persistent failure surfaces as StateError and is not
// cached, so running the query again (the user-triggered retry) re-fetches.
type Query[T any] struct {
	// Enabled is the guard condition. When it returns false the query is
	// idle: no request, no data, no error. Nil means always enabled.
	Enabled func() bool

	// Observer, when set, sees every state transition of a run in order.
	Observer func(Result[T])

	cache *Cache
	key   Key
	fetch Fetch[T]
}

// New creates a query for key backed by fetch.
func New[T any](cache *Cache, key Key, fetch Fetch[T]) *Query[T] {
	return &Query[T]{cache: cache, key: key, fetch: fetch}
}

// Key returns the query's cache key.
func (q *Query[T]) Key() Key {
	return q.key
}

// Run resolves the query to a terminal result.
func (q *Query[T]) Run(ctx context.Context) Result[T] {
	if q.Enabled != nil && !q.Enabled() {
		return q.emit(IdleResult[T]())
	}

	if data, fetchedAt, ok := q.cache.lookup(q.key); ok {
		if typed, ok := data.(T); ok {
			return q.emit(SuccessResult(typed, fetchedAt))
		}
		// A differently-typed entry under the same key means the key
		// scheme is broken somewhere; treat it as a miss.
		q.cache.Invalidate(q.key)
	}

	q.emit(LoadingResult[T]())

	gen := q.cache.generation(q.key)
	data, err := q.fetchOnce(ctx)
	if err != nil {
		q.cache.metrics.QueryRetriesTotal.Inc()
		q.cache.log.Debug("query retry", "key", q.key.String(), "error", err)
		data, err = q.fetchOnce(ctx)
	}
	if err != nil {
		q.cache.metrics.QueriesTotal.WithLabelValues(q.key.Resource, "error").Inc()
		q.cache.log.Warn("query failed", "key", q.key.String(), "error", err)
		return q.emit(ErrorResult[T](err))
	}

	q.cache.store(q.key, gen, data)
	q.cache.metrics.QueriesTotal.WithLabelValues(q.key.Resource, "success").Inc()
	return q.emit(SuccessResult(data, q.cache.nowFunc()))
}

func (q *Query[T]) fetchOnce(ctx context.Context) (T, error) {
	start := time.Now()
	data, err := q.fetch(ctx)
	q.cache.metrics.RequestDuration.Observe(time.Since(start).Seconds())
	return data, err
}

func (q *Query[T]) emit(r Result[T]) Result[T] {
	if q.Observer != nil {
		q.Observer(r)
	}
	return r
}
