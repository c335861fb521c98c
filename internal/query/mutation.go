package query

import (
	"context"

	"github.com/google/uuid"
)

// MutationFunc performs a write against the API and returns the
// authoritative entity from the response.
type MutationFunc[P, T any] func(ctx context.Context, payload P) (T, error)

// Mutation is a write operation paired with the cache keys it invalidates
// on success. Mutations never retry automatically, and a failure leaves
// the cache untouched: there is no optimistic update to roll back.
//
// Each invocation carries its own identity, so multiple mutations may be
// in flight independently.
type Mutation[P, T any] struct {
	cache       *Cache
	resource    string
	run         MutationFunc[P, T]
	invalidates []Key
}

// NewMutation creates a mutation on resource that invalidates the given
// keys after each successful run.
func NewMutation[P, T any](
	cache *Cache,
	resource string,
	run MutationFunc[P, T],
	invalidates ...Key,
) *Mutation[P, T] {
	return &Mutation[P, T]{
		cache:       cache,
		resource:    resource,
		run:         run,
		invalidates: invalidates,
	}
}

// Do executes the mutation. On success the configured keys are invalidated
// exactly once so the next read re-fetches the authoritative state.
func (m *Mutation[P, T]) Do(ctx context.Context, payload P) (T, error) {
	id := uuid.New()
	log := m.cache.log.With("mutation_id", id.String(), "resource", m.resource)

	out, err := m.run(ctx, payload)
	if err != nil {
		m.cache.metrics.MutationsTotal.WithLabelValues(m.resource, "error").Inc()
		log.Warn("mutation failed", "error", err)
		var zero T
		return zero, err
	}

	for _, k := range m.invalidates {
		m.cache.Invalidate(k)
	}
	m.cache.metrics.MutationsTotal.WithLabelValues(m.resource, "success").Inc()
	log.Debug("mutation applied", "invalidated", len(m.invalidates))
	return out, nil
}
