package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation_SuccessInvalidatesOnce(t *testing.T) {
	t.Parallel()

	c := NewCache()
	fetches := 0
	watches := New(c, WatchesKey(), func(context.Context) ([]string, error) {
		fetches++
		if fetches == 1 {
			return []string{"old"}, nil
		}
		return []string{"old", "new"}, nil
	})

	// Prime the cache.
	res := watches.Run(context.Background())
	require.Equal(t, StateSuccess, res.State)
	require.Equal(t, []string{"old"}, res.Data)

	create := NewMutation(c, "watches",
		func(_ context.Context, name string) (string, error) { return name, nil },
		WatchesKey(),
	)

	created, err := create.Do(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "new", created)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Metrics().CacheInvalidations),
		"the watches key must be invalidated exactly once")

	// The next read re-fetches the authoritative list; no manual refresh.
	res = watches.Run(context.Background())
	require.Equal(t, StateSuccess, res.State)
	assert.Equal(t, []string{"old", "new"}, res.Data)
	assert.Equal(t, 2, fetches)
}

func TestMutation_FailureLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	c := NewCache()
	k := WatchesKey()
	require.True(t, c.store(k, c.generation(k), "cached watches"))

	del := NewMutation(c, "watches",
		func(context.Context, int) (struct{}, error) {
			return struct{}{}, errors.New("HTTP 404")
		},
		k,
	)

	_, err := del.Do(context.Background(), 999)
	require.Error(t, err)

	data, _, ok := c.lookup(k)
	require.True(t, ok, "a failed mutation must not invalidate")
	assert.Equal(t, "cached watches", data)
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Metrics().CacheInvalidations))
}

func TestMutation_ConcurrentMutationsAreIndependent(t *testing.T) {
	t.Parallel()

	c := NewCache()
	m := NewMutation(c, "watches",
		func(_ context.Context, n int) (int, error) { return n, nil },
		WatchesKey(),
	)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := m.Do(context.Background(), i)
			assert.NoError(t, err)
			assert.Equal(t, i, out)
		}()
	}
	wg.Wait()

	assert.Equal(t, 8.0, testutil.ToFloat64(c.Metrics().CacheInvalidations))
}
