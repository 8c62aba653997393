package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
)

func newTestPool() (*vflow.CellPool[*testCell], *testAdapter) {
	a := newTestAdapter(0, 0)
	return vflow.NewCellPool(a.CreateCell), a
}

func TestCellPoolReusesReleasedCell(t *testing.T) {
	pool, _ := newTestPool()
	require.NoError(t, pool.Reserve(3))
	require.Equal(t, 3, pool.Created())

	c7, err := pool.Acquire(7)
	require.NoError(t, err)
	c2, err := pool.Acquire(2)
	require.NoError(t, err)
	require.NotSame(t, c7, c2)

	pool.Release(c7)
	assert.Equal(t, -1, c7.Index())
	assert.False(t, c7.Visible())

	c9, err := pool.Acquire(9)
	require.NoError(t, err)
	assert.Same(t, c7, c9, "most recently released cell is rebound")
	assert.Equal(t, 9, c9.Index())
	assert.Equal(t, 3, pool.Created(), "no new cell built")
}

func TestCellPoolAcquireBoundIndex(t *testing.T) {
	pool, _ := newTestPool()

	c, err := pool.Acquire(4)
	require.NoError(t, err)
	again, err := pool.Acquire(4)
	require.NoError(t, err)

	assert.Same(t, c, again)
	assert.Equal(t, 1, pool.Len())
	assert.Equal(t, 1, pool.BoundLen())
	assert.Equal(t, 2, c.updates)
}

func TestCellPoolFactoryFailure(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		pool, a := newTestPool()
		a.fail = map[int]bool{0: true}

		_, err := pool.Acquire(0)
		require.ErrorIs(t, err, vflow.ErrCellFactory)
		require.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, pool.Len())
		assert.Equal(t, 0, pool.BoundLen())

		c, err := pool.Acquire(0)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Index())
	})

	t.Run("panic", func(t *testing.T) {
		pool := vflow.NewCellPool(func() (*testCell, error) {
			panic("factory exploded")
		})

		_, err := pool.Acquire(1)
		require.ErrorIs(t, err, vflow.ErrCellFactory)
		assert.Contains(t, err.Error(), "factory exploded")
		assert.Equal(t, 0, pool.Len())
	})

	t.Run("no factory", func(t *testing.T) {
		pool := vflow.NewCellPool[*testCell](nil)
		_, err := pool.Acquire(0)
		require.ErrorIs(t, err, vflow.ErrCellFactory)
	})
}

func TestCellPoolReleaseUnknownCell(t *testing.T) {
	pool, _ := newTestPool()
	c, err := pool.Acquire(1)
	require.NoError(t, err)

	pool.Release(&testCell{})
	assert.Equal(t, 1, pool.BoundLen())
	assert.Equal(t, 0, pool.FreeLen())

	pool.Release(c)
	pool.Release(c)
	assert.Equal(t, 1, pool.FreeLen(), "double release is a no-op")
}

func TestCellPoolPrune(t *testing.T) {
	pool, a := newTestPool()
	require.NoError(t, pool.Reserve(5))

	removed := pool.Prune(2)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 2, pool.FreeLen())
	assert.Equal(t, 2, pool.Len())

	// oldest free cells go first
	for i, c := range a.created {
		assert.Equal(t, i < 3, c.disposed, "cell %d", i)
	}

	assert.Equal(t, 0, pool.Prune(5))
}

func TestCellPoolReconfigureAll(t *testing.T) {
	pool, _ := newTestPool()
	c0, _ := pool.Acquire(0)
	c1, _ := pool.Acquire(1)

	pool.ReconfigureAll()
	pool.ReconfigureAll()

	assert.Equal(t, 0, c0.Index())
	assert.Equal(t, 1, c1.Index())
	assert.Equal(t, 3, c0.updates)
	assert.Equal(t, 3, c1.updates)
	assert.Equal(t, 2, pool.Created())
}

func TestCellPoolRecreateAll(t *testing.T) {
	pool, a := newTestPool()
	_, _ = pool.Acquire(0)
	require.NoError(t, pool.Reserve(2))

	pool.RecreateAll()
	assert.Equal(t, 0, pool.Len())
	assert.Equal(t, 0, pool.BoundLen())
	for _, c := range a.created {
		assert.True(t, c.disposed)
	}

	var built int
	pool.SetFactory(func() (*testCell, error) {
		built++
		return &testCell{}, nil
	})
	_, err := pool.Acquire(3)
	require.NoError(t, err)
	assert.Equal(t, 1, built)

	var seen int
	pool.Each(func(*testCell) { seen++ })
	assert.Equal(t, 1, seen)
}
