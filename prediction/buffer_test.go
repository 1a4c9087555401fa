package prediction

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, capacity int, ticks ...int64) *Buffer[int64] {
	t.Helper()
	b, err := NewBuffer[int64](capacity)
	require.NoError(t, err)
	for _, tick := range ticks {
		require.NoError(t, b.Add(tick, tick*10))
	}
	return b
}

func TestNewBufferRejectsCapacity(t *testing.T) {
	_, err := NewBuffer[int](0)
	assert.Error(t, err)
	_, err = NewBuffer[int](-3)
	assert.Error(t, err)
}

func TestBufferAddAndGet(t *testing.T) {
	b := filled(t, 8, 1, 2, 3, 5)

	v, ok := b.TryGet(2)
	require.True(t, ok)
	assert.EqualValues(t, 20, v)

	_, ok = b.TryGet(4)
	assert.False(t, ok, "gaps are not filled")
	_, ok = b.TryGet(6)
	assert.False(t, ok, "future ticks are not found")

	require.NoError(t, b.Add(3, 99))
	v, _ = b.TryGet(3)
	assert.EqualValues(t, 99, v)
	assert.Equal(t, 4, b.Len(), "replacing a tick does not grow the buffer")

	assert.Error(t, b.Add(4, 40), "inserting into the past is rejected")
	assert.Equal(t, 4, b.Len())
}

func TestBufferEvictsOldest(t *testing.T) {
	b := filled(t, 4)
	var lastOldest int64 = -1
	for tick := int64(1); tick <= 10; tick++ {
		require.NoError(t, b.Add(tick, tick))
		oldest, ok := b.OldestTick()
		require.True(t, ok)
		assert.GreaterOrEqual(t, oldest, lastOldest)
		lastOldest = oldest
	}

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 4, b.Capacity())
	oldest, _ := b.OldestTick()
	newest, _ := b.NewestTick()
	assert.EqualValues(t, 7, oldest)
	assert.EqualValues(t, 10, newest)

	_, ok := b.TryGet(6)
	assert.False(t, ok, "evicted ticks are not found")
	v, ok := b.TryGet(7)
	require.True(t, ok)
	assert.EqualValues(t, 7, v)
}

func TestBufferRange(t *testing.T) {
	b := filled(t, 4, 1, 2, 3, 4, 5, 6)
	assert.Equal(t, []int64{40, 50}, b.Range(4, 5))
	assert.Equal(t, []int64{30, 40, 50, 60}, b.Range(0, 100))
	assert.Empty(t, b.Range(7, 9))
	assert.Empty(t, b.Range(5, 4))
}

func TestBufferLatestAndAll(t *testing.T) {
	b := filled(t, 3)
	_, _, ok := b.Latest()
	assert.False(t, ok)
	_, ok = b.OldestTick()
	assert.False(t, ok)

	b = filled(t, 3, 1, 2, 3, 4)
	tick, v, ok := b.Latest()
	require.True(t, ok)
	assert.EqualValues(t, 4, tick)
	assert.EqualValues(t, 40, v)

	var ticks []int64
	for tick, v := range b.All() {
		ticks = append(ticks, tick)
		assert.Equal(t, tick*10, v)
	}
	assert.Equal(t, []int64{2, 3, 4}, ticks)
}

func TestBufferPruneAndDiscard(t *testing.T) {
	b := filled(t, 8, 1, 2, 3, 4, 5, 6)

	assert.Equal(t, 2, b.PruneBefore(3))
	oldest, _ := b.OldestTick()
	assert.EqualValues(t, 3, oldest)
	assert.Zero(t, b.PruneBefore(1))

	assert.Equal(t, 2, b.DiscardAfter(4))
	newest, _ := b.NewestTick()
	assert.EqualValues(t, 4, newest)

	require.NoError(t, b.Add(5, 500), "discarded ticks can be recorded again")
	v, _ := b.TryGet(5)
	assert.EqualValues(t, 500, v)

	b.Clear()
	assert.Zero(t, b.Len())
	_, ok := b.TryGet(3)
	assert.False(t, ok)
	require.NoError(t, b.Add(1, 1), "a cleared buffer accepts any tick")
}

func TestBufferWrapsAfterPrune(t *testing.T) {
	b := filled(t, 3, 1, 2, 3)
	b.PruneBefore(3)
	for tick := int64(4); tick <= 8; tick++ {
		require.NoError(t, b.Add(tick, tick*10))
	}
	assert.Equal(t, []int64{60, 70, 80}, b.Range(0, 10))
}

func TestBufferConcurrentReaders(t *testing.T) {
	b := filled(t, 64)
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if tick, v, ok := b.Latest(); ok {
					assert.Equal(t, tick*10, v)
				}
			}
		}()
	}
	for tick := int64(0); tick < 1000; tick++ {
		require.NoError(t, b.Add(tick, tick*10))
	}
	wg.Wait()
	assert.Equal(t, 64, b.Len())
}
