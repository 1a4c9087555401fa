package prediction

import (
	"iter"
	"sort"
	"sync"

	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

type entry[T any] struct {
	tick  int64
	value T
}

// Buffer is a fixed-capacity history of values indexed by tick. Ticks are kept in ascending order
// and a tick maps to at most one value. Adding to a full buffer evicts the oldest tick. A single
// goroutine may write while others read.
type Buffer[T any] struct {
	mu    sync.RWMutex
	items []entry[T]
	head  int // Index of the oldest entry
	size  int
}

// NewBuffer returns an empty buffer holding at most capacity ticks.
func NewBuffer[T any](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, oerror.New(game.ErrorInvalidCapacity, capacity)
	}
	return &Buffer[T]{items: make([]entry[T], capacity)}, nil
}

// at returns the entry at logical position index (0 = oldest).
func (b *Buffer[T]) at(index int) *entry[T] {
	return &b.items[(b.head+index)%len(b.items)]
}

// search returns the logical position of the first entry with a tick >= tick.
func (b *Buffer[T]) search(tick int64) int {
	return sort.Search(b.size, func(i int) bool {
		return b.at(i).tick >= tick
	})
}

// Add stores value at tick. A tick that is already present is replaced. A tick newer than every
// stored tick is appended, evicting the oldest tick if the buffer is full. Inserting an absent tick
// between stored ticks is an error.
func (b *Buffer[T]) Add(tick int64, value T) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.size > 0 {
		newest := b.at(b.size - 1).tick
		if tick <= newest {
			i := b.search(tick)
			if i < b.size && b.at(i).tick == tick {
				b.at(i).value = value
				return nil
			}
			return oerror.New(game.ErrorTickOutOfOrder, tick, newest)
		}
	}

	if b.size == len(b.items) {
		b.items[b.head] = entry[T]{}
		b.head = (b.head + 1) % len(b.items)
		b.size--
	}
	*b.at(b.size) = entry[T]{tick: tick, value: value}
	b.size++
	return nil
}

// TryGet returns the value stored at tick. Evicted and future ticks are not found.
func (b *Buffer[T]) TryGet(tick int64) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.search(tick)
	if i < b.size && b.at(i).tick == tick {
		return b.at(i).value, true
	}
	var zero T
	return zero, false
}

// OldestTick returns the oldest stored tick.
func (b *Buffer[T]) OldestTick() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.size == 0 {
		return 0, false
	}
	return b.at(0).tick, true
}

// NewestTick returns the newest stored tick.
func (b *Buffer[T]) NewestTick() (int64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.size == 0 {
		return 0, false
	}
	return b.at(b.size - 1).tick, true
}

// Latest returns the newest stored tick and its value.
func (b *Buffer[T]) Latest() (int64, T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.size == 0 {
		var zero T
		return 0, zero, false
	}
	e := b.at(b.size - 1)
	return e.tick, e.value, true
}

// Range returns the values stored between from and to inclusive, oldest first.
func (b *Buffer[T]) Range(from, to int64) []T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if from > to {
		return nil
	}
	var out []T
	for i := b.search(from); i < b.size; i++ {
		e := b.at(i)
		if e.tick > to {
			break
		}
		out = append(out, e.value)
	}
	return out
}

// All iterates over a copy of the stored ticks and values, oldest first.
func (b *Buffer[T]) All() iter.Seq2[int64, T] {
	b.mu.RLock()
	snapshot := make([]entry[T], b.size)
	for i := range b.size {
		snapshot[i] = *b.at(i)
	}
	b.mu.RUnlock()

	return func(yield func(int64, T) bool) {
		for _, e := range snapshot {
			if !yield(e.tick, e.value) {
				return
			}
		}
	}
}

// PruneBefore removes every tick older than tick and returns how many were removed.
func (b *Buffer[T]) PruneBefore(tick int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := b.search(tick)
	for i := 0; i < n; i++ {
		*b.at(i) = entry[T]{}
	}
	b.head = (b.head + n) % len(b.items)
	b.size -= n
	return n
}

// DiscardAfter removes every tick newer than tick and returns how many were removed.
func (b *Buffer[T]) DiscardAfter(tick int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	keep := b.search(tick + 1)
	n := b.size - keep
	for i := keep; i < b.size; i++ {
		*b.at(i) = entry[T]{}
	}
	b.size = keep
	return n
}

// Len returns the number of stored ticks.
func (b *Buffer[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Capacity returns the maximum number of ticks the buffer holds.
func (b *Buffer[T]) Capacity() int {
	return len(b.items)
}

// Clear removes every tick.
func (b *Buffer[T]) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.items)
	b.head, b.size = 0, 0
}
