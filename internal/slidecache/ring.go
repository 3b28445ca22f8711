// Package slidecache holds decoded slides keyed by their position in the
// slide list, and the table of fetches still in flight.
package slidecache

import "fmt"

// PowerOfTwo is a capacity expressed as its base-2 exponent.
type PowerOfTwo uint

// Value returns 1 << p.
func (p PowerOfTwo) Value() int {
	return 1 << p
}

// MaxExponent bounds the capacity of a ring.
const MaxExponent PowerOfTwo = 16

// Ring is a fixed-capacity cache addressed by index modulo its capacity.
// There is no eviction policy: storing index i overwrites whatever index
// shared its slot. A slot may therefore hold a value for a different index,
// and callers must check the identity stored in the value before trusting it.
type Ring[T any] struct {
	mask  int
	slots []slot[T]
}

type slot[T any] struct {
	value T
	ok    bool
}

// New returns an empty ring with capacity exp.Value().
func New[T any](exp PowerOfTwo) *Ring[T] {
	if exp > MaxExponent {
		panic(fmt.Sprintf("slidecache: capacity 2^%d exceeds 2^%d", exp, MaxExponent))
	}
	n := exp.Value()
	return &Ring[T]{mask: n - 1, slots: make([]slot[T], n)}
}

// Cap returns the number of slots.
func (r *Ring[T]) Cap() int {
	return len(r.slots)
}

// Slot returns the slot number index maps to.
func (r *Ring[T]) Slot(index int) int {
	return index & r.mask
}

// Get returns the value in the slot index maps to, whichever index stored it.
func (r *Ring[T]) Get(index int) (T, bool) {
	s := r.slots[r.Slot(index)]
	return s.value, s.ok
}

// Put stores v in the slot index maps to.
func (r *Ring[T]) Put(index int, v T) {
	r.slots[r.Slot(index)] = slot[T]{value: v, ok: true}
}

// Clear empties every slot.
func (r *Ring[T]) Clear() {
	clear(r.slots)
}

// Len returns the number of occupied slots.
func (r *Ring[T]) Len() int {
	n := 0
	for _, s := range r.slots {
		if s.ok {
			n++
		}
	}
	return n
}

// CheckRadius verifies that prefetching radius slides on each side of the
// current one cannot make two of them share a slot.
func CheckRadius(capacity, radius int) error {
	if radius < 0 {
		return fmt.Errorf("prefetch radius must not be negative, got %d", radius)
	}
	if capacity <= 2*radius {
		return fmt.Errorf("cache capacity %d must exceed twice the prefetch radius %d", capacity, radius)
	}
	return nil
}
