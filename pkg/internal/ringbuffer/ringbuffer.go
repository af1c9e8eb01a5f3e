// Package ringbuffer provides a fixed-capacity single-producer/single-consumer queue.
//
// The producer owns the tail index and the consumer owns the head index; each
// index has exactly one writer, so no lock is taken on either side.
package ringbuffer

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// DefaultCapacity matches the reference sample queue.
const DefaultCapacity = 512

// ErrCapacity is returned for a capacity that is not a positive power of two.
var ErrCapacity = errors.New("ringbuffer: capacity must be a positive power of two")

// Ring is a lock-free SPSC queue of T.
type Ring[T any] struct {
	buf  []T
	mask uint64

	_    [56]byte
	head atomic.Uint64 // consumer
	_    [56]byte
	tail atomic.Uint64 // producer
}

// New allocates a ring with the given capacity.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrCapacity, capacity)
	}
	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// MustNew is New that panics on an invalid capacity.
func MustNew[T any](capacity int) *Ring[T] {
	r, err := New[T](capacity)
	if err != nil {
		panic(err)
	}
	return r
}

// Push appends v. It returns false, discarding v, when the ring is full.
// Producer side only.
func (r *Ring[T]) Push(v T) bool {
	tail := r.tail.Load()
	if tail-r.head.Load() == uint64(len(r.buf)) {
		return false
	}
	r.buf[tail&r.mask] = v
	r.tail.Store(tail + 1)
	return true
}

// Pop removes the oldest entry. ok is false when the ring is empty.
// Consumer side only.
func (r *Ring[T]) Pop() (v T, ok bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return v, false
	}
	v = r.buf[head&r.mask]
	r.head.Store(head + 1)
	return v, true
}

// Peek returns the oldest entry without removing it. Consumer side only.
func (r *Ring[T]) Peek() (v T, ok bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return v, false
	}
	return r.buf[head&r.mask], true
}

// Len returns the number of queued entries.
func (r *Ring[T]) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Free returns the number of entries that can be pushed before the ring is full.
func (r *Ring[T]) Free() int {
	return len(r.buf) - r.Len()
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Reset discards every queued entry. It moves the head up to the tail and
// therefore belongs to the consumer side.
func (r *Ring[T]) Reset() {
	r.head.Store(r.tail.Load())
}
