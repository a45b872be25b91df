// Package ring implements ring (spec §3.6, §4.5): a fixed-capacity circular
// buffer. Capacity is fixed after construction; no reallocation ever
// happens.
//
// © 2025 ccl authors. MIT License.
package ring

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
)

// Ring is a fixed-capacity double-ended circular buffer.
type Ring[T any] struct {
	buf       []T
	readIndex int
	size      int
}

// New constructs a ring with the given fixed capacity. Fails with
// errs.ErrInvalidArgument if capacity is zero.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: ring capacity must be > 0", errs.ErrInvalidArgument)
	}
	return &Ring[T]{buf: make([]T, capacity)}, nil
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Len returns the current element count.
func (r *Ring[T]) Len() int { return r.size }

// IsFull reports whether the ring is at capacity.
func (r *Ring[T]) IsFull() bool { return r.size == len(r.buf) }

// IsEmpty reports whether the ring holds no elements.
func (r *Ring[T]) IsEmpty() bool { return r.size == 0 }

func (r *Ring[T]) indexOf(logical int) int {
	return (r.readIndex + logical) % len(r.buf)
}

// EnqueueBack appends val at the logical back. Fails with
// errs.ErrOutOfRange when full.
func (r *Ring[T]) EnqueueBack(val T) error {
	if r.IsFull() {
		return fmt.Errorf("%w: ring at capacity %d", errs.ErrOutOfRange, len(r.buf))
	}
	r.buf[r.indexOf(r.size)] = val
	r.size++
	return nil
}

// EnqueueFront prepends val at the logical front. Fails with
// errs.ErrOutOfRange when full.
func (r *Ring[T]) EnqueueFront(val T) error {
	if r.IsFull() {
		return fmt.Errorf("%w: ring at capacity %d", errs.ErrOutOfRange, len(r.buf))
	}
	r.readIndex = (r.readIndex - 1 + len(r.buf)) % len(r.buf)
	r.buf[r.readIndex] = val
	r.size++
	return nil
}

// DequeueFront removes and returns the logical front element. Fails with
// errs.ErrOutOfRange when empty.
func (r *Ring[T]) DequeueFront() (T, error) {
	var zero T
	if r.IsEmpty() {
		return zero, fmt.Errorf("%w: dequeue_front on empty ring", errs.ErrOutOfRange)
	}
	v := r.buf[r.readIndex]
	r.buf[r.readIndex] = zero
	r.readIndex = (r.readIndex + 1) % len(r.buf)
	r.size--
	return v, nil
}

// DequeueBack removes and returns the logical back element. Fails with
// errs.ErrOutOfRange when empty.
func (r *Ring[T]) DequeueBack() (T, error) {
	var zero T
	if r.IsEmpty() {
		return zero, fmt.Errorf("%w: dequeue_back on empty ring", errs.ErrOutOfRange)
	}
	idx := r.indexOf(r.size - 1)
	v := r.buf[idx]
	r.buf[idx] = zero
	r.size--
	return v, nil
}

// At returns the i-th logical element (0-indexed from the front). Fails with
// errs.ErrOutOfRange if i is out of range.
func (r *Ring[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= r.size {
		return zero, fmt.Errorf("%w: index %d out of [0,%d)", errs.ErrOutOfRange, i, r.size)
	}
	return r.buf[r.indexOf(i)], nil
}
