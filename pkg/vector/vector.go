// Package vector implements vector (spec §3.4, §4.2): a contiguous dynamic
// sequence with power-of-two growth. Go slices already provide amortized
// growth, but CCL needs an exact, documented contract — a configurable
// minimum capacity, reserve() that never shrinks, and the documented
// iterator/pointer invalidation rule (§4.2: "Reallocation invalidates all
// iterators and pointers into the vector") — so the backing array is
// managed explicitly instead of relying on append's undocumented growth
// factor.
//
// © 2025 ccl authors. MIT License.
package vector

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/internal/unsafehelpers"
)

// DefaultMinimumCapacity is used when a Vector is constructed with New.
const DefaultMinimumCapacity = 4

// Vector is a growable, contiguous sequence of T.
type Vector[T any] struct {
	data       []T
	minCap     int
}

// New constructs an empty vector with the default minimum capacity.
func New[T any]() *Vector[T] { return NewWithMinCapacity[T](DefaultMinimumCapacity) }

// NewWithMinCapacity constructs an empty vector whose capacity never drops
// below minCap once grown.
func NewWithMinCapacity[T any](minCap int) *Vector[T] {
	if minCap < 1 {
		minCap = 1
	}
	return &Vector[T]{minCap: minCap}
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len returns the number of constructed elements.
func (v *Vector[T]) Len() int { return len(v.data) }

// Cap returns the current backing-array capacity.
func (v *Vector[T]) Cap() int { return cap(v.data) }

// Reserve ensures capacity is at least n, per §4.2: if n > capacity the new
// capacity is the smallest power of two >= n and >= minCap; existing
// elements are preserved. No-op if n <= capacity.
func (v *Vector[T]) Reserve(n int) {
	if n <= cap(v.data) {
		return
	}
	newCap := nextPow2(n)
	if newCap < v.minCap {
		newCap = v.minCap
	}
	grown := make([]T, len(v.data), newCap)
	copy(grown, v.data)
	v.data = grown
}

// At returns a pointer to the element at i. The pointer is invalidated by
// any subsequent operation that may reallocate (Reserve/PushBack/Insert
// growth, Resize-grow).
func (v *Vector[T]) At(i int) (*T, error) {
	if i < 0 || i >= len(v.data) {
		return nil, fmt.Errorf("%w: index %d out of [0,%d)", errs.ErrOutOfRange, i, len(v.data))
	}
	return &v.data[i], nil
}

// Slice exposes the live elements directly; do not retain it across a
// mutating call. Built over PtrSlice rather than a plain re-slice of v.data
// so the same zero-copy path serves Ptr, which needs a view starting
// somewhere other than index 0.
func (v *Vector[T]) Slice() []T {
	if len(v.data) == 0 {
		return nil
	}
	return unsafehelpers.PtrSlice(&v.data[0], len(v.data))
}

// Ptr exposes the live elements from i onward as a zero-copy view, for
// callers handed only a base index (e.g. a vector used as a flat backing
// store for several logical sub-ranges). Do not retain it across a mutating
// call.
func (v *Vector[T]) Ptr(i int) ([]T, error) {
	if i < 0 || i > len(v.data) {
		return nil, fmt.Errorf("%w: index %d out of [0,%d]", errs.ErrOutOfRange, i, len(v.data))
	}
	if i == len(v.data) {
		return nil, nil
	}
	return unsafehelpers.PtrSlice(&v.data[i], len(v.data)-i), nil
}

// PushBack appends v at the end, reserving more capacity if full.
func (v *Vector[T]) PushBack(val T) {
	if len(v.data) == cap(v.data) {
		v.Reserve(len(v.data) + 1)
	}
	v.data = append(v.data, val)
}

// Insert places val at pos, shifting the suffix right by one. Fails with
// errs.ErrOutOfRange if pos is outside [0, Len()].
func (v *Vector[T]) Insert(pos int, val T) error {
	if pos < 0 || pos > len(v.data) {
		return fmt.Errorf("%w: insert position %d out of [0,%d]", errs.ErrOutOfRange, pos, len(v.data))
	}
	if len(v.data) == cap(v.data) {
		v.Reserve(len(v.data) + 1)
	}
	var zero T
	v.data = append(v.data, zero)
	copy(v.data[pos+1:], v.data[pos:len(v.data)-1])
	v.data[pos] = val
	return nil
}

// InsertRange inserts a range of values starting at pos.
func (v *Vector[T]) InsertRange(pos int, vals []T) error {
	if pos < 0 || pos > len(v.data) {
		return fmt.Errorf("%w: insert position %d out of [0,%d]", errs.ErrOutOfRange, pos, len(v.data))
	}
	if len(vals) == 0 {
		return nil
	}
	v.Reserve(len(v.data) + len(vals))
	newLen := len(v.data) + len(vals)
	v.data = v.data[:newLen]
	copy(v.data[pos+len(vals):], v.data[pos:newLen-len(vals)])
	copy(v.data[pos:pos+len(vals)], vals)
	return nil
}

// Erase removes elements in [a, b), moving the suffix down. Fails with
// errs.ErrOutOfRange if either bound is outside [0, Len()] or a > b.
func (v *Vector[T]) Erase(a, b int) error {
	if a < 0 || b > len(v.data) || a > b {
		return fmt.Errorf("%w: erase range [%d,%d) invalid for len %d", errs.ErrOutOfRange, a, b, len(v.data))
	}
	n := copy(v.data[a:], v.data[b:])
	var zero T
	for i := a + n; i < len(v.data); i++ {
		v.data[i] = zero
	}
	v.data = v.data[:a+n]
	return nil
}

// Resize grows or shrinks to n elements. Growing default-constructs the new
// tail; shrinking destroys (zeroes) the suffix.
func (v *Vector[T]) Resize(n int) {
	if n <= len(v.data) {
		var zero T
		for i := n; i < len(v.data); i++ {
			v.data[i] = zero
		}
		v.data = v.data[:n]
		return
	}
	v.Reserve(n)
	v.data = v.data[:n]
}

// ResizeWithValue grows to n elements, filling the new tail with copies of
// val; shrinks exactly like Resize.
func (v *Vector[T]) ResizeWithValue(n int, val T) {
	old := len(v.data)
	v.Resize(n)
	for i := old; i < n; i++ {
		v.data[i] = val
	}
}

// Clear destroys all elements, leaving capacity unchanged.
func (v *Vector[T]) Clear() {
	var zero T
	for i := range v.data {
		v.data[i] = zero
	}
	v.data = v.data[:0]
}

// Destroy clears and releases storage.
func (v *Vector[T]) Destroy() {
	v.data = nil
}
