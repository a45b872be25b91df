// Package deque implements deque (spec §3.6, §4.4): a double-ended sequence
// over one contiguous buffer, with two reset/growth policies (center, for
// deque use; begin, for queue use) sharing the same (first, last, capacity)
// representation.
//
// © 2025 ccl authors. MIT License.
package deque

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
)

// DefaultMinimumCapacity floors the backing buffer's capacity once grown,
// matching pkg/vector's own minimum-capacity floor.
const DefaultMinimumCapacity = 4

// Policy selects the reset/growth behavior.
type Policy uint8

const (
	// PolicyCenter resets first==last to capacity/2 and grows symmetrically
	// (deque use).
	PolicyCenter Policy = iota
	// PolicyBegin resets first==last to 0 (queue use).
	PolicyBegin
)

// Deque is a double-ended sequence of T.
type Deque[T any] struct {
	buf    []T
	first  int
	last   int
	policy Policy
}

// New constructs an empty deque with the given reset/growth policy.
func New[T any](policy Policy) *Deque[T] {
	return &Deque[T]{policy: policy}
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

// Len returns the number of live elements.
func (d *Deque[T]) Len() int { return d.last - d.first }

// capacityFront returns free slots before first.
func (d *Deque[T]) capacityFront() int { return d.first }

// capacityBack returns free slots after last.
func (d *Deque[T]) capacityBack() int { return cap(d.buf) - d.last }

func (d *Deque[T]) resetAnchor() int {
	if d.policy == PolicyCenter {
		return cap(d.buf) / 2
	}
	return 0
}

func (d *Deque[T]) reset() {
	a := d.resetAnchor()
	d.first, d.last = a, a
}

// reserve grows the buffer to at least n total capacity, rounding up to the
// next power of two with a DefaultMinimumCapacity floor so a push that
// triggers growth always leaves slack on both ends, not just exactly enough
// room for the element being pushed. When center is true, existing elements
// are relocated to the middle of the new buffer (center policy growth);
// otherwise they are aligned to 0 (begin policy growth).
func (d *Deque[T]) reserve(n int, center bool) {
	if n <= cap(d.buf) {
		return
	}
	newCap := nextPow2(n)
	if newCap < DefaultMinimumCapacity {
		newCap = DefaultMinimumCapacity
	}
	grown := make([]T, newCap)
	sz := d.Len()
	var newFirst int
	if center {
		// (newCap/2) - (sz/2), not (newCap-sz)/2: at every doubling boundary
		// (sz == newCap-1) the latter rounds down to zero front slack, which
		// leaves no room for the push that triggered this reserve in the
		// first place. This formula always leaves at least one free front
		// slot whenever newCap > sz.
		newFirst = newCap/2 - sz/2
	} else {
		newFirst = 0
	}
	copy(grown[newFirst:newFirst+sz], d.buf[d.first:d.last])
	d.buf = grown
	d.first = newFirst
	d.last = newFirst + sz
}

// At returns a pointer to the i-th live element (0-indexed from front).
func (d *Deque[T]) At(i int) (*T, error) {
	if i < 0 || i >= d.Len() {
		return nil, fmt.Errorf("%w: index %d out of [0,%d)", errs.ErrOutOfRange, i, d.Len())
	}
	return &d.buf[d.first+i], nil
}

// PushBack appends val at the back, reserving capacity without re-centering
// when full (spec §4.4).
func (d *Deque[T]) PushBack(val T) {
	if d.capacityBack() == 0 {
		d.reserve(cap(d.buf)+1, false)
	}
	d.buf[d.last] = val
	d.last++
}

// PushFront prepends val at the front, re-centering on growth (spec §4.4).
func (d *Deque[T]) PushFront(val T) {
	if d.capacityFront() == 0 {
		d.reserve(cap(d.buf)+1, true)
	}
	d.first--
	if d.first < 0 {
		d.first = 0
	}
	d.buf[d.first] = val
}

// PopFront removes and returns the front element. Fails with
// errs.ErrOutOfRange when empty.
func (d *Deque[T]) PopFront() (T, error) {
	var zero T
	if d.Len() == 0 {
		return zero, fmt.Errorf("%w: pop_front on empty deque", errs.ErrOutOfRange)
	}
	v := d.buf[d.first]
	d.buf[d.first] = zero
	d.first++
	if d.Len() == 0 {
		d.reset()
	}
	return v, nil
}

// PopBack removes and returns the back element. Fails with
// errs.ErrOutOfRange when empty.
func (d *Deque[T]) PopBack() (T, error) {
	var zero T
	if d.Len() == 0 {
		return zero, fmt.Errorf("%w: pop_back on empty deque", errs.ErrOutOfRange)
	}
	d.last--
	v := d.buf[d.last]
	d.buf[d.last] = zero
	if d.Len() == 0 {
		d.reset()
	}
	return v, nil
}

// Front returns the front element. Fails with errs.ErrOutOfRange when empty.
func (d *Deque[T]) Front() (T, error) {
	var zero T
	if d.Len() == 0 {
		return zero, fmt.Errorf("%w: front on empty deque", errs.ErrOutOfRange)
	}
	return d.buf[d.first], nil
}

// Back returns the back element. Fails with errs.ErrOutOfRange when empty.
func (d *Deque[T]) Back() (T, error) {
	var zero T
	if d.Len() == 0 {
		return zero, fmt.Errorf("%w: back on empty deque", errs.ErrOutOfRange)
	}
	return d.buf[d.last-1], nil
}

// First exposes the raw front index, mainly for tests asserting the reset
// invariant (spec §8.1 "Deque reset").
func (d *Deque[T]) First() int { return d.first }

// Last exposes the raw back index (one past the final live element).
func (d *Deque[T]) Last() int { return d.last }

// Cap returns the current backing capacity.
func (d *Deque[T]) Cap() int { return cap(d.buf) }
