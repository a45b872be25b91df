// Package packed implements packed_integer (spec §3.2, §4.1): two unsigned
// sub-values sharing one machine word with a configurable split point, and
// the versioned_handle built on top of it.
//
// © 2025 ccl authors. MIT License.
package packed

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
)

// Unsigned restricts Integer[T] to the word types the source supports.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Integer splits a T into a high part (word_bits - LowBits wide) and a low
// part (LowBits wide). LowBits is supplied at construction rather than as a
// type parameter because Go generics cannot parameterize over an integer
// constant.
type Integer[T Unsigned] struct {
	value   T
	lowBits uint8
}

func wordBits[T Unsigned]() uint8 {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	default:
		return 64
	}
}

// LowMax returns the maximum value representable in the low field.
func LowMax[T Unsigned](lowBits uint8) T {
	if lowBits == 0 {
		return 0
	}
	return T(1)<<lowBits - 1
}

// HighMax returns the maximum value representable in the high field.
func HighMax[T Unsigned](lowBits uint8) T {
	hb := wordBits[T]() - lowBits
	if hb == 0 {
		return 0
	}
	return T(1)<<hb - 1
}

// Make constructs an Integer from a (high, low) pair. Fails with
// errs.ErrOutOfRange if either field does not fit in its allotted width.
func Make[T Unsigned](high, low T, lowBits uint8) (Integer[T], error) {
	if low > LowMax[T](lowBits) {
		return Integer[T]{}, fmt.Errorf("%w: low value %v exceeds %d-bit field", errs.ErrOutOfRange, low, lowBits)
	}
	if high > HighMax[T](lowBits) {
		return Integer[T]{}, fmt.Errorf("%w: high value %v exceeds %d-bit field", errs.ErrOutOfRange, high, wordBits[T]()-lowBits)
	}
	return Integer[T]{value: (high << lowBits) | low, lowBits: lowBits}, nil
}

// FromRaw wraps an already-packed raw word, trusting the caller.
func FromRaw[T Unsigned](raw T, lowBits uint8) Integer[T] {
	return Integer[T]{value: raw, lowBits: lowBits}
}

// High returns the high (upper) field.
func (p Integer[T]) High() T { return p.value >> p.lowBits }

// Low returns the low field.
func (p Integer[T]) Low() T { return p.value & LowMax[T](p.lowBits) }

// Get returns the raw packed word.
func (p Integer[T]) Get() T { return p.value }

// LowBits returns the configured split point.
func (p Integer[T]) LowBits() uint8 { return p.lowBits }

// Equal compares raw words.
func (p Integer[T]) Equal(o Integer[T]) bool { return p.value == o.value }
