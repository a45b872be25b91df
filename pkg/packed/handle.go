package packed

import (
	"fmt"
)

// DefaultValueWidth is the HANDLE_VALUE_WIDTH knob from spec §6: bits
// reserved for the handle's value/index field; the remaining bits of T hold
// the generation.
const DefaultValueWidth uint8 = 16

// Handle is versioned_handle<Tag> (spec §3.2, §4.1): a packed (generation,
// value) pair. Tag is a phantom type parameter distinguishing handle
// families that happen to share an underlying word type (an EntityHandle
// and a PoolHandle[Widget] must not be assignable to one another) without
// adding any runtime cost — Tag never appears in the struct layout.
type Handle[Tag any, T Unsigned] struct {
	raw Integer[T]
}

// Invalid returns the sentinel "invalid" handle: all-ones in the value
// field, generation zero.
func Invalid[Tag any, T Unsigned](valueWidth uint8) Handle[Tag, T] {
	v := LowMax[T](valueWidth)
	raw, _ := Make[T](0, v, valueWidth)
	return Handle[Tag, T]{raw: raw}
}

// New constructs a handle from a generation and a value. Fails with
// errs.ErrOutOfRange if either overflows its field (same rule as Make).
func New[Tag any, T Unsigned](generation, value T, valueWidth uint8) (Handle[Tag, T], error) {
	raw, err := Make[T](generation, value, valueWidth)
	if err != nil {
		return Handle[Tag, T]{}, fmt.Errorf("packed: invalid handle fields: %w", err)
	}
	return Handle[Tag, T]{raw: raw}, nil
}

// HandleFromRaw wraps an already-packed raw word as a handle, trusting the
// caller.
func HandleFromRaw[Tag any, T Unsigned](raw T, valueWidth uint8) Handle[Tag, T] {
	return Handle[Tag, T]{raw: FromRaw[T](raw, valueWidth)}
}

// Generation returns the high (generation) field.
func (h Handle[Tag, T]) Generation() T { return h.raw.High() }

// Value returns the low (index) field.
func (h Handle[Tag, T]) Value() T { return h.raw.Low() }

// Raw returns the packed word.
func (h Handle[Tag, T]) Raw() T { return h.raw.Get() }

// IsNull reports whether Value() equals the all-ones sentinel for its field
// width.
func (h Handle[Tag, T]) IsNull() bool {
	return h.Value() == LowMax[T](h.raw.LowBits())
}

// Equal compares raw words: two handles are equal iff their raw words are
// equal (generation AND value must match).
func (h Handle[Tag, T]) Equal(o Handle[Tag, T]) bool { return h.raw.Get() == o.raw.Get() }

// Less implements value-only ordering (spec §4.1): comparisons other than
// equality look only at Value(), ignoring generation.
func (h Handle[Tag, T]) Less(o Handle[Tag, T]) bool { return h.Value() < o.Value() }

// Greater is the value-only counterpart to Less.
func (h Handle[Tag, T]) Greater(o Handle[Tag, T]) bool { return h.Value() > o.Value() }

// LessOrEqual mixes raw equality with value ordering, deliberately, per the
// source: (a.raw == b.raw) || a.value() < b.value(). Spec §9.2 flags this as
// dubious but specifies it should be carried forward as-is.
func (h Handle[Tag, T]) LessOrEqual(o Handle[Tag, T]) bool {
	return h.Equal(o) || h.Value() < o.Value()
}

// GreaterOrEqual is the mixed-semantics counterpart to LessOrEqual.
func (h Handle[Tag, T]) GreaterOrEqual(o Handle[Tag, T]) bool {
	return h.Equal(o) || h.Value() > o.Value()
}

/* -------------------------------------------------------------------------
   Tag casting
   ------------------------------------------------------------------------- */

// DerivesFrom marks a handle Tag as being a logical subtype of Base. Only
// tags implementing this (for a given Base) may be StaticCast.
type DerivesFrom[Base any] interface {
	BaseTag() Base
}

// StaticCast converts Handle[From,T] to Handle[To,T] when From declares
// itself a DerivesFrom[To]. Both generation and value are preserved exactly.
func StaticCast[From DerivesFrom[To], To any, T Unsigned](h Handle[From, T]) Handle[To, T] {
	return Handle[To, T]{raw: h.raw}
}

// Reinterpret converts Handle[From,T] to Handle[To,T] with no tag
// relationship required — an unchecked reinterpret-cast between handle tags.
// Generation/value are preserved; it is the caller's responsibility that
// reinterpreting as To makes sense.
func Reinterpret[To, From any, T Unsigned](h Handle[From, T]) Handle[To, T] {
	return Handle[To, T]{raw: h.raw}
}
