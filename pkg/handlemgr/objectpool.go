package handlemgr

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/pagedvector"
)

// ObjectPool is handle manager + paged_vector<T> of values + a stored
// default value (spec §3.10, §4.10).
type ObjectPool[Tag any, T any] struct {
	manager *Manager[Tag]
	values  *pagedvector.PagedVector[T]
	def     T
}

// NewObjectPool constructs an object pool whose Release/Acquire reset slots
// to def.
func NewObjectPool[Tag any, T any](def T, opts ...Option[Tag]) *ObjectPool[Tag, T] {
	return &ObjectPool[Tag, T]{
		manager: New[Tag](opts...),
		values:  pagedvector.New[T](),
		def:     def,
	}
}

// Acquire obtains a handle, ensures the value storage covers it, resets the
// slot to the default value, and returns the handle.
func (o *ObjectPool[Tag, T]) Acquire() Handle[Tag] {
	h := o.manager.Acquire()
	idx := int(h.Value())
	if idx >= o.values.Len() {
		o.values.Resize(idx + 1)
	}
	p, _ := o.values.At(idx)
	*p = o.def
	return h
}

// Release resets h's slot to the default value and releases the handle.
// Fails with errs.ErrInvalidArgument if h is not currently valid.
func (o *ObjectPool[Tag, T]) Release(h Handle[Tag]) error {
	if !o.manager.IsValid(h) {
		return fmt.Errorf("%w: release of invalid handle", errs.ErrInvalidArgument)
	}
	idx := int(h.Value())
	p, _ := o.values.At(idx)
	*p = o.def
	return o.manager.Release(h)
}

// Get returns a pointer to h's value unconditionally — spec §4.10: "O(1) by
// h.value", unchecked, so a stale-but-in-range handle reads whatever the
// current occupant of that slot holds (typically the default value, if
// nothing has reacquired it yet).
func (o *ObjectPool[Tag, T]) Get(h Handle[Tag]) (*T, error) {
	idx := int(h.Value())
	return o.values.At(idx)
}

// Set validates h before writing, unlike Get. Fails with
// errs.ErrInvalidArgument if h is not currently valid.
func (o *ObjectPool[Tag, T]) Set(h Handle[Tag], v T) error {
	if !o.manager.IsValid(h) {
		return fmt.Errorf("%w: set on invalid handle", errs.ErrInvalidArgument)
	}
	idx := int(h.Value())
	p, _ := o.values.At(idx)
	*p = v
	return nil
}

// IsValid reports whether h is currently live.
func (o *ObjectPool[Tag, T]) IsValid(h Handle[Tag]) bool { return o.manager.IsValid(h) }

// ResetExpired delegates to the underlying Manager (Discard policy only).
func (o *ObjectPool[Tag, T]) ResetExpired() { o.manager.ResetExpired() }
