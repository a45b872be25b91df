// Package pagedvector implements paged_vector (spec §3.5, §4.3): a sequence
// over fixed-size pages that guarantees pointer stability for any element
// whose logical index is unaffected by a mutation — the reason it exists
// beside package vector, whose Reserve may relocate everything.
//
// © 2025 ccl authors. MIT License.
package pagedvector

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/internal/unsafehelpers"
)

// DefaultPageBytes is the PAGE_SIZE knob from spec §6, expressed in bytes;
// the per-type slot count is derived from it in New.
const DefaultPageBytes = 4096

// PagedVector is a logical sequence of T backed by fixed-size pages. Once a
// page is allocated its backing array is never reallocated or freed until
// Destroy, so *T pointers handed out by At remain valid across growth,
// insertion, and erasure elsewhere in the sequence (spec §3.5 key
// invariant).
type PagedVector[T any] struct {
	pages    [][]T
	pageSize int // slots per page; power of two
	pageLog  int
	size     int
}

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

func log2(n int) int {
	l := 0
	for (1 << uint(l)) < n {
		l++
	}
	return l
}

// New constructs an empty paged vector whose page holds
// DefaultPageBytes/sizeof(T) slots (at least one), rounded up to a power of
// two.
func New[T any]() *PagedVector[T] {
	var zero T
	sz := int(sizeofApprox(zero))
	if sz <= 0 {
		sz = 1
	}
	slots := DefaultPageBytes / sz
	return NewWithPageSize[T](nextPow2(max(slots, 1)))
}

// NewWithPageSize constructs a paged vector with an explicit page size in
// slots; pageSize must be a power of two (callers needing a precise
// slots-per-page count for testing use this directly).
func NewWithPageSize[T any](pageSize int) *PagedVector[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	pageSize = nextPow2(pageSize)
	if !unsafehelpers.IsPowerOfTwo(uintptr(pageSize)) {
		panic("pagedvector: page size did not round to a power of two")
	}
	return &PagedVector[T]{pageSize: pageSize, pageLog: log2(pageSize)}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// sizeofApprox avoids importing unsafe into the public signature; it is a
// tiny helper kept local to page-size derivation.
func sizeofApprox[T any](v T) uintptr { return sizeOf(v) }

// Len returns the logical element count.
func (p *PagedVector[T]) Len() int { return p.size }

// PageSize returns the number of slots per page.
func (p *PagedVector[T]) PageSize() int { return p.pageSize }

func (p *PagedVector[T]) locate(i int) (page, offset int) {
	return i >> uint(p.pageLog), i & (p.pageSize - 1)
}

func (p *PagedVector[T]) growPage() {
	p.pages = append(p.pages, make([]T, p.pageSize))
}

// At returns a pointer to the logical element i. Valid until that index is
// destroyed or moved by Erase/Insert; stable across PushBack/growth.
func (p *PagedVector[T]) At(i int) (*T, error) {
	if i < 0 || i >= p.size {
		return nil, fmt.Errorf("%w: index %d out of [0,%d)", errs.ErrOutOfRange, i, p.size)
	}
	pg, off := p.locate(i)
	return &p.pages[pg][off], nil
}

// PushBack appends val at the logical end, allocating a new page only when
// the current tail page is full. Growth never copies existing pages.
func (p *PagedVector[T]) PushBack(val T) {
	pg, off := p.locate(p.size)
	if pg >= len(p.pages) {
		p.growPage()
	}
	p.pages[pg][off] = val
	p.size++
}

// get/set are internal helpers used by Insert/Erase to move elements across
// page boundaries without relocating pages.
func (p *PagedVector[T]) get(i int) T {
	pg, off := p.locate(i)
	return p.pages[pg][off]
}

func (p *PagedVector[T]) set(i int, v T) {
	pg, off := p.locate(i)
	p.pages[pg][off] = v
}

func (p *PagedVector[T]) ensureCapacity(n int) {
	for {
		pg, _ := p.locate(n - 1)
		if pg < len(p.pages) {
			return
		}
		p.growPage()
	}
}

// Insert places val at pos, moving the logical tail forward by one using
// page-aware get/set rather than a bulk copy, so elements whose index does
// not change keep their address (spec §4.3: "do not relocate prior
// elements"). Fails with errs.ErrOutOfRange if pos is outside [0, Len()].
func (p *PagedVector[T]) Insert(pos int, val T) error {
	if pos < 0 || pos > p.size {
		return fmt.Errorf("%w: insert position %d out of [0,%d]", errs.ErrOutOfRange, pos, p.size)
	}
	p.ensureCapacity(p.size + 1)
	for i := p.size; i > pos; i-- {
		p.set(i, p.get(i-1))
	}
	p.set(pos, val)
	p.size++
	return nil
}

// EmplaceAt destroys (zeroes) whatever occupied pos, then writes val there,
// without shifting any other element — spec §4.3.
func (p *PagedVector[T]) EmplaceAt(pos int, val T) error {
	if pos < 0 || pos >= p.size {
		return fmt.Errorf("%w: index %d out of [0,%d)", errs.ErrOutOfRange, pos, p.size)
	}
	var zero T
	p.set(pos, zero)
	p.set(pos, val)
	return nil
}

// Erase removes elements in [a, b), move-assigning the suffix down one slot
// at a time and zeroing the exposed tail. Pages are never reordered or
// freed. Fails with errs.ErrOutOfRange if the range is invalid.
func (p *PagedVector[T]) Erase(a, b int) error {
	if a < 0 || b > p.size || a > b {
		return fmt.Errorf("%w: erase range [%d,%d) invalid for len %d", errs.ErrOutOfRange, a, b, p.size)
	}
	n := b - a
	if n == 0 {
		return nil
	}
	for i := b; i < p.size; i++ {
		p.set(i-n, p.get(i))
	}
	var zero T
	for i := p.size - n; i < p.size; i++ {
		p.set(i, zero)
	}
	p.size -= n
	return nil
}

// Resize grows (default-constructing the tail) or shrinks (destroying the
// suffix) to n elements.
func (p *PagedVector[T]) Resize(n int) {
	if n <= p.size {
		var zero T
		for i := n; i < p.size; i++ {
			p.set(i, zero)
		}
		p.size = n
		return
	}
	p.ensureCapacity(n)
	p.size = n
}

// Clear destroys every element, leaving allocated pages in place.
func (p *PagedVector[T]) Clear() {
	var zero T
	for i := 0; i < p.size; i++ {
		p.set(i, zero)
	}
	p.size = 0
}

// Destroy clears and releases every page.
func (p *PagedVector[T]) Destroy() {
	p.pages = nil
	p.size = 0
}
