// Package pool implements a memory pool: a free-list of same-type slots
// backed by a paged vector. Memory lifetime equals the pool's; Acquire and
// Release never construct or destroy a T — they only hand out and reclaim
// storage, a page at a time, so a released slot's backing memory is never
// returned to the allocator until the whole pool is freed.
//
// © 2025 ccl authors. MIT License.
package pool

import (
	"github.com/Voskan/ccl/pkg/pagedvector"
	"github.com/Voskan/ccl/pkg/vector"
)

// Pool is a LIFO free-list of *T slots backed by a paged vector of T.
type Pool[T any] struct {
	storage   *pagedvector.PagedVector[T]
	freeStack *vector.Vector[*T]
	onGrow    func(newPageCount int)
}

// New constructs an empty memory pool.
func New[T any]() *Pool[T] {
	return &Pool[T]{
		storage:   pagedvector.New[T](),
		freeStack: vector.New[*T](),
	}
}

// SetOnGrow installs a callback invoked whenever the pool grows by one page
// (a caller can forward it to a pkg/telemetry sink without the pool
// depending on that package).
func (p *Pool[T]) SetOnGrow(fn func(newPageCount int)) { p.onGrow = fn }

// growOnePage appends exactly one page of fresh slots to storage and pushes
// their addresses onto the free stack in reverse order, so the first slot of
// the new page is the next one handed out by Acquire — matching the
// source's "push every slot pointer of the new page onto the free-stack (in
// reverse so the first slot is used next)".
func (p *Pool[T]) growOnePage() {
	base := p.storage.Len()
	pageSize := p.storage.PageSize()
	p.storage.Resize(base + pageSize)
	for i := pageSize - 1; i >= 0; i-- {
		slot, _ := p.storage.At(base + i)
		p.freeStack.PushBack(slot)
	}
	if p.onGrow != nil {
		p.onGrow(p.storage.Len() / pageSize)
	}
}

// Acquire pops a free slot, growing storage by one page first if the
// free-stack is empty.
func (p *Pool[T]) Acquire() *T {
	if p.freeStack.Len() == 0 {
		p.growOnePage()
	}
	last := p.freeStack.Len() - 1
	slot, _ := p.freeStack.At(last)
	ptr := *slot
	_ = p.freeStack.Erase(last, last+1)
	return ptr
}

// Release returns p to the pool's free-list. It does not invoke any
// destructor for T; callers that need reset-on-release semantics should
// write a zero value through the pointer themselves, or use pkg/handlemgr's
// ObjectPool which does this via a stored default value.
func (p *Pool[T]) Release(ptr *T) {
	p.freeStack.PushBack(ptr)
}

// Len returns the number of slots currently allocated from storage (both
// free and in-use).
func (p *Pool[T]) Len() int { return p.storage.Len() }

// FreeCount returns the number of slots currently on the free-list.
func (p *Pool[T]) FreeCount() int { return p.freeStack.Len() }
