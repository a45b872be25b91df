// Package alloc defines the allocator contract shared by every CCL
// container (spec §3.1) plus the default, local, composite and null
// implementations over it.
//
// The source models this with a policy-style mixin that collapses to zero
// bytes for stateless allocators (the empty-base optimization, §9.1). Go has
// no empty-base optimization, so a container instead stores the Allocator
// interface value directly: a stateless implementation backed by a pointer
// receiver to a zero-size struct already costs one word (the interface's
// itab) regardless, and that word is the cheapest faithful encoding
// available without code generation or build-time specialization.
//
// © 2025 ccl authors. MIT License.
package alloc

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/Voskan/ccl/internal/errs"
)

// Flags is an opaque allocation-flags bitset. Containers pass flags through
// untouched; only the allocator interprets them.
type Flags uint32

const (
	// FlagPermanent marks memory that is never freed. An allocator honoring
	// this flag may skip bookkeeping needed only for later Deallocate calls.
	FlagPermanent Flags = 1 << iota
	// FlagTemporary marks short-lived memory; purely advisory.
	FlagTemporary
)

// Features advertises which optional allocator capabilities are meaningful.
type Features uint32

const (
	// FeatureOwnership means Owns reports a real answer, not a conservative
	// default.
	FeatureOwnership Features = 1 << iota
	// FeatureAllocInfo means AllocationInfo reports a real answer.
	FeatureAllocInfo
)

// Info is the introspection payload returned by AllocationInfo.
type Info struct {
	Size      uintptr
	Alignment uintptr
	Flags     Flags
}

// Allocator is the typed raw-memory contract every CCL container embeds (or
// erases, when stateless) a reference to.
//
// Allocators lacking a feature must return conservative defaults: Owns
// returns false, AllocationInfo returns a zeroed Info and false.
type Allocator interface {
	// Allocate reserves size bytes aligned to alignment. alignment must be a
	// power of two. Returns nil and an error wrapping errs.ErrAllocFailed on
	// exhaustion.
	Allocate(size, alignment uintptr, flags Flags) (unsafe.Pointer, error)
	// Deallocate releases memory previously returned by Allocate. Passing a
	// pointer not owned by this allocator is undefined; callers only ever
	// deallocate what they allocated.
	Deallocate(p unsafe.Pointer)
	// Owns reports whether p was returned by this allocator. Conservative
	// default: false, unless Features() has FeatureOwnership set.
	Owns(p unsafe.Pointer) bool
	// AllocationInfo reports size/alignment/flags recorded for p, if known.
	AllocationInfo(p unsafe.Pointer) (Info, bool)
	// Features reports which optional capabilities are meaningful.
	Features() Features
}

// AllocateT is the typed allocate<T> factory from spec §3.1: it computes
// size/alignment from T and returns a slice view over the fresh memory.
// Go cannot attach type parameters to interface methods, so the typed form
// lives as a free function over the Allocator contract instead.
func AllocateT[T any](a Allocator, count int, flags Flags) ([]T, error) {
	if count <= 0 {
		return nil, nil
	}
	var zero T
	size := unsafe.Sizeof(zero) * uintptr(count)
	align := unsafe.Alignof(zero)
	p, err := a.Allocate(size, align, flags)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), count), nil
}

// DeallocateT releases a slice previously returned by AllocateT.
func DeallocateT[T any](a Allocator, s []T) {
	if len(s) == 0 {
		return
	}
	a.Deallocate(unsafe.Pointer(&s[0]))
}

/* -------------------------------------------------------------------------
   Default allocator — system heap
   ------------------------------------------------------------------------- */

// Default is a heap-backed allocator. It advertises both optional features:
// a lock-guarded side table records size/alignment/flags for every live
// allocation so Owns and AllocationInfo answer precisely. Deallocate drops
// the bookkeeping entry (entries flagged FlagPermanent are kept) and lets the Go garbage collector reclaim the
// backing array once nothing else references it — the idiomatic
// replacement for an explicit free() noted in spec §9.1.
type Default struct {
	mu      sync.Mutex
	entries map[unsafe.Pointer]Info
}

// NewDefault constructs a ready-to-use heap allocator.
func NewDefault() *Default {
	return &Default{entries: make(map[unsafe.Pointer]Info)}
}

func (d *Default) Allocate(size, alignment uintptr, flags Flags) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	buf := make([]byte, size+alignment)
	base := unsafe.Pointer(&buf[0])
	addr := uintptr(base)
	aligned := (addr + alignment - 1) &^ (alignment - 1)
	p := unsafe.Pointer(aligned)

	d.mu.Lock()
	d.entries[p] = Info{Size: size, Alignment: alignment, Flags: flags}
	d.mu.Unlock()
	return p, nil
}

func (d *Default) Deallocate(p unsafe.Pointer) {
	if p == nil {
		return
	}
	d.mu.Lock()
	info, ok := d.entries[p]
	if ok && info.Flags&FlagPermanent == 0 {
		delete(d.entries, p)
	}
	d.mu.Unlock()
}

func (d *Default) Owns(p unsafe.Pointer) bool {
	d.mu.Lock()
	_, ok := d.entries[p]
	d.mu.Unlock()
	return ok
}

func (d *Default) AllocationInfo(p unsafe.Pointer) (Info, bool) {
	d.mu.Lock()
	info, ok := d.entries[p]
	d.mu.Unlock()
	return info, ok
}

func (d *Default) Features() Features {
	return FeatureOwnership | FeatureAllocInfo
}

/* -------------------------------------------------------------------------
   Null allocator — allocates nothing
   ------------------------------------------------------------------------- */

// Null always fails to allocate. Useful as the "must never actually
// allocate" arm of a Composite, or for exercising a container's
// out-of-memory path in tests.
type Null struct{}

func (Null) Allocate(size, alignment uintptr, flags Flags) (unsafe.Pointer, error) {
	return nil, fmt.Errorf("%w: null allocator never allocates", errs.ErrAllocFailed)
}
func (Null) Deallocate(unsafe.Pointer)                        {}
func (Null) Owns(unsafe.Pointer) bool                         { return false }
func (Null) AllocationInfo(unsafe.Pointer) (Info, bool)       { return Info{}, false }
func (Null) Features() Features                               { return 0 }
