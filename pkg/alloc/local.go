package alloc

import (
	"fmt"
	"unsafe"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/internal/unsafehelpers"
)

// OverflowPolicy controls what a Local allocator does when its inline
// storage is exhausted.
type OverflowPolicy uint8

const (
	// PolicyThrow returns an error wrapping errs.ErrAllocFailed (spec §7:
	// bad-alloc, "Local allocator exhaustion under throw-policy").
	PolicyThrow OverflowPolicy = iota
	// PolicyReturnNull returns (nil, nil): a null allocation rather than an
	// error, letting the caller fall back (e.g. inside a Composite).
	PolicyReturnNull
)

// Local is a fixed inline-storage bump allocator: no heap allocation, no
// Deallocate-driven reuse — it only ever grows a watermark and resets on
// Reset. It advertises FeatureOwnership, answered by a cheap address-range
// check (see Owns), and does not advertise FeatureAllocInfo.
type Local struct {
	buf    []byte
	offset uintptr
	policy OverflowPolicy
}

// NewLocal constructs a Local allocator with capacity bytes of inline
// storage and the given overflow policy.
func NewLocal(capacity int, policy OverflowPolicy) *Local {
	return &Local{buf: make([]byte, capacity), policy: policy}
}

func (l *Local) Allocate(size, alignment uintptr, flags Flags) (unsafe.Pointer, error) {
	if size == 0 {
		return nil, nil
	}
	base := uintptr(unsafe.Pointer(&l.buf[0]))
	cur := base + l.offset
	aligned := unsafehelpers.AlignUp(cur, alignment)
	pad := aligned - cur
	need := pad + size

	if l.offset+need > uintptr(len(l.buf)) {
		switch l.policy {
		case PolicyReturnNull:
			return nil, nil
		default:
			return nil, fmt.Errorf("%w: local allocator exhausted (cap=%d)", errs.ErrAllocFailed, len(l.buf))
		}
	}
	l.offset += need
	return unsafe.Pointer(aligned), nil
}

// Deallocate is a no-op: Local never reclaims individual allocations, only
// via Reset.
func (l *Local) Deallocate(unsafe.Pointer) {}

// Reset rewinds the bump pointer to the beginning, invalidating every
// pointer previously handed out. Not part of the Allocator interface; it is
// an explicit escape hatch for callers that know all prior allocations are
// dead (e.g. a frame allocator reused every tick).
func (l *Local) Reset() { l.offset = 0 }

// Owns reports whether p falls within the inline buffer's address range.
func (l *Local) Owns(p unsafe.Pointer) bool {
	if len(l.buf) == 0 || p == nil {
		return false
	}
	base := uintptr(unsafe.Pointer(&l.buf[0]))
	addr := uintptr(p)
	return addr >= base && addr < base+uintptr(len(l.buf))
}

func (l *Local) AllocationInfo(unsafe.Pointer) (Info, bool) { return Info{}, false }

func (l *Local) Features() Features { return FeatureOwnership }
