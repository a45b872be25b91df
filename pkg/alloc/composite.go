package alloc

import (
	"fmt"
	"unsafe"

	"github.com/Voskan/ccl/internal/errs"
)

// Composite tries allocator A first, falling back to B when A returns a nil
// pointer (not an error — PolicyReturnNull-style fallback, or A simply
// returning nil for a zero-size request). Deallocate dispatches to whichever
// of A/B actually Owns(p).
//
// Invariant (spec §3.1): A must advertise FeatureOwnership, otherwise
// Deallocate could not route correctly. NewComposite enforces this.
type Composite struct {
	a, b Allocator
}

// NewComposite validates the invariant and builds a Composite allocator.
func NewComposite(a, b Allocator) (*Composite, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: composite allocator requires non-nil A and B", errs.ErrInvalidArgument)
	}
	if a.Features()&FeatureOwnership == 0 {
		return nil, fmt.Errorf("%w: composite allocator A must advertise ownership-query", errs.ErrInvalidArgument)
	}
	return &Composite{a: a, b: b}, nil
}

func (c *Composite) Allocate(size, alignment uintptr, flags Flags) (unsafe.Pointer, error) {
	p, err := c.a.Allocate(size, alignment, flags)
	if err != nil || p != nil || size == 0 {
		return p, err
	}
	return c.b.Allocate(size, alignment, flags)
}

func (c *Composite) Deallocate(p unsafe.Pointer) {
	if p == nil {
		return
	}
	if c.a.Owns(p) {
		c.a.Deallocate(p)
		return
	}
	c.b.Deallocate(p)
}

func (c *Composite) Owns(p unsafe.Pointer) bool {
	return c.a.Owns(p) || c.b.Owns(p)
}

func (c *Composite) AllocationInfo(p unsafe.Pointer) (Info, bool) {
	if c.a.Owns(p) {
		return c.a.AllocationInfo(p)
	}
	if c.b.Owns(p) {
		return c.b.AllocationInfo(p)
	}
	return Info{}, false
}

func (c *Composite) Features() Features {
	// Optional features are claimed only when both branches honor them;
	// FeatureOwnership is always claimed, since Owns asks both branches.
	f := c.a.Features() & c.b.Features()
	return f | FeatureOwnership
}
