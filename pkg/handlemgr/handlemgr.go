// Package handlemgr implements the handle manager (spec §3.9, §4.9):
// generation tracking and slot allocation over a paged vector, with two
// expiry policies (recycle, discard).
//
// © 2025 ccl authors. MIT License.
package handlemgr

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/packed"
	"github.com/Voskan/ccl/pkg/pagedvector"
)

// Policy selects what happens to a slot's generation on release.
type Policy uint8

const (
	// Recycle wraps the generation modulo (max+1); the slot is immediately
	// reusable at every generation.
	Recycle Policy = iota
	// Discard increments the generation without wrapping; a slot whose
	// generation reaches the maximum is "expired" and withheld from Acquire
	// until ResetExpired rewrites it to generation 0.
	Discard
)

const unusedBit uint32 = 1 << 31

// Tag is the phantom type parameter identifying a handle family; pass the
// same Tag to every Manager/Handle pair that should be mutually comparable
// (e.g. a dedicated EntityTag for the ECS registry).
type Handle[Tag any] = packed.Handle[Tag, uint32]

// Option configures a Manager at construction.
type Option[Tag any] func(*Manager[Tag])

// WithPolicy overrides the default Recycle policy.
func WithPolicy[Tag any](p Policy) Option[Tag] {
	return func(m *Manager[Tag]) { m.policy = p }
}

// WithValueWidth overrides HANDLE_VALUE_WIDTH (spec §6); default
// packed.DefaultValueWidth.
func WithValueWidth[Tag any](bits uint8) Option[Tag] {
	return func(m *Manager[Tag]) { m.valueWidth = bits }
}

// WithMaxGeneration overrides the generation ceiling; defaults to the
// largest value the handle's generation field (word_bits - valueWidth) can
// hold.
func WithMaxGeneration[Tag any](max uint32) Option[Tag] {
	return func(m *Manager[Tag]) { m.maxGeneration = max }
}

// WithOnGrow installs a callback invoked whenever the manager grows by one
// page of slots; a caller can forward it to a pkg/telemetry sink without
// Manager depending on that package.
func WithOnGrow[Tag any](fn func(newSlotCount int)) Option[Tag] {
	return func(m *Manager[Tag]) { m.onGrow = fn }
}

// Manager owns a paged_vector<u32> of packed (generation, unused-flag)
// slots, per spec §3.9.
type Manager[Tag any] struct {
	slots         *pagedvector.PagedVector[uint32]
	lastSlotIndex int
	policy        Policy
	valueWidth    uint8
	maxGeneration uint32
	onGrow        func(newSlotCount int)
}

// New constructs an empty handle manager.
func New[Tag any](opts ...Option[Tag]) *Manager[Tag] {
	m := &Manager[Tag]{
		slots:      pagedvector.New[uint32](),
		valueWidth: packed.DefaultValueWidth,
	}
	for _, o := range opts {
		o(m)
	}
	if m.maxGeneration == 0 {
		m.maxGeneration = packed.HighMax[uint32](m.valueWidth)
	}
	return m
}

func slotGeneration(slot uint32) uint32 { return slot &^ unusedBit }
func slotUnused(slot uint32) bool       { return slot&unusedBit != 0 }

// growOnePage appends one page of fresh slots, all unused at generation 0,
// and positions lastSlotIndex at the first new slot.
func (m *Manager[Tag]) growOnePage() {
	base := m.slots.Len()
	pageSize := m.slots.PageSize()
	m.slots.Resize(base + pageSize)
	for i := base; i < base+pageSize; i++ {
		p, _ := m.slots.At(i)
		*p = unusedBit
	}
	m.lastSlotIndex = base
	if m.onGrow != nil {
		m.onGrow(m.slots.Len())
	}
}

// Acquire finds a reusable slot (scanning from lastSlotIndex, wrapping),
// growing storage by one page if none is found, and returns a fresh handle
// at that slot's current generation (spec §4.9).
func (m *Manager[Tag]) Acquire() Handle[Tag] {
	idx := m.findReusable()
	if idx == -1 {
		m.growOnePage()
		idx = m.lastSlotIndex
	}
	p, _ := m.slots.At(idx)
	g := slotGeneration(*p)
	*p = g // clears the unused bit
	total := m.slots.Len()
	m.lastSlotIndex = (idx + 1) % total
	h, _ := packed.New[Tag, uint32](g, uint32(idx), m.valueWidth)
	return h
}

func (m *Manager[Tag]) findReusable() int {
	total := m.slots.Len()
	if total == 0 {
		return -1
	}
	check := func(i int) bool {
		p, _ := m.slots.At(i)
		if !slotUnused(*p) {
			return false
		}
		if m.policy == Discard && slotGeneration(*p) >= m.maxGeneration {
			return false
		}
		return true
	}
	for i := m.lastSlotIndex; i < total; i++ {
		if check(i) {
			return i
		}
	}
	for i := 0; i < m.lastSlotIndex; i++ {
		if check(i) {
			return i
		}
	}
	return -1
}

// IsValid reports whether h still refers to a live slot at the expected
// generation (spec §4.9).
func (m *Manager[Tag]) IsValid(h Handle[Tag]) bool {
	idx := int(h.Value())
	if idx < 0 || idx >= m.slots.Len() {
		return false
	}
	p, _ := m.slots.At(idx)
	return !slotUnused(*p) && slotGeneration(*p) == h.Generation()
}

// Release invalidates h, advancing its slot's generation per the configured
// policy. Fails with errs.ErrInvalidArgument if h is not currently valid.
func (m *Manager[Tag]) Release(h Handle[Tag]) error {
	if !m.IsValid(h) {
		return fmt.Errorf("%w: release of invalid handle", errs.ErrInvalidArgument)
	}
	idx := int(h.Value())
	p, _ := m.slots.At(idx)
	g := slotGeneration(*p)
	switch m.policy {
	case Recycle:
		*p = ((g + 1) % (m.maxGeneration + 1)) | unusedBit
	default: // Discard
		ng := g + 1
		if ng > m.maxGeneration {
			// Pin at the maximum rather than overflow past it, so
			// ResetExpired's exact-equality check always finds the slot.
			ng = m.maxGeneration
		}
		*p = ng | unusedBit
	}
	return nil
}

// ResetExpired rewrites every expired slot (Discard policy, generation at
// maximum, unused) back to generation 0, unused — spec §4.9. No-op under
// Recycle, which never produces expired slots.
func (m *Manager[Tag]) ResetExpired() {
	if m.policy != Discard {
		return
	}
	for i := 0; i < m.slots.Len(); i++ {
		p, _ := m.slots.At(i)
		if slotUnused(*p) && slotGeneration(*p) == m.maxGeneration {
			*p = unusedBit
		}
	}
}

// Reset marks every slot unused at generation 0 and rewinds the search hint.
func (m *Manager[Tag]) Reset() {
	for i := 0; i < m.slots.Len(); i++ {
		p, _ := m.slots.At(i)
		*p = unusedBit
	}
	m.lastSlotIndex = 0
}

// SlotCount returns the total number of slots ever allocated (free or in
// use).
func (m *Manager[Tag]) SlotCount() int { return m.slots.Len() }
