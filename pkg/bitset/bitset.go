// Package bitset implements a dynamic bit sequence over 64-bit clusters
// (spec §3.3), backed by a plain []uint64 the way the source backs it with a
// vector<u64>.
//
// © 2025 ccl authors. MIT License.
package bitset

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
)

// BitsPerCluster is the fixed cluster width backing each storage word.
const BitsPerCluster = 64

// Bitset is a growable bit sequence.
type Bitset struct {
	clusters []uint64
	sizeBits int
}

// New constructs an empty bitset.
func New() *Bitset { return &Bitset{} }

// NewWithSize constructs a bitset with n bits, all cleared.
func NewWithSize(n int) *Bitset {
	b := &Bitset{}
	b.Resize(n)
	return b
}

func clusterCount(sizeBits int) int {
	return (sizeBits + BitsPerCluster - 1) / BitsPerCluster
}

// locateBit splits a bit index into (cluster, offset), spec §3.3.
func locateBit(i int) (int, int) { return i >> 6, i & 63 }

// Size returns the number of addressable bits.
func (b *Bitset) Size() int { return b.sizeBits }

// Resize grows or shrinks the logical bit count. Growing zero-fills new
// bits; shrinking never reallocates clusters below the new cluster count but
// does not promise to clear bits past the new size (spec §3.3: "clusters
// past ceil(size_bits/64) have undefined bits").
func (b *Bitset) Resize(n int) {
	need := clusterCount(n)
	// Bits left in existing clusters by an earlier shrink are cleared so that
	// growing always exposes zero bits.
	for i := b.sizeBits; i < n && i < len(b.clusters)*BitsPerCluster; i++ {
		c, o := locateBit(i)
		b.clusters[c] &^= uint64(1) << uint(o)
	}
	if need > len(b.clusters) {
		grown := make([]uint64, need)
		copy(grown, b.clusters)
		b.clusters = grown
	}
	b.sizeBits = n
}

func (b *Bitset) checkIndex(i int) error {
	if i < 0 || i >= b.sizeBits {
		return fmt.Errorf("%w: bit index %d out of [0,%d)", errs.ErrOutOfRange, i, b.sizeBits)
	}
	return nil
}

// Test returns the value of bit i.
func (b *Bitset) Test(i int) (bool, error) {
	if err := b.checkIndex(i); err != nil {
		return false, err
	}
	c, off := locateBit(i)
	return b.clusters[c]&(uint64(1)<<uint(off)) != 0, nil
}

// Set assigns bit i to v.
func (b *Bitset) Set(i int, v bool) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}
	c, off := locateBit(i)
	if v {
		b.clusters[c] |= uint64(1) << uint(off)
	} else {
		b.clusters[c] &^= uint64(1) << uint(off)
	}
	return nil
}

// PushBack appends one bit, growing the bitset by one, and returns its index.
func (b *Bitset) PushBack(v bool) int {
	idx := b.sizeBits
	b.Resize(b.sizeBits + 1)
	_ = b.Set(idx, v)
	return idx
}

// Last returns the value of the final bit. Fails with errs.ErrOutOfRange
// when empty.
func (b *Bitset) Last() (bool, error) {
	if b.sizeBits == 0 {
		return false, fmt.Errorf("%w: bitset is empty", errs.ErrOutOfRange)
	}
	return b.Test(b.sizeBits - 1)
}

// PopCount counts set bits across the whole logical range.
func (b *Bitset) PopCount() int {
	n := 0
	full := b.sizeBits / BitsPerCluster
	for i := 0; i < full; i++ {
		n += popcount64(b.clusters[i])
	}
	rem := b.sizeBits % BitsPerCluster
	if rem != 0 {
		mask := uint64(1)<<uint(rem) - 1
		n += popcount64(b.clusters[full] & mask)
	}
	return n
}

func popcount64(x uint64) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// Clear zeroes every addressable bit without changing Size().
func (b *Bitset) Clear() {
	for i := range b.clusters {
		b.clusters[i] = 0
	}
}
