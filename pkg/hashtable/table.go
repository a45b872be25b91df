// Package hashtable implements hashtable, set and dense_map (spec §3.7,
// §4.6, §4.7): open addressing with linear-probed chunks. Capacity is always
// a power of two; the primary index is hash(key) & (capacity-1); a chunk is
// a fixed-length window of KEY_CHUNK_SIZE consecutive slots starting at the
// primary index, wrapping modulo capacity. Insertion and lookup visit only
// that chunk.
//
// © 2025 ccl authors. MIT License.
package hashtable

import (
	"github.com/Voskan/ccl/pkg/bitset"
)

// DefaultChunkSize is the KEY_CHUNK_SIZE knob from spec §6.
const DefaultChunkSize = 16

// DefaultMinimumCapacity is the HASHTABLE_MINIMUM_CAPACITY /
// SET_MINIMUM_CAPACITY knob from spec §6.
const DefaultMinimumCapacity = 16

// Option configures a Table at construction.
type Option[K comparable, V any] func(*Table[K, V])

// WithHashFunc overrides the default key hash.
func WithHashFunc[K comparable, V any](fn HashFunc[K]) Option[K, V] {
	return func(t *Table[K, V]) { t.hashFn = fn }
}

// WithChunkSize overrides KEY_CHUNK_SIZE. Must be a positive power of two in
// practice; callers experimenting with the retry-loop behavior (spec §8.2
// scenario 5) may pass a small value such as 2.
func WithChunkSize[K comparable, V any](n int) Option[K, V] {
	return func(t *Table[K, V]) { t.chunkSize = n }
}

// WithMinimumCapacity overrides HASHTABLE_MINIMUM_CAPACITY.
func WithMinimumCapacity[K comparable, V any](n int) Option[K, V] {
	return func(t *Table[K, V]) { t.minCapacity = n }
}

// Table is the open-addressed, chunk-probed hashtable at the core of
// Table/Set/DenseMap.
type Table[K comparable, V any] struct {
	keys      []K
	values    []V
	occupied  *bitset.Bitset
	capacity  int
	count     int
	chunkSize int
	minCapacity int
	hashFn    HashFunc[K]
	onRehash  func(oldCap, newCap int)
}

// New constructs an empty table at the minimum capacity.
func New[K comparable, V any](opts ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		chunkSize:   DefaultChunkSize,
		minCapacity: DefaultMinimumCapacity,
		hashFn:      DefaultHash[K],
	}
	for _, o := range opts {
		o(t)
	}
	t.capacity = nextPow2(t.minCapacity)
	t.keys = make([]K, t.capacity)
	t.values = make([]V, t.capacity)
	t.occupied = bitset.NewWithSize(t.capacity)
	return t
}

// SetOnRehash installs a callback invoked whenever Rehash commits new
// storage; a caller can forward it to a pkg/telemetry sink without the
// table depending on that package.
func (t *Table[K, V]) SetOnRehash(fn func(oldCap, newCap int)) { t.onRehash = fn }

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

// Len returns the number of live entries.
func (t *Table[K, V]) Len() int { return t.count }

// Capacity returns the current table capacity (always a power of two).
func (t *Table[K, V]) Capacity() int { return t.capacity }

func (t *Table[K, V]) primary(k K) int {
	return int(t.hashFn(k) & uint64(t.capacity-1))
}

// chunkIndices yields the (wrapped) slot indices of key k's chunk, in order.
func (t *Table[K, V]) chunkIndices(k K) []int {
	p0 := t.primary(k)
	n := t.chunkSize
	if n > t.capacity {
		n = t.capacity
	}
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = (p0 + i) % t.capacity
	}
	return idx
}

// Find returns the slot index holding key, and true, or (-1, false).
func (t *Table[K, V]) Find(k K) (int, bool) {
	for _, i := range t.chunkIndices(k) {
		occ, _ := t.occupied.Test(i)
		if occ && t.keys[i] == k {
			return i, true
		}
	}
	return -1, false
}

// Get returns the value for key, if present.
func (t *Table[K, V]) Get(k K) (V, bool) {
	if i, ok := t.Find(k); ok {
		return t.values[i], true
	}
	var zero V
	return zero, false
}

// Insert writes (k, v), overwriting any existing value for k. Implements the
// spec §4.6 algorithm including the rehash retry loop when no chunk slot is
// free.
func (t *Table[K, V]) Insert(k K, v V) {
	for {
		firstEmpty := -1
		for _, i := range t.chunkIndices(k) {
			occ, _ := t.occupied.Test(i)
			if occ && t.keys[i] == k {
				t.values[i] = v
				return
			}
			if !occ && firstEmpty == -1 {
				firstEmpty = i
			}
		}
		if firstEmpty != -1 {
			t.keys[firstEmpty] = k
			t.values[firstEmpty] = v
			_ = t.occupied.Set(firstEmpty, true)
			t.count++
			return
		}
		target := t.capacity * 2
		if target < 1 {
			target = 1
		}
		t.Rehash(target)
	}
}

// Erase removes key, if present, returning whether it was found.
func (t *Table[K, V]) Erase(k K) bool {
	i, ok := t.Find(k)
	if !ok {
		return false
	}
	var zeroK K
	var zeroV V
	t.keys[i] = zeroK
	t.values[i] = zeroV
	_ = t.occupied.Set(i, false)
	t.count--
	return true
}

// Rehash grows the table to the smallest power of two >=
// max(targetCapacity, capacity+1), retrying at double capacity whenever an
// existing key cannot be placed within its new chunk (spec §4.6).
func (t *Table[K, V]) Rehash(targetCapacity int) {
	newCap := nextPow2(max2(targetCapacity, t.capacity+1))
	oldCap := t.capacity
	for {
		newKeys := make([]K, newCap)
		newValues := make([]V, newCap)
		newOccupied := bitset.NewWithSize(newCap)
		ok := t.tryPlaceAll(newCap, newKeys, newValues, newOccupied)
		if ok {
			t.keys, t.values, t.occupied, t.capacity = newKeys, newValues, newOccupied, newCap
			if t.onRehash != nil {
				t.onRehash(oldCap, newCap)
			}
			return
		}
		newCap <<= 1
	}
}

func (t *Table[K, V]) tryPlaceAll(newCap int, newKeys []K, newValues []V, newOccupied *bitset.Bitset) bool {
	chunkN := t.chunkSize
	if chunkN > newCap {
		chunkN = newCap
	}
	for i := 0; i < t.capacity; i++ {
		occ, _ := t.occupied.Test(i)
		if !occ {
			continue
		}
		k, v := t.keys[i], t.values[i]
		p0 := int(t.hashFn(k) & uint64(newCap-1))
		placed := false
		for j := 0; j < chunkN; j++ {
			slot := (p0 + j) % newCap
			so, _ := newOccupied.Test(slot)
			if !so {
				newKeys[slot] = k
				newValues[slot] = v
				_ = newOccupied.Set(slot, true)
				placed = true
				break
			}
		}
		if !placed {
			return false
		}
	}
	return true
}

func max2(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Iterate calls fn for every occupied slot in storage order (not insertion
// order, not hash order — spec §4.6). Iteration order, and any outstanding
// iterator, is invalidated by a Rehash.
func (t *Table[K, V]) Iterate(fn func(k K, v V)) {
	for i := 0; i < t.capacity; i++ {
		occ, _ := t.occupied.Test(i)
		if occ {
			fn(t.keys[i], t.values[i])
		}
	}
}
