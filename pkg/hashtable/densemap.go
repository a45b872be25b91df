package hashtable

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/vector"
)

// DenseMap is dense_map (spec §3.7, §4.7): a hashtable mapping K to a dense
// uint32 index, with values packed tightly in a vector.Vector[V] at that
// index. Erase uses ordered vector.Erase (O(n)) rather than the canonical
// swap-with-last dense-map trick — spec §9.2 flags this as suspicious but
// specifies carrying it forward; SwapErase below offers an O(1) alternative
// for callers that don't need stable ordering across erases.
type DenseMap[K comparable, V any] struct {
	index  *Table[K, uint32]
	values *vector.Vector[V]
}

// NewDenseMap constructs an empty dense map.
func NewDenseMap[K comparable, V any](opts ...Option[K, uint32]) *DenseMap[K, V] {
	return &DenseMap[K, V]{
		index:  New[K, uint32](opts...),
		values: vector.New[V](),
	}
}

// Len returns the number of entries.
func (m *DenseMap[K, V]) Len() int { return m.values.Len() }

// At returns the value for k. Fails with errs.ErrOutOfRange if absent.
func (m *DenseMap[K, V]) At(k K) (V, error) {
	var zero V
	idx, ok := m.index.Get(k)
	if !ok {
		return zero, fmt.Errorf("%w: key not present in dense map", errs.ErrOutOfRange)
	}
	p, err := m.values.At(int(idx))
	if err != nil {
		return zero, err
	}
	return *p, nil
}

// PtrAt returns a pointer to k's value, valid until the next Insert/Erase
// triggers a growth or compaction of the backing vector — callers that need
// to hold the pointer across such a call must re-fetch it afterward (see
// pkg/ecs's registry, which re-looks-up an archetype pointer after inserting
// a new archetype). Fails with errs.ErrOutOfRange if absent.
func (m *DenseMap[K, V]) PtrAt(k K) (*V, error) {
	idx, ok := m.index.Get(k)
	if !ok {
		return nil, fmt.Errorf("%w: key not present in dense map", errs.ErrOutOfRange)
	}
	return m.values.At(int(idx))
}

// Contains reports whether k has an entry.
func (m *DenseMap[K, V]) Contains(k K) bool {
	_, ok := m.index.Get(k)
	return ok
}

// Insert writes (k, v): overwrites the existing value if k is present,
// otherwise appends v and binds a fresh dense index.
func (m *DenseMap[K, V]) Insert(k K, v V) {
	if idx, ok := m.index.Get(k); ok {
		p, _ := m.values.At(int(idx))
		*p = v
		return
	}
	idx := uint32(m.values.Len())
	m.values.PushBack(v)
	m.index.Insert(k, idx)
}

// Emplace inserts v for a key not already present. Fails with
// errs.ErrInvalidArgument if k is present.
func (m *DenseMap[K, V]) Emplace(k K, v V) error {
	if m.Contains(k) {
		return fmt.Errorf("%w: key already present in dense map", errs.ErrInvalidArgument)
	}
	m.Insert(k, v)
	return nil
}

// GetOrInsert returns a pointer to k's value, default-inserting a zero value
// when absent — the operator[] semantics of spec §4.7.
func (m *DenseMap[K, V]) GetOrInsert(k K) *V {
	idx, ok := m.index.Get(k)
	if !ok {
		var zero V
		idx = uint32(m.values.Len())
		m.values.PushBack(zero)
		m.index.Insert(k, idx)
	}
	p, _ := m.values.At(int(idx))
	return p
}

// Erase removes k, shifting every dense index greater than k's down by one
// to keep the index map consistent with the order-preserving vector erase —
// the O(n) cost spec §9.2 calls out. Returns whether k was present.
func (m *DenseMap[K, V]) Erase(k K) bool {
	idx, ok := m.index.Get(k)
	if !ok {
		return false
	}
	_ = m.values.Erase(int(idx), int(idx)+1)
	m.index.Erase(k)

	type shifted struct {
		key K
		idx uint32
	}
	var toShift []shifted
	m.index.Iterate(func(kk K, vv uint32) {
		if vv > idx {
			toShift = append(toShift, shifted{kk, vv - 1})
		}
	})
	for _, s := range toShift {
		m.index.Insert(s.key, s.idx)
	}
	return true
}

// SwapErase removes k in O(1) by swapping the last dense value into the
// freed slot, the canonical dense-map erase the source lacks (spec §9.2
// offers this as an alternative to the O(n) Erase above). Index-map entries
// of k and of whichever key previously owned the last slot are updated.
func (m *DenseMap[K, V]) SwapErase(k K) bool {
	idx, ok := m.index.Get(k)
	if !ok {
		return false
	}
	last := m.values.Len() - 1
	if int(idx) != last {
		lastPtr, _ := m.values.At(last)
		p, _ := m.values.At(int(idx))
		*p = *lastPtr

		m.index.Iterate(func(kk K, vv uint32) {
			if int(vv) == last && kk != k {
				m.index.Insert(kk, idx)
			}
		})
	}
	_ = m.values.Erase(last, last+1)
	m.index.Erase(k)
	return true
}

// Iterate calls fn for every (key, value) pair, in the key index table's
// storage order (not dense-index order).
func (m *DenseMap[K, V]) Iterate(fn func(k K, v V)) {
	m.index.Iterate(func(k K, idx uint32) {
		p, _ := m.values.At(int(idx))
		fn(k, *p)
	})
}
