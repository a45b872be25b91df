package hashtable

// Set is hashtable specialized to a value-less key set (spec §4.6: "set
// omits V"), layered directly on Table[K, struct{}] so it shares the same
// chunk-probe algorithm and rehash retry loop without duplicating them.
type Set[K comparable] struct {
	t *Table[K, struct{}]
}

// SetOption configures a Set.
type SetOption[K comparable] func(*Table[K, struct{}])

// NewSet constructs an empty set.
func NewSet[K comparable](opts ...SetOption[K]) *Set[K] {
	tableOpts := make([]Option[K, struct{}], len(opts))
	for i, o := range opts {
		tableOpts[i] = Option[K, struct{}](o)
	}
	return &Set[K]{t: New[K, struct{}](tableOpts...)}
}

// Len returns the number of members.
func (s *Set[K]) Len() int { return s.t.Len() }

// Capacity returns the backing table capacity.
func (s *Set[K]) Capacity() int { return s.t.Capacity() }

// Contains reports whether k is a member.
func (s *Set[K]) Contains(k K) bool {
	_, ok := s.t.Find(k)
	return ok
}

// Insert adds k to the set (no-op if already present).
func (s *Set[K]) Insert(k K) { s.t.Insert(k, struct{}{}) }

// Erase removes k, returning whether it was present.
func (s *Set[K]) Erase(k K) bool { return s.t.Erase(k) }

// Iterate calls fn for every member, in storage order.
func (s *Set[K]) Iterate(fn func(k K)) {
	s.t.Iterate(func(k K, _ struct{}) { fn(k) })
}
