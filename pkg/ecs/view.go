package ecs

// MaxArchetypeCount is ECS_VIEW_MAX_ARCHETYPE_COUNT (spec §6): the largest
// number of matching archetypes a single view will visit. A registry that
// has fragmented a component combination across more archetypes than this
// silently stops after the first MaxArchetypeCount matches in archetype-map
// iteration order — callers who need every match should keep their
// component combinations few enough not to fragment this heavily, the
// tradeoff the knob exists to bound.
const MaxArchetypeCount = 64

// view is the untyped core shared by every arity-specific View below: it
// walks the registry's archetype map once, keeping only archetypes whose
// column set is a superset of the requested type hashes.
type view struct {
	r      *Registry
	hashes []uint64
}

func archetypeHasAll(a *archetype, hashes []uint64) bool {
	for _, h := range hashes {
		if !a.hasColumn(h) {
			return false
		}
	}
	return true
}

func (v *view) size() int {
	total := 0
	matched := 0
	v.r.archetypes.Iterate(func(_ uint64, a archetype) {
		if matched >= MaxArchetypeCount {
			return
		}
		if archetypeHasAll(&a, v.hashes) {
			matched++
			total += a.size()
		}
	})
	return total
}

// iterateArchetypes calls fn once per matching archetype, up to
// MaxArchetypeCount matches, in the archetype map's internal storage order.
func (v *view) iterateArchetypes(fn func(*archetype)) {
	matched := 0
	v.r.archetypes.Iterate(func(_ uint64, a archetype) {
		if matched >= MaxArchetypeCount {
			return
		}
		if archetypeHasAll(&a, v.hashes) {
			matched++
			fn(&a)
		}
	})
}

func rowEntity(a *archetype, row int) Entity {
	v, _ := a.entityColumn().get(row)
	e, _ := v.(Entity)
	return e
}

// View1 iterates every entity carrying an A component (spec §4.12
// registry.view<Cs...>, arity 1).
type View1[A any] struct{ v *view }

// NewView1 constructs a single-component view over r.
func NewView1[A any](r *Registry) *View1[A] {
	return &View1[A]{v: &view{r: r, hashes: []uint64{componentTypeHash[A]()}}}
}

// Size returns the number of entities currently matching, scanning at most
// MaxArchetypeCount archetypes.
func (vw *View1[A]) Size() int { return vw.v.size() }

// Iterate calls fn once per matching entity with a live pointer into that
// entity's A component, so mutations through the pointer are visible
// immediately (no copy-out-copy-back).
func (vw *View1[A]) Iterate(fn func(e Entity, a *A)) {
	th := componentTypeHash[A]()
	vw.v.iterateArchetypes(func(a *archetype) {
		col, ok := a.columns.Get(th)
		if !ok {
			return
		}
		n := a.size()
		for row := 0; row < n; row++ {
			ptr, err := col.ptrAny(row)
			if err != nil {
				continue
			}
			fn(rowEntity(a, row), ptr.(*A))
		}
	})
}

// IterateArchetypes exposes the per-archetype granularity directly (spec
// §4.12's iterate_archetypes), for callers that want to batch work by
// archetype rather than visit entities one at a time.
func (vw *View1[A]) IterateArchetypes(fn func(count int, entities func(i int) Entity, a func(i int) *A)) {
	th := componentTypeHash[A]()
	vw.v.iterateArchetypes(func(arch *archetype) {
		col, ok := arch.columns.Get(th)
		if !ok {
			return
		}
		n := arch.size()
		fn(n,
			func(i int) Entity { return rowEntity(arch, i) },
			func(i int) *A {
				p, _ := col.ptrAny(i)
				return p.(*A)
			},
		)
	})
}

// View2 iterates every entity carrying both an A and a B component.
type View2[A, B any] struct{ v *view }

// NewView2 constructs a two-component view over r.
func NewView2[A, B any](r *Registry) *View2[A, B] {
	return &View2[A, B]{v: &view{r: r, hashes: []uint64{componentTypeHash[A](), componentTypeHash[B]()}}}
}

// Size returns the number of entities currently matching.
func (vw *View2[A, B]) Size() int { return vw.v.size() }

// Iterate calls fn once per matching entity with live pointers into both
// components.
func (vw *View2[A, B]) Iterate(fn func(e Entity, a *A, b *B)) {
	thA := componentTypeHash[A]()
	thB := componentTypeHash[B]()
	vw.v.iterateArchetypes(func(arch *archetype) {
		colA, okA := arch.columns.Get(thA)
		colB, okB := arch.columns.Get(thB)
		if !okA || !okB {
			return
		}
		n := arch.size()
		for row := 0; row < n; row++ {
			pa, errA := colA.ptrAny(row)
			pb, errB := colB.ptrAny(row)
			if errA != nil || errB != nil {
				continue
			}
			fn(rowEntity(arch, row), pa.(*A), pb.(*B))
		}
	})
}

// View3 iterates every entity carrying A, B and C components.
type View3[A, B, C any] struct{ v *view }

// NewView3 constructs a three-component view over r.
func NewView3[A, B, C any](r *Registry) *View3[A, B, C] {
	return &View3[A, B, C]{v: &view{r: r, hashes: []uint64{
		componentTypeHash[A](), componentTypeHash[B](), componentTypeHash[C](),
	}}}
}

// Size returns the number of entities currently matching.
func (vw *View3[A, B, C]) Size() int { return vw.v.size() }

// Iterate calls fn once per matching entity with live pointers into all
// three components.
func (vw *View3[A, B, C]) Iterate(fn func(e Entity, a *A, b *B, c *C)) {
	thA := componentTypeHash[A]()
	thB := componentTypeHash[B]()
	thC := componentTypeHash[C]()
	vw.v.iterateArchetypes(func(arch *archetype) {
		colA, okA := arch.columns.Get(thA)
		colB, okB := arch.columns.Get(thB)
		colC, okC := arch.columns.Get(thC)
		if !okA || !okB || !okC {
			return
		}
		n := arch.size()
		for row := 0; row < n; row++ {
			pa, eA := colA.ptrAny(row)
			pb, eB := colB.ptrAny(row)
			pc, eC := colC.ptrAny(row)
			if eA != nil || eB != nil || eC != nil {
				continue
			}
			fn(rowEntity(arch, row), pa.(*A), pb.(*B), pc.(*C))
		}
	})
}
