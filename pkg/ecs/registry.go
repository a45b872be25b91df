// Package ecs (continued): registry.go implements the entity/component
// registry (spec §3.12, §4.12), the archetype map keyed by the XOR of its
// member components' type hashes, and the migration procedure that moves an
// entity between archetypes whenever its component set changes.
package ecs

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/hashtable"
	"github.com/Voskan/ccl/pkg/telemetry"
	"go.uber.org/zap"
)

// Option configures a Registry at construction.
type Option func(*Registry)

// WithLogger installs a zap logger; archetype creation and entity-id
// exhaustion are logged at debug/warn level. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithTelemetry installs a metrics sink; defaults to telemetry.Noop.
func WithTelemetry(s telemetry.Sink) Option {
	return func(r *Registry) { r.sink = s }
}

// WithEntityValueWidth overrides HANDLE_VALUE_WIDTH applied to entity ids.
func WithEntityValueWidth(bits uint8) Option {
	return func(r *Registry) { r.entityValueWidth = bits }
}

// Registry owns entity identity and the archetype map (spec §3.12).
// Archetypes are stored by value in a DenseMap: the DenseMap may relocate
// its backing vector across an Insert, so any *archetype obtained before an
// Insert must be re-fetched afterward — see AddComponent/RemoveComponent,
// which do exactly that.
type Registry struct {
	currentGeneration uint32
	nextEntityID      uint32
	maxEntityID       uint32
	entityValueWidth  uint8

	archetypes *hashtable.DenseMap[uint64, archetype]
	// locator tracks which archetype id currently holds a live entity,
	// avoiding a linear scan over all archetypes for most operations;
	// HasEntity itself still scans, per spec §4.12.
	locator *hashtable.Table[Entity, uint64]

	log  *zap.Logger
	sink telemetry.Sink
}

// New constructs an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entityValueWidth: DefaultEntityValueWidth,
		archetypes:       hashtable.NewDenseMap[uint64, archetype](),
		locator:          hashtable.New[Entity, uint64](),
		log:              zap.NewNop(),
		sink:             telemetry.Noop,
	}
	for _, o := range opts {
		o(r)
	}
	r.maxEntityID = lowMaxU32(r.entityValueWidth)
	return r
}

func lowMaxU32(width uint8) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << width) - 1
}

// AddEntity mints a fresh entity at the registry's current generation. The
// entity is not placed into any archetype until its first AddComponent call
// (spec §4.12: "e may belong to no archetype"). Fails with
// errs.ErrOutOfRange once every id at the current generation is exhausted.
func (r *Registry) AddEntity() (Entity, error) {
	if r.nextEntityID >= r.maxEntityID {
		r.log.Warn("ecs: entity id space exhausted", zap.Uint32("generation", r.currentGeneration))
		return Entity{}, fmt.Errorf("%w: entity id space exhausted at this generation", errs.ErrOutOfRange)
	}
	e, err := NewEntity(r.currentGeneration, r.nextEntityID, r.entityValueWidth)
	if err != nil {
		return Entity{}, err
	}
	r.nextEntityID++
	r.log.Debug("ecs: entity added", zap.Uint32("generation", r.currentGeneration), zap.Uint32("id", e.Value()))
	return e, nil
}

// HasEntity reports whether e currently belongs to some archetype, via a
// linear scan over every archetype — spec §4.12 specifies this cost
// explicitly rather than maintaining a reverse index.
func (r *Registry) HasEntity(e Entity) bool {
	found := false
	r.archetypes.Iterate(func(_ uint64, a archetype) {
		if found {
			return
		}
		if a.entityIndexMap.Contains(e) {
			found = true
		}
	})
	return found
}

// findArchetype returns a pointer to the archetype currently holding e, or
// (nil, false) if e has no components yet.
func (r *Registry) findArchetype(e Entity) (*archetype, bool) {
	id, ok := r.locator.Get(e)
	if !ok {
		return nil, false
	}
	a, err := r.archetypes.PtrAt(id)
	if err != nil {
		return nil, false
	}
	return a, true
}

// AddComponent attaches a T component to e, migrating it to the archetype
// whose id is extended by T's type hash (spec §4.12). Fails with
// errs.ErrInvalidArgument if e already has a T component, or
// errs.ErrOutOfRange if e is not a live entity handle tracked anywhere and
// the caller is relying on pre-existing membership (AddComponent itself does
// not validate e's liveness beyond what findArchetype/addEntity need).
func AddComponent[T any](r *Registry, e Entity, v T) error {
	th := componentTypeHash[T]()

	srcArch, hadSrc := r.findArchetype(e)
	var srcID uint64
	if hadSrc {
		srcID = srcArch.id
		if srcArch.hasColumn(th) {
			return fmt.Errorf("%w: entity already has a component of this type", errs.ErrInvalidArgument)
		}
	}

	dstID := th
	if hadSrc {
		dstID = extendID(srcID, th)
	}

	if !r.archetypes.Contains(dstID) {
		dst := newArchetype(dstID)
		if hadSrc {
			dst.cloneStructureFrom(srcArch)
		}
		dst.columns.Insert(th, newTypedColumn[T]())
		r.archetypes.Insert(dstID, *dst)
		r.sink.IncArchetypeCreated()
		r.log.Debug("ecs: archetype created", zap.Uint64("id", dstID))
	}

	// The archetype map's backing vector may have just grown in the Insert
	// above, invalidating srcArch. Re-fetch both pointers fresh.
	dstArch, err := r.archetypes.PtrAt(dstID)
	if err != nil {
		return err
	}
	if hadSrc {
		srcArch, err = r.archetypes.PtrAt(srcID)
		if err != nil {
			return err
		}
	}

	row := dstArch.addEntity(e)
	if hadSrc {
		if err := dstArch.copyComponentsFrom(e, srcArch); err != nil {
			return err
		}
		if err := srcArch.removeEntity(e); err != nil {
			return err
		}
	}
	if err := setComponent[T](dstArch, row, v); err != nil {
		return err
	}
	r.locator.Insert(e, dstID)
	return nil
}

// AddComponents2 attaches an A and a B component to e in one atomic step
// (spec §4.12's add_components<Cs...>): the target archetype id is computed
// from both type hashes and every duplicate check runs before either
// component's column is touched, so a rejection leaves e exactly as it was
// on entry — no partial migration onto an archetype holding only one of the
// two. Fails with errs.ErrInvalidArgument if e already has an A or a B
// component.
func AddComponents2[A, B any](r *Registry, e Entity, a A, b B) error {
	thA := componentTypeHash[A]()
	thB := componentTypeHash[B]()

	srcArch, hadSrc := r.findArchetype(e)
	var srcID uint64
	if hadSrc {
		srcID = srcArch.id
		if srcArch.hasColumn(thA) || srcArch.hasColumn(thB) {
			return fmt.Errorf("%w: entity already has one of these component types", errs.ErrInvalidArgument)
		}
	}

	dstID := extendID(thA, thB)
	if hadSrc {
		dstID = extendID(extendID(srcID, thA), thB)
	}

	if !r.archetypes.Contains(dstID) {
		dst := newArchetype(dstID)
		if hadSrc {
			dst.cloneStructureFrom(srcArch)
		}
		dst.columns.Insert(thA, newTypedColumn[A]())
		dst.columns.Insert(thB, newTypedColumn[B]())
		r.archetypes.Insert(dstID, *dst)
		r.sink.IncArchetypeCreated()
		r.log.Debug("ecs: archetype created", zap.Uint64("id", dstID))
	}

	dstArch, err := r.archetypes.PtrAt(dstID)
	if err != nil {
		return err
	}
	if hadSrc {
		srcArch, err = r.archetypes.PtrAt(srcID)
		if err != nil {
			return err
		}
	}

	row := dstArch.addEntity(e)
	if hadSrc {
		if err := dstArch.copyComponentsFrom(e, srcArch); err != nil {
			return err
		}
		if err := srcArch.removeEntity(e); err != nil {
			return err
		}
	}
	if err := setComponent[A](dstArch, row, a); err != nil {
		return err
	}
	if err := setComponent[B](dstArch, row, b); err != nil {
		return err
	}
	r.locator.Insert(e, dstID)
	return nil
}

// AddComponents3 attaches A, B and C components to e in one atomic step, on
// the same terms as AddComponents2.
func AddComponents3[A, B, C any](r *Registry, e Entity, a A, b B, c C) error {
	thA := componentTypeHash[A]()
	thB := componentTypeHash[B]()
	thC := componentTypeHash[C]()

	srcArch, hadSrc := r.findArchetype(e)
	var srcID uint64
	if hadSrc {
		srcID = srcArch.id
		if srcArch.hasColumn(thA) || srcArch.hasColumn(thB) || srcArch.hasColumn(thC) {
			return fmt.Errorf("%w: entity already has one of these component types", errs.ErrInvalidArgument)
		}
	}

	dstID := extendID(extendID(thA, thB), thC)
	if hadSrc {
		dstID = extendID(extendID(extendID(srcID, thA), thB), thC)
	}

	if !r.archetypes.Contains(dstID) {
		dst := newArchetype(dstID)
		if hadSrc {
			dst.cloneStructureFrom(srcArch)
		}
		dst.columns.Insert(thA, newTypedColumn[A]())
		dst.columns.Insert(thB, newTypedColumn[B]())
		dst.columns.Insert(thC, newTypedColumn[C]())
		r.archetypes.Insert(dstID, *dst)
		r.sink.IncArchetypeCreated()
		r.log.Debug("ecs: archetype created", zap.Uint64("id", dstID))
	}

	dstArch, err := r.archetypes.PtrAt(dstID)
	if err != nil {
		return err
	}
	if hadSrc {
		srcArch, err = r.archetypes.PtrAt(srcID)
		if err != nil {
			return err
		}
	}

	row := dstArch.addEntity(e)
	if hadSrc {
		if err := dstArch.copyComponentsFrom(e, srcArch); err != nil {
			return err
		}
		if err := srcArch.removeEntity(e); err != nil {
			return err
		}
	}
	if err := setComponent[A](dstArch, row, a); err != nil {
		return err
	}
	if err := setComponent[B](dstArch, row, b); err != nil {
		return err
	}
	if err := setComponent[C](dstArch, row, c); err != nil {
		return err
	}
	r.locator.Insert(e, dstID)
	return nil
}

// RemoveComponent detaches e's T component, migrating it to the archetype
// with T's type hash XORed back out. Fails with errs.ErrInvalidArgument if e
// currently has no T component (including when e has no archetype at all).
func RemoveComponent[T any](r *Registry, e Entity) error {
	th := componentTypeHash[T]()
	srcArch, hadSrc := r.findArchetype(e)
	if !hadSrc || !srcArch.hasColumn(th) {
		return fmt.Errorf("%w: entity has no component of this type", errs.ErrInvalidArgument)
	}
	srcID := srcArch.id
	dstID := removeFromID(srcID, th)

	if dstID == entityOnlyArchetypeID() {
		// Removing the entity's only component leaves it archetype-less,
		// mirroring the "e may belong to no archetype" case AddEntity
		// describes; there is no archetype to migrate into.
		if err := srcArch.removeEntity(e); err != nil {
			return err
		}
		r.locator.Erase(e)
		return nil
	}

	if !r.archetypes.Contains(dstID) {
		dst := newArchetype(dstID)
		srcArch.columns.Iterate(func(colTH uint64, col column) {
			if colTH != entityColumnHash && colTH != th {
				dst.columns.Insert(colTH, col.cloneEmpty())
			}
		})
		r.archetypes.Insert(dstID, *dst)
		r.sink.IncArchetypeCreated()
		r.log.Debug("ecs: archetype created", zap.Uint64("id", dstID))
	}

	dstArch, err := r.archetypes.PtrAt(dstID)
	if err != nil {
		return err
	}
	srcArch, err = r.archetypes.PtrAt(srcID)
	if err != nil {
		return err
	}

	dstArch.addEntity(e)
	if err := dstArch.copyComponentsFrom(e, srcArch); err != nil {
		return err
	}
	if err := srcArch.removeEntity(e); err != nil {
		return err
	}
	r.locator.Insert(e, dstID)
	return nil
}

// entityOnlyArchetypeID is the (nonexistent) archetype id an entity with
// zero components would have; 0 is never produced by extendID over a
// nonzero type hash XOR chain starting from a single component; used only as
// RemoveComponent's signal that the entity should become archetype-less.
func entityOnlyArchetypeID() uint64 { return 0 }

// HasComponent reports whether e currently has a T component.
func HasComponent[T any](r *Registry, e Entity) bool {
	a, ok := r.findArchetype(e)
	if !ok {
		return false
	}
	return a.hasColumn(componentTypeHash[T]())
}

// GetComponent reads e's T component. Fails with errs.ErrOutOfRange if e has
// no archetype or is not in its own archetype's index (the latter should not
// happen for a consistently used registry); errs.ErrInvalidArgument if e's
// archetype has no T column.
func GetComponent[T any](r *Registry, e Entity) (T, error) {
	var zero T
	a, ok := r.findArchetype(e)
	if !ok {
		return zero, fmt.Errorf("%w: entity has no components", errs.ErrOutOfRange)
	}
	return getComponent[T](a, e)
}

// RemoveEntity deletes e entirely, from whichever archetype holds it.
func (r *Registry) RemoveEntity(e Entity) error {
	a, ok := r.findArchetype(e)
	if !ok {
		return fmt.Errorf("%w: entity has no archetype", errs.ErrInvalidArgument)
	}
	if err := a.removeEntity(e); err != nil {
		return err
	}
	r.locator.Erase(e)
	return nil
}

// Clear empties the registry and advances its generation, so any Entity
// handle minted before the call reads as invalid in spirit (the registry no
// longer tracks it) even though packed.Handle equality is purely structural.
func (r *Registry) Clear() {
	r.archetypes = hashtable.NewDenseMap[uint64, archetype]()
	r.locator = hashtable.New[Entity, uint64]()
	r.nextEntityID = 0
	r.currentGeneration++
	r.sink.SetEntityCount(0)
	r.sink.SetArchetypeCount(0)
}

// ArchetypeCount returns the number of distinct archetypes that currently
// hold at least one entity. Archetypes emptied by migration stay in the
// archetype map but are not counted.
func (r *Registry) ArchetypeCount() int {
	n := 0
	r.archetypes.Iterate(func(_ uint64, a archetype) {
		if a.size() > 0 {
			n++
		}
	})
	return n
}

// NewEntity is exported so callers constructing handles for tests (and the
// view package's filtering helpers) don't need access to Registry internals.
func NewEntity(generation, id uint32, valueWidth uint8) (Entity, error) {
	return newEntityHandle(generation, id, valueWidth)
}
