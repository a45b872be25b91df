package ecs

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/hashtable"
)

// archetype is a contiguous table of entities sharing exactly one component
// set (spec §3.11). Every field below is itself a pointer or an interface,
// so copying an archetype value (as registry.archetypes does internally on
// every DenseMap growth) only copies the handle to the underlying storage,
// never the storage itself — entity rows and column data stay put even
// though the *archetype wrapper's own address can move.
type archetype struct {
	id             uint64
	columns        *hashtable.Table[uint64, column]
	entityIndexMap *hashtable.DenseMap[Entity, uint32]
}

func newArchetype(id uint64) *archetype {
	a := &archetype{
		id:             id,
		columns:        hashtable.New[uint64, column](),
		entityIndexMap: hashtable.NewDenseMap[Entity, uint32](),
	}
	a.columns.Insert(entityColumnHash, newTypedColumn[Entity]())
	return a
}

// cloneStructureFrom builds a fresh, empty set of columns matching src's
// component columns (not including the Entity column, which newArchetype
// already installed) — used when migrating an entity to a strictly larger
// archetype.
func (a *archetype) cloneStructureFrom(src *archetype) {
	src.columns.Iterate(func(th uint64, col column) {
		if th == entityColumnHash {
			return
		}
		a.columns.Insert(th, col.cloneEmpty())
	})
}

func (a *archetype) hasColumn(typeHash uint64) bool {
	_, ok := a.columns.Get(typeHash)
	return ok
}

func (a *archetype) entityColumn() column {
	c, _ := a.columns.Get(entityColumnHash)
	return c
}

// size returns the number of entities currently in the archetype.
func (a *archetype) size() int { return a.entityIndexMap.Len() }

// rowOf returns e's row. Fails with errs.ErrOutOfRange if e is not a member.
func (a *archetype) rowOf(e Entity) (int, error) {
	row, err := a.entityIndexMap.At(e)
	if err != nil {
		return 0, err
	}
	return int(row), nil
}

// addEntity appends e as a new row, default-constructing every component
// column and returning the row index — spec §4.11.
func (a *archetype) addEntity(e Entity) int {
	ec := a.entityColumn()
	row := ec.size()
	ec.pushBackZero()
	_ = a.setEntityAt(row, e)
	a.columns.Iterate(func(th uint64, col column) {
		if th != entityColumnHash {
			col.pushBackZero()
		}
	})
	a.entityIndexMap.Insert(e, uint32(row))
	return row
}

func (a *archetype) setEntityAt(row int, e Entity) error {
	return a.entityColumn().set(row, e)
}

// removeEntity deletes e, swapping the last row into e's former row (across
// every column, entity column included) when e was not already last — spec
// §4.11. Fails with errs.ErrOutOfRange if e is not a member.
func (a *archetype) removeEntity(e Entity) error {
	row, err := a.rowOf(e)
	if err != nil {
		return err
	}
	last := a.entityColumn().size() - 1
	if row == last {
		var firstErr error
		a.columns.Iterate(func(_ uint64, col column) {
			if err := col.erase(last); err != nil && firstErr == nil {
				firstErr = err
			}
		})
		a.entityIndexMap.Erase(e)
		return firstErr
	}

	lastVal, err := a.entityColumn().get(last)
	if err != nil {
		return err
	}
	eLast, ok := lastVal.(Entity)
	if !ok {
		return fmt.Errorf("%w: entity column holds non-Entity value", errs.ErrInvalidArgument)
	}

	var firstErr error
	a.columns.Iterate(func(_ uint64, col column) {
		if err := col.move(last, row); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := col.erase(last); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	a.entityIndexMap.Insert(eLast, uint32(row))
	a.entityIndexMap.Erase(e)
	return firstErr
}

// copyComponentsFrom copies every component e had in src, for every column
// both archetypes share, into this archetype's row for e — spec §4.12's
// migration step. e must already be present in both archetypes.
func (a *archetype) copyComponentsFrom(e Entity, src *archetype) error {
	srcRow, err := src.rowOf(e)
	if err != nil {
		return err
	}
	dstRow, err := a.rowOf(e)
	if err != nil {
		return err
	}
	var firstErr error
	src.columns.Iterate(func(th uint64, srcCol column) {
		if th == entityColumnHash {
			return
		}
		dstCol, ok := a.columns.Get(th)
		if !ok {
			return
		}
		if err := dstCol.moveFrom(srcCol, srcRow, dstRow); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

// componentHashes returns the archetype's component type hashes, excluding
// the implicit Entity column.
func (a *archetype) componentHashes() []uint64 {
	var hs []uint64
	a.columns.Iterate(func(th uint64, _ column) {
		if th != entityColumnHash {
			hs = append(hs, th)
		}
	})
	return hs
}

// extendID XORs an additional component's type hash into an existing
// archetype id (spec §4.11 extend_id).
func extendID(base uint64, typeHash uint64) uint64 { return base ^ typeHash }

// removeFromID XORs a component's type hash back out of an archetype id —
// XOR is its own inverse, so this is the same operation as extendID.
func removeFromID(base uint64, typeHash uint64) uint64 { return base ^ typeHash }
