package ecs

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
)

// setComponent writes v into T's column at row, the final step of migrating
// or updating an entity's component (spec §4.12).
func setComponent[T any](a *archetype, row int, v T) error {
	th := componentTypeHash[T]()
	col, ok := a.columns.Get(th)
	if !ok {
		return fmt.Errorf("%w: archetype has no column for this component type", errs.ErrInvalidArgument)
	}
	return col.set(row, v)
}

// getComponent reads T's column at e's row. Fails with errs.ErrOutOfRange if
// e is not a member of a, or errs.ErrInvalidArgument if a has no column for
// T.
func getComponent[T any](a *archetype, e Entity) (T, error) {
	var zero T
	row, err := a.rowOf(e)
	if err != nil {
		return zero, err
	}
	th := componentTypeHash[T]()
	col, ok := a.columns.Get(th)
	if !ok {
		return zero, fmt.Errorf("%w: archetype has no column for this component type", errs.ErrInvalidArgument)
	}
	v, err := col.get(row)
	if err != nil {
		return zero, err
	}
	tv, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: column type mismatch", errs.ErrInvalidArgument)
	}
	return tv, nil
}
