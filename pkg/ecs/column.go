package ecs

import (
	"fmt"

	"github.com/Voskan/ccl/internal/errs"
	"github.com/Voskan/ccl/pkg/pagedvector"
)

// column is the erased component column (spec §3.11): every archetype holds
// one per component type (plus the implicit Entity column), addressed only
// through this interface so the archetype itself never names a concrete
// component type. A typedColumn[T] is the only implementation; the interface
// exists purely to erase T.
type column interface {
	size() int
	pushBackZero()
	pushBackFrom(src column, srcRow int) error
	get(row int) (any, error)
	ptrAny(row int) (any, error)
	set(row int, v any) error
	move(from, to int) error
	moveFrom(src column, srcRow, dstRow int) error
	erase(row int) error
	cloneEmpty() column
}

// typedColumn is a paged_vector[T] wearing the column interface. Paging
// matters here as much as it does for handlemgr: archetypes hand out entity
// rows that outlive intervening pushes on the same column.
type typedColumn[T any] struct {
	data *pagedvector.PagedVector[T]
}

func newTypedColumn[T any]() *typedColumn[T] {
	return &typedColumn[T]{data: pagedvector.New[T]()}
}

func (c *typedColumn[T]) size() int { return c.data.Len() }

func (c *typedColumn[T]) pushBackZero() {
	var zero T
	c.data.PushBack(zero)
}

func (c *typedColumn[T]) pushBackFrom(src column, srcRow int) error {
	v, err := src.get(srcRow)
	if err != nil {
		return err
	}
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: column type mismatch on push_back_from", errs.ErrInvalidArgument)
	}
	c.data.PushBack(tv)
	return nil
}

func (c *typedColumn[T]) get(row int) (any, error) {
	p, err := c.data.At(row)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// ptrAny returns a pointer to the stored T, wrapped as any, so a generic
// caller that knows its own concrete type can recover a real *T and mutate
// the paged vector's backing storage in place — the basis for View's
// write-through iteration.
func (c *typedColumn[T]) ptrAny(row int) (any, error) {
	p, err := c.data.At(row)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (c *typedColumn[T]) set(row int, v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: column type mismatch on set", errs.ErrInvalidArgument)
	}
	p, err := c.data.At(row)
	if err != nil {
		return err
	}
	*p = tv
	return nil
}

func (c *typedColumn[T]) move(from, to int) error {
	v, err := c.data.At(from)
	if err != nil {
		return err
	}
	val := *v
	p, err := c.data.At(to)
	if err != nil {
		return err
	}
	*p = val
	return nil
}

func (c *typedColumn[T]) moveFrom(src column, srcRow, dstRow int) error {
	v, err := src.get(srcRow)
	if err != nil {
		return err
	}
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: column type mismatch on move_from", errs.ErrInvalidArgument)
	}
	p, err := c.data.At(dstRow)
	if err != nil {
		return err
	}
	*p = tv
	return nil
}

func (c *typedColumn[T]) erase(row int) error {
	return c.data.Erase(row, row+1)
}

func (c *typedColumn[T]) cloneEmpty() column {
	return newTypedColumn[T]()
}
