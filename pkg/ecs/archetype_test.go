package ecs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustEntity(t *testing.T, gen, id uint32) Entity {
	t.Helper()
	e, err := NewEntity(gen, id, DefaultEntityValueWidth)
	require.NoError(t, err)
	return e
}

func TestArchetypeAddEntityDefaultConstructsColumns(t *testing.T) {
	a := newArchetype(componentTypeHash[position]())
	a.columns.Insert(componentTypeHash[position](), newTypedColumn[position]())

	e := mustEntity(t, 0, 1)
	row := a.addEntity(e)
	require.Equal(t, 0, row)
	require.Equal(t, 1, a.size())

	got, err := getComponent[position](a, e)
	require.NoError(t, err)
	require.Equal(t, position{}, got, "newly added row starts at the zero value")
}

func TestArchetypeRemoveEntitySwapsLastRow(t *testing.T) {
	a := newArchetype(componentTypeHash[position]())
	a.columns.Insert(componentTypeHash[position](), newTypedColumn[position]())

	e1 := mustEntity(t, 0, 1)
	e2 := mustEntity(t, 0, 2)
	e3 := mustEntity(t, 0, 3)
	a.addEntity(e1)
	a.addEntity(e2)
	a.addEntity(e3)
	require.NoError(t, setComponent(a, 0, position{x: 1}))
	require.NoError(t, setComponent(a, 1, position{x: 2}))
	require.NoError(t, setComponent(a, 2, position{x: 3}))

	require.NoError(t, a.removeEntity(e1))
	require.Equal(t, 2, a.size())

	row, err := a.rowOf(e3)
	require.NoError(t, err)
	require.Equal(t, 0, row, "the last row (e3) is swapped into the removed slot")

	p3, err := getComponent[position](a, e3)
	require.NoError(t, err)
	require.Equal(t, position{x: 3}, p3)

	p2, err := getComponent[position](a, e2)
	require.NoError(t, err)
	require.Equal(t, position{x: 2}, p2)
}

func TestArchetypeRemoveLastRowNoSwap(t *testing.T) {
	a := newArchetype(componentTypeHash[position]())
	a.columns.Insert(componentTypeHash[position](), newTypedColumn[position]())

	e1 := mustEntity(t, 0, 1)
	e2 := mustEntity(t, 0, 2)
	a.addEntity(e1)
	a.addEntity(e2)

	require.NoError(t, a.removeEntity(e2))
	require.Equal(t, 1, a.size())
	row, err := a.rowOf(e1)
	require.NoError(t, err)
	require.Equal(t, 0, row)
}

func TestArchetypeCloneStructureAndCopyComponents(t *testing.T) {
	src := newArchetype(componentTypeHash[position]())
	src.columns.Insert(componentTypeHash[position](), newTypedColumn[position]())

	e := mustEntity(t, 0, 1)
	src.addEntity(e)
	require.NoError(t, setComponent(src, 0, position{x: 7, y: 8}))

	dstID := extendID(src.id, componentTypeHash[velocity]())
	dst := newArchetype(dstID)
	dst.cloneStructureFrom(src)
	dst.columns.Insert(componentTypeHash[velocity](), newTypedColumn[velocity]())

	require.True(t, dst.hasColumn(componentTypeHash[position]()))
	require.True(t, dst.hasColumn(componentTypeHash[velocity]()))

	dst.addEntity(e)
	require.NoError(t, dst.copyComponentsFrom(e, src))

	p, err := getComponent[position](dst, e)
	require.NoError(t, err)
	require.Equal(t, position{x: 7, y: 8}, p)
}

func TestExtendAndRemoveFromIDAreInverses(t *testing.T) {
	base := componentTypeHash[position]()
	th := componentTypeHash[velocity]()
	extended := extendID(base, th)
	require.NotEqual(t, base, extended)
	require.Equal(t, base, removeFromID(extended, th))
}

func TestComponentHashesExcludesEntityColumn(t *testing.T) {
	a := newArchetype(componentTypeHash[position]())
	a.columns.Insert(componentTypeHash[position](), newTypedColumn[position]())
	hashes := a.componentHashes()
	require.Equal(t, []uint64{componentTypeHash[position]()}, hashes)
}
