package hashtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDenseMapInsertAndAt(t *testing.T) {
	m := NewDenseMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)

	v, err := m.At("a")
	require.NoError(t, err)
	require.Equal(t, 1, v)
	require.Equal(t, 2, m.Len())
}

func TestDenseMapEmplaceRejectsDuplicate(t *testing.T) {
	m := NewDenseMap[string, int]()
	require.NoError(t, m.Emplace("a", 1))
	require.Error(t, m.Emplace("a", 2))
}

func TestDenseMapGetOrInsert(t *testing.T) {
	m := NewDenseMap[string, int]()
	p := m.GetOrInsert("a")
	*p = 5
	v, _ := m.At("a")
	require.Equal(t, 5, v)
}

func TestDenseMapEraseReindexes(t *testing.T) {
	m := NewDenseMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	require.True(t, m.Erase("a"))
	require.Equal(t, 2, m.Len())

	// b and c must still resolve to their own values after the ordered
	// erase shifted every greater dense index down by one.
	vb, err := m.At("b")
	require.NoError(t, err)
	require.Equal(t, 2, vb)

	vc, err := m.At("c")
	require.NoError(t, err)
	require.Equal(t, 3, vc)
}

func TestDenseMapSwapErase(t *testing.T) {
	m := NewDenseMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	require.True(t, m.SwapErase("a"))
	require.Equal(t, 2, m.Len())

	vb, err := m.At("b")
	require.NoError(t, err)
	require.Equal(t, 2, vb)
	vc, err := m.At("c")
	require.NoError(t, err)
	require.Equal(t, 3, vc)
}

func TestDenseMapPtrAtTracksGrowth(t *testing.T) {
	m := NewDenseMap[int, int]()
	m.Insert(1, 100)
	p, err := m.PtrAt(1)
	require.NoError(t, err)
	require.Equal(t, 100, *p)

	for i := 2; i < 40; i++ {
		m.Insert(i, i)
	}
	p2, err := m.PtrAt(1)
	require.NoError(t, err)
	require.Equal(t, 100, *p2)
}

func TestDenseMapIterate(t *testing.T) {
	m := NewDenseMap[int, int]()
	for i := 0; i < 5; i++ {
		m.Insert(i, i*10)
	}
	seen := map[int]int{}
	m.Iterate(func(k, v int) { seen[k] = v })
	require.Len(t, seen, 5)
	require.Equal(t, 40, seen[4])
}

func TestSetBasics(t *testing.T) {
	s := NewSet[string]()
	s.Insert("x")
	require.True(t, s.Contains("x"))
	require.False(t, s.Contains("y"))
	require.True(t, s.Erase("x"))
	require.False(t, s.Contains("x"))
}
