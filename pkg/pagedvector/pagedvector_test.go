package pagedvector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestPointerStabilityAcrossGrowth(t *testing.T) {
	pv := NewWithPageSize[int](4)
	const n = 10000

	ptrs := make([]*int, n)
	for i := 0; i < n; i++ {
		pv.PushBack(i)
		p, err := pv.At(i)
		require.NoError(t, err)
		ptrs[i] = p
	}

	for i := 0; i < n; i++ {
		require.Equal(t, i, *ptrs[i], "pointer taken at push time must still read element %d after %d total pushes", i, n)
	}

	// Mutate through a stale pointer and confirm it still targets the live
	// slot, even though many pages were allocated in between.
	*ptrs[0] = -1
	v, err := pv.At(0)
	require.NoError(t, err)
	require.Equal(t, -1, *v)
}

func TestInsertPreservesUnshiftedAddresses(t *testing.T) {
	pv := NewWithPageSize[int](4)
	for i := 0; i < 8; i++ {
		pv.PushBack(i)
	}
	pBefore, _ := pv.At(2)

	require.NoError(t, pv.Insert(5, 99))
	require.Equal(t, 2, *pBefore, "element at index 2 is before the insertion point and must keep its address/value")

	v, err := pv.At(5)
	require.NoError(t, err)
	require.Equal(t, 99, *v)
	require.Equal(t, 9, pv.Len())
}

func TestEraseShiftsSuffixNotPages(t *testing.T) {
	pv := NewWithPageSize[int](4)
	for i := 0; i < 8; i++ {
		pv.PushBack(i)
	}
	require.NoError(t, pv.Erase(2, 4))
	require.Equal(t, 6, pv.Len())
	v, _ := pv.At(2)
	require.Equal(t, 4, *v)
}

func TestEmplaceAtDoesNotShift(t *testing.T) {
	pv := NewWithPageSize[int](4)
	for i := 0; i < 4; i++ {
		pv.PushBack(i)
	}
	require.NoError(t, pv.EmplaceAt(1, 100))
	v, _ := pv.At(1)
	require.Equal(t, 100, *v)
	require.Equal(t, 4, pv.Len())
}

func TestAtOutOfRange(t *testing.T) {
	pv := New[int]()
	_, err := pv.At(0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestDefaultPageSizeDerivedFromElementSize(t *testing.T) {
	pv := New[[256]byte]()
	require.Equal(t, DefaultPageBytes/256, pv.PageSize())
}
