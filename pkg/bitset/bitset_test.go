package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestSetTestAcrossClusterBoundary(t *testing.T) {
	b := NewWithSize(130)
	require.NoError(t, b.Set(0, true))
	require.NoError(t, b.Set(63, true))
	require.NoError(t, b.Set(64, true))
	require.NoError(t, b.Set(129, true))

	for _, i := range []int{0, 63, 64, 129} {
		v, err := b.Test(i)
		require.NoError(t, err)
		require.True(t, v, "bit %d should be set", i)
	}
	v, err := b.Test(1)
	require.NoError(t, err)
	require.False(t, v)
}

func TestOutOfRange(t *testing.T) {
	b := NewWithSize(4)
	_, err := b.Test(4)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestPushBackAndLast(t *testing.T) {
	b := New()
	_, err := b.Last()
	require.ErrorIs(t, err, errs.ErrOutOfRange)

	idx := b.PushBack(true)
	require.Equal(t, 0, idx)
	last, err := b.Last()
	require.NoError(t, err)
	require.True(t, last)

	b.PushBack(false)
	last, _ = b.Last()
	require.False(t, last)
}

func TestPopCount(t *testing.T) {
	b := NewWithSize(70)
	for _, i := range []int{0, 1, 2, 65, 69} {
		require.NoError(t, b.Set(i, true))
	}
	require.Equal(t, 5, b.PopCount())
}

func TestClearKeepsSize(t *testing.T) {
	b := NewWithSize(10)
	require.NoError(t, b.Set(3, true))
	b.Clear()
	require.Equal(t, 10, b.Size())
	require.Equal(t, 0, b.PopCount())
}
