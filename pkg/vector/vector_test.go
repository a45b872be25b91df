package vector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestPushBackGrowthIsPowerOfTwo(t *testing.T) {
	v := NewWithMinCapacity[int](1)
	for i := 0; i < 17; i++ {
		v.PushBack(i)
	}
	require.Equal(t, 17, v.Len())
	require.Equal(t, 32, v.Cap(), "capacity must be the smallest power of two >= 17")
}

func TestReserveNoOpWhenSufficient(t *testing.T) {
	v := NewWithMinCapacity[int](8)
	v.Reserve(4)
	require.Equal(t, 8, v.Cap())
}

func TestInsertAndErase(t *testing.T) {
	v := New[string]()
	v.PushBack("a")
	v.PushBack("c")
	require.NoError(t, v.Insert(1, "b"))
	require.Equal(t, []string{"a", "b", "c"}, v.Slice())

	require.NoError(t, v.Erase(1, 2))
	require.Equal(t, []string{"a", "c"}, v.Slice())
}

func TestInsertRange(t *testing.T) {
	v := New[int]()
	v.PushBack(1)
	v.PushBack(4)
	require.NoError(t, v.InsertRange(1, []int{2, 3}))
	require.Equal(t, []int{1, 2, 3, 4}, v.Slice())
}

func TestAtOutOfRange(t *testing.T) {
	v := New[int]()
	_, err := v.At(0)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestResizeGrowAndShrink(t *testing.T) {
	v := New[int]()
	v.Resize(3)
	require.Equal(t, 3, v.Len())
	require.Equal(t, []int{0, 0, 0}, v.Slice())

	v.ResizeWithValue(5, 9)
	require.Equal(t, []int{0, 0, 0, 9, 9}, v.Slice())

	v.Resize(1)
	require.Equal(t, []int{0}, v.Slice())
}

func TestPtrViewFromOffset(t *testing.T) {
	v := New[int]()
	for i := 0; i < 5; i++ {
		v.PushBack(i)
	}
	sub, err := v.Ptr(2)
	require.NoError(t, err)
	require.Equal(t, []int{2, 3, 4}, sub)

	sub, err = v.Ptr(5)
	require.NoError(t, err)
	require.Nil(t, sub)

	_, err = v.Ptr(6)
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestClearAndDestroy(t *testing.T) {
	v := New[int]()
	v.PushBack(1)
	v.Clear()
	require.Equal(t, 0, v.Len())
	require.NotZero(t, v.Cap())

	v.Destroy()
	require.Equal(t, 0, v.Len())
	require.Equal(t, 0, v.Cap())
}
