package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	_, err := New[int](0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestWraparoundSequence(t *testing.T) {
	r, err := New[int](4)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		require.NoError(t, r.EnqueueBack(i))
	}
	require.True(t, r.IsFull())
	require.ErrorIs(t, r.EnqueueBack(99), errs.ErrOutOfRange)

	v, err := r.DequeueFront()
	require.NoError(t, err)
	require.Equal(t, 0, v)

	// readIndex has moved to physical slot 1; enqueueing again wraps the
	// underlying array into the freed physical slot 0, which is logical
	// index 3.
	require.NoError(t, r.EnqueueBack(4))
	for i, want := range []int{1, 2, 3, 4} {
		got, err := r.At(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestEnqueueFrontAndDequeueBack(t *testing.T) {
	r, err := New[int](3)
	require.NoError(t, err)
	require.NoError(t, r.EnqueueBack(1))
	require.NoError(t, r.EnqueueFront(0))
	require.NoError(t, r.EnqueueBack(2))

	v, err := r.DequeueBack()
	require.NoError(t, err)
	require.Equal(t, 2, v)

	v, err = r.DequeueFront()
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestDequeueEmptyFails(t *testing.T) {
	r, _ := New[int](1)
	_, err := r.DequeueFront()
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	_, err = r.DequeueBack()
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}
