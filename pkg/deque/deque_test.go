package deque

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestCenterPolicyPushSequence(t *testing.T) {
	d := New[int](PolicyCenter)

	// Push back first forces a non-centered growth (capacityBack==0 at
	// cap==0); the front push that follows finds no room before the first
	// element and grows again, and the last back push fits in place.
	d.PushBack(1)
	d.PushFront(0)
	d.PushBack(2)

	require.Equal(t, 3, d.Len())
	v0, _ := d.At(0)
	v1, _ := d.At(1)
	v2, _ := d.At(2)
	require.Equal(t, 0, *v0)
	require.Equal(t, 1, *v1)
	require.Equal(t, 2, *v2)
}

func TestPopFrontBackResetsOnEmpty(t *testing.T) {
	d := New[int](PolicyCenter)
	d.PushBack(1)
	_, err := d.PopFront()
	require.NoError(t, err)
	require.Equal(t, 0, d.Len())
	require.Equal(t, d.First(), d.Last(), "reset must collapse first==last")
	require.Equal(t, d.Cap()/2, d.First())
}

func TestBeginPolicyResetsToZero(t *testing.T) {
	d := New[int](PolicyBegin)
	d.PushBack(1)
	_, err := d.PopBack()
	require.NoError(t, err)
	require.Equal(t, 0, d.First())
}

func TestFrontBackErrorsWhenEmpty(t *testing.T) {
	d := New[int](PolicyCenter)
	_, err := d.Front()
	require.ErrorIs(t, err, errs.ErrOutOfRange)
	_, err = d.Back()
	require.ErrorIs(t, err, errs.ErrOutOfRange)
}

func TestPushFrontGrowsCentered(t *testing.T) {
	d := New[int](PolicyCenter)
	for i := 0; i < 5; i++ {
		d.PushFront(i)
	}
	require.Equal(t, 5, d.Len())
	v, _ := d.At(0)
	require.Equal(t, 4, *v, "last PushFront call is the new front")
}
