package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Voskan/ccl/internal/errs"
)

func TestDefaultAllocateAlignedAndTracked(t *testing.T) {
	d := NewDefault()
	p, err := d.Allocate(64, 16, 0)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Zero(t, uintptr(p)%16)
	require.True(t, d.Owns(p))

	info, ok := d.AllocationInfo(p)
	require.True(t, ok)
	require.Equal(t, uintptr(64), info.Size)

	d.Deallocate(p)
	require.False(t, d.Owns(p))
}

func TestAllocateTTypedHelper(t *testing.T) {
	d := NewDefault()
	s, err := AllocateT[uint64](d, 4, 0)
	require.NoError(t, err)
	require.Len(t, s, 4)
	s[0] = 0xdeadbeef
	require.Equal(t, uint64(0xdeadbeef), s[0])
	DeallocateT(d, s)
}

func TestNullAlwaysFails(t *testing.T) {
	var n Null
	_, err := n.Allocate(8, 8, 0)
	require.ErrorIs(t, err, errs.ErrAllocFailed)
	require.False(t, n.Owns(nil))
}

func TestLocalBumpAllocatorThrowPolicy(t *testing.T) {
	l := NewLocal(32, PolicyThrow)
	p1, err := l.Allocate(16, 8, 0)
	require.NoError(t, err)
	require.True(t, l.Owns(p1))

	_, err = l.Allocate(32, 8, 0)
	require.ErrorIs(t, err, errs.ErrAllocFailed)

	l.Reset()
	p2, err := l.Allocate(16, 8, 0)
	require.NoError(t, err)
	require.Equal(t, p1, p2, "reset rewinds the bump pointer to the start")
}

func TestLocalBumpAllocatorReturnNullPolicy(t *testing.T) {
	l := NewLocal(8, PolicyReturnNull)
	p, err := l.Allocate(64, 8, 0)
	require.NoError(t, err)
	require.Nil(t, p)
}

func TestCompositeFallsBackToB(t *testing.T) {
	a := NewLocal(8, PolicyReturnNull)
	b := NewDefault()
	c, err := NewComposite(a, b)
	require.NoError(t, err)

	p, err := c.Allocate(64, 8, 0)
	require.NoError(t, err)
	require.NotNil(t, p)
	require.True(t, b.Owns(p))
	require.True(t, c.Owns(p))

	c.Deallocate(p)
	require.False(t, b.Owns(p))
}

func TestCompositeRequiresOwnershipFeatureOnA(t *testing.T) {
	_, err := NewComposite(Null{}, NewDefault())
	require.Error(t, err, "Null advertises no features at all")
}
