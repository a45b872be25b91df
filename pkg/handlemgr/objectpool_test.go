package handlemgr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type particle struct{ hp int }

func TestObjectPoolAcquireResetsToDefault(t *testing.T) {
	p := NewObjectPool[widgetTag](particle{hp: 100})
	h := p.Acquire()

	v, err := p.Get(h)
	require.NoError(t, err)
	require.Equal(t, particle{hp: 100}, *v)

	v.hp = 5
	got, err := p.Get(h)
	require.NoError(t, err)
	require.Equal(t, 5, got.hp, "Get returns a live pointer into the backing storage")
}

func TestObjectPoolReleaseResetsSlotToDefault(t *testing.T) {
	p := NewObjectPool[widgetTag](particle{hp: 100})
	h := p.Acquire()
	require.NoError(t, p.Set(h, particle{hp: 1}))

	require.NoError(t, p.Release(h))
	require.False(t, p.IsValid(h))

	h2 := p.Acquire()
	v, err := p.Get(h2)
	require.NoError(t, err)
	require.Equal(t, particle{hp: 100}, *v, "reacquired slot resets to the default value")
}

func TestObjectPoolSetRejectsInvalidHandle(t *testing.T) {
	p := NewObjectPool[widgetTag](particle{})
	h := p.Acquire()
	require.NoError(t, p.Release(h))
	require.Error(t, p.Set(h, particle{hp: 9}))
}

func TestObjectPoolReleaseRejectsInvalidHandle(t *testing.T) {
	p := NewObjectPool[widgetTag](particle{})
	h := p.Acquire()
	require.NoError(t, p.Release(h))
	require.Error(t, p.Release(h))
}
