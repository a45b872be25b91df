package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct{ n int }

func TestAcquireGrowsOnFirstUse(t *testing.T) {
	p := New[widget]()
	require.Equal(t, 0, p.Len())
	w := p.Acquire()
	require.NotNil(t, w)
	require.Greater(t, p.Len(), 0)
	require.Equal(t, p.Len()-1, p.FreeCount())
}

func TestReleaseReturnsToFreeList(t *testing.T) {
	p := New[widget]()
	w := p.Acquire()
	w.n = 7
	p.Release(w)
	require.Equal(t, p.Len(), p.FreeCount())

	w2 := p.Acquire()
	require.Equal(t, 7, w2.n, "release does not reset the value; reacquire sees whatever was left")
}

func TestOnGrowCallback(t *testing.T) {
	grows := 0
	p := New[widget]()
	p.SetOnGrow(func(pages int) { grows++ })

	// DefaultPageBytes(4096) / sizeof(widget)(8) == 512 slots per page;
	// acquiring one more than that forces a second page.
	const pageSize = 512
	for i := 0; i < pageSize+1; i++ {
		p.Acquire()
	}
	require.Equal(t, 2, grows)
}
