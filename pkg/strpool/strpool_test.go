package strpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternReturnsStableHandle(t *testing.T) {
	p := New()
	h1 := p.Intern("alpha")
	h2 := p.Intern("alpha")
	require.Equal(t, h1, h2)
	require.Equal(t, 1, p.Len())
}

func TestInternDistinctStrings(t *testing.T) {
	p := New()
	h1 := p.Intern("alpha")
	h2 := p.Intern("beta")
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, p.Len())
}

func TestLookupRoundTrip(t *testing.T) {
	p := New()
	h := p.Intern("gamma")
	s, ok := p.Lookup(h)
	require.True(t, ok)
	require.Equal(t, "gamma", s)
}

func TestLookupMissingHandle(t *testing.T) {
	p := New()
	_, ok := p.Lookup(0xdeadbeef)
	require.False(t, ok)
}
