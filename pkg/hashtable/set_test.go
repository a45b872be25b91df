package hashtable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetInsertContainsErase(t *testing.T) {
	s := NewSet[int]()
	require.False(t, s.Contains(1))

	s.Insert(1)
	s.Insert(2)
	s.Insert(1) // idempotent
	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(1))
	require.True(t, s.Contains(2))

	require.True(t, s.Erase(1))
	require.False(t, s.Contains(1))
	require.False(t, s.Erase(1), "erase of an absent member reports false")
}

func TestSetIterateVisitsEveryMember(t *testing.T) {
	s := NewSet[string]()
	want := map[string]bool{"a": true, "b": true, "c": true}
	for k := range want {
		s.Insert(k)
	}
	seen := map[string]bool{}
	s.Iterate(func(k string) { seen[k] = true })
	require.Equal(t, want, seen)
}

func TestSetGrowsAcrossManyInserts(t *testing.T) {
	s := NewSet[int]()
	const n = 5000
	for i := 0; i < n; i++ {
		s.Insert(i)
	}
	require.Equal(t, n, s.Len())
	for i := 0; i < n; i++ {
		require.True(t, s.Contains(i))
	}
}
