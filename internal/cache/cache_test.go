package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetPut(t *testing.T) {
	s := New[string](10)

	_, ok := s.Get("missing")
	require.False(t, ok)

	s.Put("a", "one")
	got, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, "one", got)
}

func TestStore_CapacityBound(t *testing.T) {
	s := New[int](5)

	for i := 0; i < 20; i++ {
		s.Put(fmt.Sprintf("key-%d", i), i)
		assert.LessOrEqual(t, s.Len(), 5)
	}
	assert.Equal(t, 5, s.Len())
}

func TestStore_EvictsSingleOldestEntry(t *testing.T) {
	s := New[int](3)
	s.Put("a", 1)
	s.Put("b", 2)
	s.Put("c", 3)

	s.Put("d", 4)

	_, ok := s.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
	for _, key := range []string{"b", "c", "d"} {
		_, ok := s.Get(key)
		assert.True(t, ok, "entry %s should survive", key)
	}
	assert.Equal(t, 3, s.Len())
}

func TestStore_GetDoesNotRefreshPosition(t *testing.T) {
	s := New[int](2)
	s.Put("a", 1)
	s.Put("b", 2)

	// A read must not rescue "a" from eviction; this is not an LRU.
	_, ok := s.Get("a")
	require.True(t, ok)

	s.Put("c", 3)
	_, ok = s.Get("a")
	assert.False(t, ok)
	_, ok = s.Get("b")
	assert.True(t, ok)
}

func TestStore_ReplaceKeepsPosition(t *testing.T) {
	s := New[int](2)
	s.Put("a", 1)
	s.Put("b", 2)

	s.Put("a", 10)
	require.Equal(t, 2, s.Len())

	got, ok := s.Get("a")
	require.True(t, ok)
	require.Equal(t, 10, got)

	// "a" is still the oldest insertion and goes first.
	s.Put("c", 3)
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int](8)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				key := fmt.Sprintf("key-%d", (g+i)%32)
				s.Put(key, i)
				s.Get(key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 8)
}
