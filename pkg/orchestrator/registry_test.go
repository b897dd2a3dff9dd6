package orchestrator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadinessRegistry_InitializedFalse(t *testing.T) {
	r := NewReadinessRegistry([]string{"a", "b"})
	require.False(t, r.Ready("a"))
	require.False(t, r.Ready("b"))
}

func TestReadinessRegistry_SetAndReset(t *testing.T) {
	r := NewReadinessRegistry([]string{"a"})
	r.SetReady("a", true)
	require.True(t, r.Ready("a"))
	r.SetReady("a", false)
	require.False(t, r.Ready("a"))
}

func TestReadinessRegistry_ConcurrentAccess(t *testing.T) {
	r := NewReadinessRegistry([]string{"a", "b", "c"})

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c"} {
		name := name
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				r.SetReady(name, i%2 == 0)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_ = r.Ready(name)
			}
		}()
	}
	wg.Wait()
}

func TestShutdownTracker_AddRemoveSnapshot(t *testing.T) {
	tr := NewShutdownTracker()
	tr.Add(42)
	tr.Add(7)
	require.Equal(t, []int{7, 42}, tr.Snapshot())

	tr.Remove(7)
	require.Equal(t, []int{42}, tr.Snapshot())

	tr.Remove(42)
	require.Empty(t, tr.Snapshot())
}

func TestShutdownTracker_ConcurrentAccess(t *testing.T) {
	tr := NewShutdownTracker()

	var wg sync.WaitGroup
	for pid := 1; pid <= 50; pid++ {
		pid := pid
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Add(pid)
			_ = tr.Snapshot()
			tr.Remove(pid)
		}()
	}
	wg.Wait()
	require.Empty(t, tr.Snapshot())
}
