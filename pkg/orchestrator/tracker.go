package orchestrator

import (
	"sort"
	"sync"
)

// ShutdownTracker is the set of currently-live child PIDs. Tasks add a PID
// right after a successful spawn and remove it once the child's output is
// fully drained. The interrupt handler snapshots it exactly once.
type ShutdownTracker struct {
	mu   sync.RWMutex
	pids map[int]struct{}
}

func NewShutdownTracker() *ShutdownTracker {
	return &ShutdownTracker{pids: make(map[int]struct{})}
}

func (t *ShutdownTracker) Add(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pids[pid] = struct{}{}
}

func (t *ShutdownTracker) Remove(pid int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pids, pid)
}

// Snapshot returns the tracked PIDs, sorted for stable iteration.
func (t *ShutdownTracker) Snapshot() []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]int, 0, len(t.pids))
	for pid := range t.pids {
		out = append(out, pid)
	}
	sort.Ints(out)
	return out
}
