package orchestrator

import "sync"

// ReadinessRegistry maps service names to their readiness flag. Every task
// may read any entry to evaluate its dependency wait, but an entry is only
// ever written by its own service's task. Critical sections are short and
// never held across a sleep or channel operation.
type ReadinessRegistry struct {
	mu    sync.RWMutex
	ready map[string]bool
}

// NewReadinessRegistry creates a registry with one false entry per name.
func NewReadinessRegistry(names []string) *ReadinessRegistry {
	ready := make(map[string]bool, len(names))
	for _, name := range names {
		ready[name] = false
	}
	return &ReadinessRegistry{ready: ready}
}

func (r *ReadinessRegistry) Ready(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready[name]
}

func (r *ReadinessRegistry) SetReady(name string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready[name] = ready
}
