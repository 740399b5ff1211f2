package keyword

import (
	"context"
	"sync"
)

// SelectionCounter records how often each candidate key has been picked.
// Implementations must make Increment atomic with respect to concurrent
// callers.
type SelectionCounter interface {
	Counts(ctx context.Context, keys []string) (map[string]int64, error)
	Increment(ctx context.Context, key string) error
}

// MemoryCounters is an in-process SelectionCounter.
type MemoryCounters struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryCounters returns an empty counter set.
func NewMemoryCounters() *MemoryCounters {
	return &MemoryCounters{counts: make(map[string]int64)}
}

func (m *MemoryCounters) Counts(_ context.Context, keys []string) (map[string]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		if c, ok := m.counts[k]; ok {
			out[k] = c
		}
	}
	return out, nil
}

func (m *MemoryCounters) Increment(_ context.Context, key string) error {
	m.mu.Lock()
	m.counts[key]++
	m.mu.Unlock()
	return nil
}
