package session

import (
	"context"
	"sync"
	"time"

	"ticketdesk-backend/internal/types"
)

type memoryEntry struct {
	state     types.SessionState
	updatedAt time.Time
}

// MemoryCache is a process-local Cache. Expired entries are dropped lazily
// on read and by Prune.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Load(_ context.Context, id string) (*types.SessionState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, nil
	}
	if m.expiredLocked(e) {
		delete(m.entries, id)
		return nil, nil
	}
	st := e.state
	return &st, nil
}

func (m *MemoryCache) Save(_ context.Context, id string, st types.SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{state: st, updatedAt: m.now()}
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Prune removes every expired entry and returns how many were dropped.
func (m *MemoryCache) Prune() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.entries {
		if m.expiredLocked(e) {
			delete(m.entries, id)
			n++
		}
	}
	return n
}

// RunPruner calls Prune every interval until ctx is done.
func (m *MemoryCache) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Prune()
		}
	}
}

func (m *MemoryCache) expiredLocked(e memoryEntry) bool {
	return m.ttl > 0 && m.now().Sub(e.updatedAt) > m.ttl
}
