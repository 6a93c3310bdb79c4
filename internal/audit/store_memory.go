package audit

import (
	"context"
	"sync"
)

// memoryCap bounds retained events; the oldest are discarded first.
const memoryCap = 1000

// MemoryStore keeps a bounded window of recent events in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > memoryCap {
		s.events = s.events[len(s.events)-memoryCap:]
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (s *MemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit > len(s.events) {
		limit = len(s.events)
	}
	out := make([]Event, 0, limit)
	for i := len(s.events) - 1; i >= len(s.events)-limit; i-- {
		out = append(out, s.events[i])
	}
	return out, nil
}
