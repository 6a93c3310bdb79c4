package alert

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps alerts in process memory for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	alerts map[string]*Alert
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{alerts: make(map[string]*Alert)}
}

func (s *MemoryStore) List(_ context.Context, country string) ([]Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Alert, 0, len(s.alerts))
	for _, a := range s.alerts {
		if country != "" && a.Country != country {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > listCap {
		out = out[:listCap]
	}
	return out, nil
}

func (s *MemoryStore) MarkRead(_ context.Context, id string) (*Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.alerts[id]
	if !ok {
		return nil, ErrNotFound
	}
	a.IsRead = true
	copied := *a
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, a Alert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := a
	s.alerts[a.ID] = &copied
	return nil
}

func (s *MemoryStore) CountUnread(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, a := range s.alerts {
		if !a.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) CountBySeverity(_ context.Context) (map[Severity]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Severity]int)
	for _, a := range s.alerts {
		counts[a.Severity]++
	}
	return counts, nil
}
