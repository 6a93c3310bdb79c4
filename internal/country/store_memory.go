package country

import (
	"context"
	"sort"
	"sync"

	"regwise/internal/workflow"
)

// MemoryStore keeps the directory in process memory. It backs development,
// demo mode and tests; production deployments use the PostgreSQL store.
type MemoryStore struct {
	mu        sync.RWMutex
	countries map[string]*Country
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{countries: make(map[string]*Country)}
}

func (s *MemoryStore) List(_ context.Context) ([]Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Country, 0, len(s.countries))
	for _, c := range s.countries {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *MemoryStore) FindByCodeOrName(_ context.Context, key string) (*Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.lookupLocked(key)
	if c == nil {
		return nil, ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (s *MemoryStore) ReplaceOnboarding(_ context.Context, key string, steps []workflow.Step) (*Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.lookupLocked(key)
	if c == nil {
		return nil, ErrNotFound
	}
	c.Onboarding = append([]workflow.Step(nil), steps...)
	copied := *c
	return &copied, nil
}

func (s *MemoryStore) Upsert(_ context.Context, c Country) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := c
	s.countries[c.Code] = &copied
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.countries), nil
}

// lookupLocked matches by code first, then by name. Callers must hold mu.
func (s *MemoryStore) lookupLocked(key string) *Country {
	if c, ok := s.countries[key]; ok {
		return c
	}
	for _, c := range s.countries {
		if c.Name == key {
			return c
		}
	}
	return nil
}
