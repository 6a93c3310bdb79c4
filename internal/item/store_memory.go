package item

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps items in process memory for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*Item)}
}

func (s *MemoryStore) List(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, cloneItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > listCap {
		out = out[:listCap]
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneItem(it)
	return &copied, nil
}

func (s *MemoryStore) Create(_ context.Context, it Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := cloneItem(&it)
	s.items[it.ID] = &copied
	return nil
}

func (s *MemoryStore) Update(_ context.Context, it Item) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[it.ID]
	if !ok {
		return nil, ErrNotFound
	}
	existing.Title = it.Title
	existing.Description = it.Description
	existing.Meta = cloneMeta(it.Meta)
	existing.UpdatedAt = it.UpdatedAt
	copied := cloneItem(existing)
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, id)
	return nil
}

func cloneItem(it *Item) Item {
	copied := *it
	copied.Meta = cloneMeta(it.Meta)
	return copied
}

func cloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
