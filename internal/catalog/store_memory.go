package catalog

import (
	"context"
	"sort"
	"sync"

	"kitledger/pkg/platform/sentinel"
	pstrings "kitledger/pkg/platform/strings"
)

// InMemoryStore holds catalog items in a mutex-guarded map. Used in tests and
// when no DATABASE_URL is configured.
type InMemoryStore struct {
	mu    sync.RWMutex
	items map[string]Item
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{items: make(map[string]Item)}
}

// List returns deep copies of all items in stable ID order.
func (s *InMemoryStore) List(_ context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return Item{}, sentinel.ErrNotFound
	}
	return item.Clone(), nil
}

func (s *InMemoryStore) Upsert(_ context.Context, item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := item.Clone()
	stored.Branches = pstrings.DedupeAndTrim(stored.Branches)
	s.items[item.ID] = stored
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
