package roster

import (
	"context"
	"sort"
	"sync"

	"kitledger/pkg/platform/sentinel"
)

// InMemoryStore holds students in a mutex-guarded map. Used in tests and when
// no DATABASE_URL is configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	students map[string]Student
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{students: make(map[string]Student)}
}

// List returns deep copies of all students in stable ID order.
func (s *InMemoryStore) List(_ context.Context) ([]Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, student.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return Student{}, sentinel.ErrNotFound
	}
	return student.Clone(), nil
}

func (s *InMemoryStore) Upsert(_ context.Context, student Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.students[student.ID] = student.Clone()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.students, id)
	return nil
}
