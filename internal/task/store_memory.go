package task

import (
	"context"
	"sort"
	"sync"

	"citizengate/pkg/platform/sentinel"
)

// InMemoryStore keeps tasks in a mutex-guarded map. Update mutations run
// under the write lock, which serializes concurrent transitions per task.
// Default backend and the fake for engine tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	tasks map[string]*Task
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tasks: make(map[string]*Task)}
}

func (s *InMemoryStore) Create(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[t.ID]; ok {
		return sentinel.ErrConflict
	}
	s.tasks[t.ID] = t.Clone()
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, taskID string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *InMemoryStore) Update(_ context.Context, taskID string, mutate func(*Task) error) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	// Mutate a copy so a rejected transition leaves the record untouched.
	next := t.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	s.tasks[taskID] = next
	return next.Clone(), nil
}

func (s *InMemoryStore) Delete(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[taskID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
