package profile

import (
	"context"
	"sync"

	"citizengate/pkg/platform/sentinel"
)

// InMemoryStore keeps profiles in a mutex-guarded map. It is the default
// backend and the fake for service tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{profiles: make(map[string]Profile)}
}

func (s *InMemoryStore) Get(_ context.Context, userID string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[userID]; ok {
		return p.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) Upsert(_ context.Context, userID string, updates Profile) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged, ok := s.profiles[userID]
	if !ok {
		merged = make(Profile, len(updates)+1)
	} else {
		merged = merged.Clone()
	}
	for k, v := range updates {
		merged[k] = v
	}
	merged[FieldUserID] = userID
	s.profiles[userID] = merged
	return merged.Clone(), nil
}
