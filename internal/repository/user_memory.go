package repository

import (
	"context"
	"strings"
	"sync"

	"bookiteasy/internal/model"
)

// memoryUserStore keeps users in process memory. It backs the demo
// deployment where no database is configured.
type memoryUserStore struct {
	mu    sync.RWMutex
	byID  map[string]model.User
	order []string
}

// NewMemoryUserStore creates an in-memory UserStore preloaded with seed users.
func NewMemoryUserStore(seed []model.User) UserStore {
	s := &memoryUserStore{byID: make(map[string]model.User)}
	for _, u := range seed {
		s.byID[u.ID] = u
		s.order = append(s.order, u.ID)
	}
	return s
}

func (s *memoryUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		s.order = append(s.order, user.ID)
	}
	s.byID[user.ID] = *user
	return nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		u := s.byID[id]
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := u
	return &out, nil
}
