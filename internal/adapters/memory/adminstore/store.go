package adminstore

import (
	"context"
	"sync"

	"github.com/fotopista/admin-api/internal/domain"
)

// Store is an in-memory implementation of adminstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex

	byID    map[domain.UserID]struct{}
	byEmail map[string]struct{}

	// Err, when set, is returned by every lookup. Tests use it to exercise
	// the dependency-failure path (a store error must not read as "not admin").
	Err error
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[domain.UserID]struct{}),
		byEmail: make(map[string]struct{}),
	}
}

// AddID registers an administrator by account id.
func (s *Store) AddID(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[id] = struct{}{}
}

// AddEmail registers an administrator by email.
func (s *Store) AddEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[domain.NormalizeEmail(email)] = struct{}{}
}

func (s *Store) IsAdmin(ctx context.Context, id domain.UserID, email string) (bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return false, s.Err
	}
	if _, ok := s.byID[id]; ok && id != "" {
		return true, nil
	}
	if _, ok := s.byEmail[domain.NormalizeEmail(email)]; ok && email != "" {
		return true, nil
	}
	return false, nil
}
