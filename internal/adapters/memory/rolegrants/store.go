package rolegrants

import (
	"context"
	"sync"

	"github.com/fotopista/admin-api/internal/domain"
)

type grant struct {
	ID   domain.UserID
	Role domain.Role
}

// Store is an in-memory implementation of rolegrants.Store.
// It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	grants map[grant]struct{}

	// Attempts counts Upsert calls, including failed ones. The parent flow
	// treats this write as best-effort; tests use the counter to assert the
	// attempt happened without coupling to its outcome.
	Attempts int

	// Err, when set, is returned by every Upsert.
	Err error
}

func NewStore() *Store {
	return &Store{grants: make(map[grant]struct{})}
}

func (s *Store) Upsert(ctx context.Context, id domain.UserID, role domain.Role) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Attempts++
	if s.Err != nil {
		return s.Err
	}
	s.grants[grant{ID: id, Role: role}] = struct{}{}
	return nil
}

// Has reports whether {id, role} was recorded.
func (s *Store) Has(id domain.UserID, role domain.Role) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.grants[grant{ID: id, Role: role}]
	return ok
}

// Len returns the number of distinct grants.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.grants)
}
