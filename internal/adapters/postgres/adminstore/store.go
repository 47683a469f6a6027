package adminstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fotopista/admin-api/internal/domain"
)

// Store is a Postgres implementation of adminstore.Store backed by the
// admins table. Rows may carry a user_id, an email, or both; membership is
// an OR across the two.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) IsAdmin(ctx context.Context, id domain.UserID, email string) (bool, error) {
	if s.pool == nil {
		return false, errors.New("nil postgres pool")
	}

	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM admins
			WHERE (user_id = NULLIF($1, ''))
			   OR (lower(email) = lower(NULLIF($2, '')))
		)
	`, string(id), email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
