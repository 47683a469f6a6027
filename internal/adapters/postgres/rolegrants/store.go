package rolegrants

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fotopista/admin-api/internal/domain"
)

// Store is a Postgres implementation of rolegrants.Store backed by the
// legacy user_roles table.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Upsert(ctx context.Context, id domain.UserID, role domain.Role) error {
	if s.pool == nil {
		return errors.New("nil postgres pool")
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`, string(id), role)
	return err
}
