package photographerrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fotopista/admin-api/internal/adapters/postgres"
	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
)

// Repo is a Postgres implementation of photographerrepo.Repository.
type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

func (r *Repo) Create(ctx context.Context, p photographerrepo.Profile) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO photographers (
			user_id,
			display_name,
			bio,
			location,
			is_active,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		string(p.UserID),
		p.DisplayName,
		p.Bio,
		p.Location,
		p.IsActive,
		p.CreatedAt.UTC(),
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return photographerrepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, p photographerrepo.Profile) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}

	ct, err := r.pool.Exec(ctx, `
		UPDATE photographers
		SET display_name = $2,
		    bio = $3,
		    location = $4,
		    is_active = $5,
		    updated_at = $6
		WHERE user_id = $1
	`,
		string(p.UserID),
		p.DisplayName,
		p.Bio,
		p.Location,
		p.IsActive,
		p.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return photographerrepo.ErrNotFound
	}
	return nil
}

func (r *Repo) GetByUser(ctx context.Context, id domain.UserID) (photographerrepo.Profile, error) {
	if r.pool == nil {
		return photographerrepo.Profile{}, errors.New("nil postgres pool")
	}
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, display_name, bio, location, is_active, created_at, updated_at
		FROM photographers
		WHERE user_id = $1
	`, string(id))
	return scanProfile(row)
}

func (r *Repo) ListActive(ctx context.Context) ([]photographerrepo.Profile, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, display_name, bio, location, is_active, created_at, updated_at
		FROM photographers
		WHERE is_active = true
		ORDER BY lower(display_name) ASC, user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]photographerrepo.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanProfile(row interface {
	Scan(dest ...any) error
}) (photographerrepo.Profile, error) {
	var (
		userID      string
		displayName string
		bio         *string
		location    *string
		isActive    bool
		createdAt   time.Time
		updatedAt   time.Time
	)
	if err := row.Scan(
		&userID,
		&displayName,
		&bio,
		&location,
		&isActive,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return photographerrepo.Profile{}, photographerrepo.ErrNotFound
		}
		return photographerrepo.Profile{}, err
	}
	return photographerrepo.Profile{
		UserID:      domain.UserID(userID),
		DisplayName: displayName,
		Bio:         bio,
		Location:    location,
		IsActive:    isActive,
		CreatedAt:   createdAt.UTC(),
		UpdatedAt:   updatedAt.UTC(),
	}, nil
}
