// Package testutil opens a throwaway Postgres pool for adapter tests.
// Tests that need a database are skipped unless TEST_DATABASE_URL is set.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const envDSN = "TEST_DATABASE_URL"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		user_id text NOT NULL DEFAULT '',
		email   text NOT NULL DEFAULT '',
		CONSTRAINT admins_identity_check CHECK (user_id <> '' OR email <> '')
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id text NOT NULL,
		role    text NOT NULL,
		PRIMARY KEY (user_id, role)
	)`,
	`CREATE TABLE IF NOT EXISTS photographers (
		user_id      text PRIMARY KEY,
		display_name text NOT NULL,
		bio          text,
		location     text,
		is_active    boolean NOT NULL DEFAULT true,
		created_at   timestamptz NOT NULL,
		updated_at   timestamptz NOT NULL
	)`,
}

var truncate = []string{
	`TRUNCATE admins`,
	`TRUNCATE user_roles`,
	`TRUNCATE photographers`,
}

// OpenMigratedPool connects to TEST_DATABASE_URL, applies the schema and
// empties every table so each test starts clean. The pool is closed when
// the test finishes.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(envDSN)
	if dsn == "" {
		t.Skipf("%s not set; skipping postgres test", envDSN)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	for _, stmt := range truncate {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("truncate: %v", err)
		}
	}
	return pool
}
