package adminstore

import (
	"context"
	"testing"

	"github.com/fotopista/admin-api/internal/adapters/contracttest"
	"github.com/fotopista/admin-api/internal/adapters/postgres/testutil"
	"github.com/fotopista/admin-api/internal/domain"
	adminstoreport "github.com/fotopista/admin-api/internal/ports/out/adminstore"
)

func TestContract_PostgresAdminStore(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunAdminStore(t, func(t *testing.T) (adminstoreport.Store, contracttest.SeedAdminFunc, func()) {
		t.Helper()
		seed := func(t *testing.T, id domain.UserID, email string) {
			t.Helper()
			if _, err := pool.Exec(context.Background(),
				`INSERT INTO admins (user_id, email) VALUES ($1, $2)`,
				string(id), email,
			); err != nil {
				t.Fatalf("seed admin: %v", err)
			}
		}
		return NewStore(pool), seed, nil
	})
}
