// Package contracttest holds behavioral suites that every implementation of
// an outbound port must pass. The memory and postgres adapters both run
// these against their own factories.
package contracttest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fotopista/admin-api/internal/domain"
	adminstoreport "github.com/fotopista/admin-api/internal/ports/out/adminstore"
	photographerrepoport "github.com/fotopista/admin-api/internal/ports/out/photographerrepo"
	rolegrantsport "github.com/fotopista/admin-api/internal/ports/out/rolegrants"
)

type CleanupFunc = func()

// SeedAdminFunc registers an admin row in the backing store before the
// suite exercises lookups.
type SeedAdminFunc func(t *testing.T, id domain.UserID, email string)

type AdminStoreFactory func(t *testing.T) (adminstoreport.Store, SeedAdminFunc, CleanupFunc)
type RoleGrantsFactory func(t *testing.T) (rolegrantsport.Store, CleanupFunc)
type PhotographerRepoFactory func(t *testing.T) (photographerrepoport.Repository, CleanupFunc)

func RunAdminStore(t *testing.T, newStore AdminStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, seed, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	adminID := domain.UserID(uuid.NewString())
	seed(t, adminID, "root@fotopista.example")

	// Match on id alone.
	ok, err := store.IsAdmin(ctx, adminID, "nobody@fotopista.example")
	if err != nil {
		t.Fatalf("IsAdmin by id: %v", err)
	}
	if !ok {
		t.Fatalf("expected admin match by id")
	}

	// Match on email alone, case-insensitive.
	ok, err = store.IsAdmin(ctx, domain.UserID(uuid.NewString()), "ROOT@Fotopista.Example")
	if err != nil {
		t.Fatalf("IsAdmin by email: %v", err)
	}
	if !ok {
		t.Fatalf("expected admin match by email")
	}

	// No match.
	ok, err = store.IsAdmin(ctx, domain.UserID(uuid.NewString()), "nobody@fotopista.example")
	if err != nil {
		t.Fatalf("IsAdmin miss: %v", err)
	}
	if ok {
		t.Fatalf("expected non-admin")
	}

	// Blank inputs never match.
	ok, err = store.IsAdmin(ctx, "", "")
	if err != nil {
		t.Fatalf("IsAdmin blank: %v", err)
	}
	if ok {
		t.Fatalf("blank caller must not be admin")
	}
}

func RunRoleGrants(t *testing.T, newStore RoleGrantsFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	id := domain.UserID(uuid.NewString())
	if err := store.Upsert(ctx, id, domain.RolePhotographer); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Re-granting the same pair is a no-op, not an error.
	if err := store.Upsert(ctx, id, domain.RolePhotographer); err != nil {
		t.Fatalf("Upsert repeat: %v", err)
	}

	// A second role for the same user is a distinct grant.
	if err := store.Upsert(ctx, id, domain.RoleBiker); err != nil {
		t.Fatalf("Upsert second role: %v", err)
	}
}

func RunPhotographerRepo(t *testing.T, newRepo PhotographerRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	now := time.Unix(1000, 0).UTC()
	bio := "Shoots trackdays."
	aID := domain.UserID(uuid.NewString())
	if err := repo.Create(ctx, photographerrepoport.Profile{
		UserID:      aID,
		DisplayName: "Ana Pérez",
		Bio:         &bio,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("Create a: %v", err)
	}

	got, err := repo.GetByUser(ctx, aID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if got.DisplayName != "Ana Pérez" || got.Bio == nil || *got.Bio != bio {
		t.Fatalf("unexpected profile: %#v", got)
	}

	// Duplicate create maps to ErrAlreadyExists.
	if err := repo.Create(ctx, photographerrepoport.Profile{
		UserID:      aID,
		DisplayName: "Ana Again",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != photographerrepoport.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// Missing lookups map to ErrNotFound.
	if _, err := repo.GetByUser(ctx, domain.UserID(uuid.NewString())); err != photographerrepoport.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, photographerrepoport.Profile{
		UserID:      domain.UserID(uuid.NewString()),
		DisplayName: "Ghost",
		UpdatedAt:   now,
	}); err != photographerrepoport.ErrNotFound {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}

	// Update replaces fields, including clearing optional ones.
	later := now.Add(time.Hour)
	if err := repo.Update(ctx, photographerrepoport.Profile{
		UserID:      aID,
		DisplayName: "Ana P.",
		Bio:         nil,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   later,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err = repo.GetByUser(ctx, aID)
	if err != nil {
		t.Fatalf("GetByUser after update: %v", err)
	}
	if got.DisplayName != "Ana P." || got.Bio != nil || !got.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected updated profile: %#v", got)
	}

	// Deterministic list ordering by display name (case-insensitive),
	// active-only.
	bID := domain.UserID(uuid.NewString())
	if err := repo.Create(ctx, photographerrepoport.Profile{
		UserID:      bID,
		DisplayName: "beto",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}
	inactiveID := domain.UserID(uuid.NewString())
	if err := repo.Create(ctx, photographerrepoport.Profile{
		UserID:      inactiveID,
		DisplayName: "Carla",
		IsActive:    false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}); err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	list, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(list) != 2 || list[0].DisplayName != "Ana P." || list[1].DisplayName != "beto" {
		t.Fatalf("unexpected listing: %#v", list)
	}
}
