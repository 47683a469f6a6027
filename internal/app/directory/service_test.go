package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	memclock "github.com/fotopista/admin-api/internal/adapters/memory/clock"
	memidentity "github.com/fotopista/admin-api/internal/adapters/memory/identity"
	memphotographerrepo "github.com/fotopista/admin-api/internal/adapters/memory/photographerrepo"
	"github.com/fotopista/admin-api/internal/domain"
)

func newTestService(t *testing.T) (*Service, *memidentity.Provider, *memclock.ManualClock) {
	t.Helper()
	provider := memidentity.NewProvider()
	clk := memclock.NewManualClock(time.Unix(1000, 0).UTC())
	return NewService(memphotographerrepo.NewRepo(), provider, clk), provider, clk
}

func addPhotographer(p *memidentity.Provider, email string) domain.UserID {
	return p.AddUser(email, map[string]any{"roles": []any{"photographer"}})
}

func TestGetMyProfile_NotProvisioned_404(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newTestService(t)
	id := addPhotographer(provider, "p@example.com")

	_, err := svc.GetMyProfile(context.Background(), id)
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 404 || ae.Code != CodeProfileNotFound {
		t.Fatalf("err=%v, want PROFILE_NOT_FOUND 404", err)
	}
}

func TestPutMyProfile_CreateThenGet(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newTestService(t)
	id := addPhotographer(provider, "p@example.com")

	created, err := svc.PutMyProfile(context.Background(), id, PutMyProfileInput{
		DisplayName: Some("  Caro   Díaz "),
		Bio:         Some("Retratos en ruta"),
	})
	if err != nil {
		t.Fatalf("PutMyProfile: %v", err)
	}
	if created.DisplayName != "Caro Díaz" {
		t.Fatalf("DisplayName=%q", created.DisplayName)
	}

	got, err := svc.GetMyProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMyProfile: %v", err)
	}
	if got.Bio == nil || *got.Bio != "Retratos en ruta" {
		t.Fatalf("Bio=%v", got.Bio)
	}
}

func TestPutMyProfile_RequiresPhotographerRole(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newTestService(t)
	id := provider.AddUser("rider@example.com", map[string]any{"roles": []any{"biker"}})

	_, err := svc.PutMyProfile(context.Background(), id, PutMyProfileInput{DisplayName: Some("Rider")})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 403 || ae.Code != CodeNotPhotographer {
		t.Fatalf("err=%v, want NOT_PHOTOGRAPHER 403", err)
	}
}

func TestPutMyProfile_CreateRequiresName(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newTestService(t)
	id := addPhotographer(provider, "p@example.com")

	_, err := svc.PutMyProfile(context.Background(), id, PutMyProfileInput{Bio: Some("solo bio")})
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != 400 || ae.Code != CodeNameRequired {
		t.Fatalf("err=%v, want NAME_REQUIRED 400", err)
	}
}

func TestPutMyProfile_UpdatePatchAndNullClears(t *testing.T) {
	t.Parallel()

	svc, provider, clk := newTestService(t)
	id := addPhotographer(provider, "p@example.com")

	_, err := svc.PutMyProfile(context.Background(), id, PutMyProfileInput{
		DisplayName: Some("Caro"),
		Bio:         Some("bio"),
		Location:    Some("Mendoza"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clk.Advance(time.Minute)
	got, err := svc.PutMyProfile(context.Background(), id, PutMyProfileInput{
		Bio: Null[string](), // clear
		// Location omitted: kept
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Bio != nil {
		t.Fatalf("Bio=%v, want cleared", got.Bio)
	}
	if got.Location == nil || *got.Location != "Mendoza" {
		t.Fatalf("Location=%v, want kept", got.Location)
	}
	if got.DisplayName != "Caro" {
		t.Fatalf("DisplayName=%q", got.DisplayName)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Fatalf("UpdatedAt=%v CreatedAt=%v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestListPhotographers_OrderedByDisplayName(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newTestService(t)
	idB := addPhotographer(provider, "b@example.com")
	idA := addPhotographer(provider, "a@example.com")

	if _, err := svc.PutMyProfile(context.Background(), idB, PutMyProfileInput{DisplayName: Some("Zoe")}); err != nil {
		t.Fatalf("put b: %v", err)
	}
	if _, err := svc.PutMyProfile(context.Background(), idA, PutMyProfileInput{DisplayName: Some("Ana")}); err != nil {
		t.Fatalf("put a: %v", err)
	}

	ps, err := svc.ListPhotographers(context.Background())
	if err != nil {
		t.Fatalf("ListPhotographers: %v", err)
	}
	if len(ps) != 2 || ps[0].DisplayName != "Ana" || ps[1].DisplayName != "Zoe" {
		t.Fatalf("ps=%+v", ps)
	}
}
