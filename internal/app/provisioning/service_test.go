package provisioning

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	memadminstore "github.com/fotopista/admin-api/internal/adapters/memory/adminstore"
	memidentity "github.com/fotopista/admin-api/internal/adapters/memory/identity"
	memrolegrants "github.com/fotopista/admin-api/internal/adapters/memory/rolegrants"
	"github.com/fotopista/admin-api/internal/domain"
)

type fixture struct {
	svc      *Service
	provider *memidentity.Provider
	admins   *memadminstore.Store
	grants   *memrolegrants.Store
}

// newFixture seeds an admin identified by the "admin-tok" bearer token.
func newFixture(t *testing.T) fixture {
	t.Helper()

	provider := memidentity.NewProvider()
	admins := memadminstore.NewStore()
	grants := memrolegrants.NewStore()

	adminID := provider.AddUser("admin@fotopista.example", nil)
	provider.AddToken("admin-tok", adminID)
	admins.AddID(adminID)

	return fixture{
		svc:      NewService(provider, admins, grants, nil),
		provider: provider,
		admins:   admins,
		grants:   grants,
	}
}

func assertAppError(t *testing.T, err error, status int, code string) *Error {
	t.Helper()
	ae := (*Error)(nil)
	if !errors.As(err, &ae) || ae.Status != status || ae.Code != code {
		t.Fatalf("err=%v (type=%T), want status=%d code=%s", err, err, status, code)
	}
	return ae
}

func TestInvite_RejectedToken_401(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.InvitePhotographer(context.Background(), "bogus", InviteInput{Email: "x@example.com"})
	ae := assertAppError(t, err, 401, CodeInvalidToken)
	if ae.Message != "Token inválido" {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestInvite_UnidentifiedCaller_401(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	// Token resolves but the provider returns no identifier.
	f.provider.AddToken("ghost-tok", "")

	_, err := f.svc.InvitePhotographer(context.Background(), "ghost-tok", InviteInput{Email: "x@example.com"})
	assertAppError(t, err, 401, CodeUnidentified)
}

func TestInvite_NotAdmin_403(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID := f.provider.AddUser("user@example.com", nil)
	f.provider.AddToken("user-tok", userID)

	_, err := f.svc.InvitePhotographer(context.Background(), "user-tok", InviteInput{Email: "x@example.com"})
	ae := assertAppError(t, err, 403, CodeNotAdmin)
	if ae.Message != "No sos admin." {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestInvite_AdminMatchByEmail(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	// This admin is registered by email only, not id.
	userID := f.provider.AddUser("ops@fotopista.example", nil)
	f.provider.AddToken("ops-tok", userID)
	f.admins.AddEmail("ops@fotopista.example")

	_, err := f.svc.InvitePhotographer(context.Background(), "ops-tok", InviteInput{Email: "new@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
}

func TestInvite_AdminStoreError_IsDependencyFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.admins.Err = errors.New("admins table unavailable")

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "x@example.com"})
	// Must surface as 500, never as 403.
	assertAppError(t, err, 500, CodeDependencyFailed)
}

func TestInvite_MissingEmail_400(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "   "})
	ae := assertAppError(t, err, 400, CodeEmailRequired)
	if ae.Message != "Email requerido" {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestInvite_NewAccount_HappyPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	inv, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{
		Email:       "new@example.com",
		DisplayName: "Nueva Fotógrafa",
	})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	if inv.UserID == "" {
		t.Fatalf("empty UserID")
	}
	if inv.MagicLink == "" || !strings.Contains(inv.MagicLink, "type=magiclink") {
		t.Fatalf("MagicLink=%q", inv.MagicLink)
	}

	acct, ok := f.provider.Account(inv.UserID)
	if !ok {
		t.Fatalf("account not created")
	}
	roles := domain.RolesFromMetadata(acct.Metadata)
	if !domain.HasRole(roles, domain.RolePhotographer) {
		t.Fatalf("roles=%v", roles)
	}
	if acct.Metadata["display_name"] != "Nueva Fotógrafa" {
		t.Fatalf("display_name=%v", acct.Metadata["display_name"])
	}
	if !f.grants.Has(inv.UserID, domain.RolePhotographer) {
		t.Fatalf("legacy grant missing")
	}
}

func TestInvite_ExistingAccount_MergesRoles(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	existingID := f.provider.AddUser("rider@example.com", map[string]any{"roles": []any{"biker"}})

	inv, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	if inv.UserID != existingID {
		t.Fatalf("UserID=%q want %q", inv.UserID, existingID)
	}

	acct, _ := f.provider.Account(existingID)
	roles := domain.RolesFromMetadata(acct.Metadata)
	if len(roles) != 2 || !domain.HasRole(roles, "biker") || !domain.HasRole(roles, "photographer") {
		t.Fatalf("roles=%v", roles)
	}
}

func TestInvite_LegacySingularRole_MergesTheSame(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	existingID := f.provider.AddUser("rider@example.com", map[string]any{"role": "biker"})

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "rider@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}

	acct, _ := f.provider.Account(existingID)
	roles := domain.RolesFromMetadata(acct.Metadata)
	if len(roles) != 2 || !domain.HasRole(roles, "biker") || !domain.HasRole(roles, "photographer") {
		t.Fatalf("roles=%v", roles)
	}
}

func TestInvite_Idempotent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	first, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	if err != nil {
		t.Fatalf("first invite: %v", err)
	}
	second, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	if err != nil {
		t.Fatalf("second invite: %v", err)
	}
	if first.UserID != second.UserID {
		t.Fatalf("user ids differ: %q vs %q", first.UserID, second.UserID)
	}

	acct, _ := f.provider.Account(first.UserID)
	count := 0
	for _, r := range domain.RolesFromMetadata(acct.Metadata) {
		if r == domain.RolePhotographer {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("photographer role appears %d times", count)
	}
}

func TestInvite_LegacyGrantFailure_DoesNotAbort(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.grants.Err = errors.New("user_roles table unavailable")

	var buf strings.Builder
	f.svc.log = log.New(&buf, "", 0)

	inv, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	if inv.MagicLink == "" {
		t.Fatalf("missing link")
	}
	if f.grants.Attempts != 1 {
		t.Fatalf("attempts=%d, want 1", f.grants.Attempts)
	}
	if !strings.Contains(buf.String(), "legacy role upsert") {
		t.Fatalf("log=%q", buf.String())
	}
}

func TestInvite_EnsureFailure_500(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.provider.CreateErr = errors.New("provider down")
	f.provider.LinkErr = errors.New("provider down")

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	ae := assertAppError(t, err, 500, CodeDependencyFailed)
	if ae.Message != "No se pudo crear o localizar el usuario" {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestInvite_EmptyLinkURL_500(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.provider.EmptyLinkURL = true

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	assertAppError(t, err, 500, CodeDependencyFailed)
}

func TestInvite_DisplayName_ExistingWinsWhenAbsent(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	id := f.provider.AddUser("p@example.com", map[string]any{"display_name": "Original", "roles": []any{"biker"}})

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	acct, _ := f.provider.Account(id)
	if acct.Metadata["display_name"] != "Original" {
		t.Fatalf("display_name=%v", acct.Metadata["display_name"])
	}

	_, err = f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{
		Email:       "p@example.com",
		DisplayName: "  Nuevo  Nombre ",
	})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	acct, _ = f.provider.Account(id)
	if acct.Metadata["display_name"] != "Nuevo Nombre" {
		t.Fatalf("display_name=%v", acct.Metadata["display_name"])
	}
}

func TestInvite_PreservesUnrelatedMetadata(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	id := f.provider.AddUser("p@example.com", map[string]any{"instagram": "@pfoto", "roles": []any{"biker"}})

	_, err := f.svc.InvitePhotographer(context.Background(), "admin-tok", InviteInput{Email: "p@example.com"})
	if err != nil {
		t.Fatalf("InvitePhotographer: %v", err)
	}
	acct, _ := f.provider.Account(id)
	if acct.Metadata["instagram"] != "@pfoto" {
		t.Fatalf("metadata=%v", acct.Metadata)
	}
}
