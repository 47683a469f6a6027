package provisioning

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/adminstore"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
	"github.com/fotopista/admin-api/internal/ports/out/rolegrants"
)

// Service implements admin-initiated photographer provisioning: ensure the
// target account exists with the photographer role attached, then issue a
// one-time magic link for it.
//
// Failures are reported synchronously as *Error; nothing is retried and no
// partial effect is rolled back. The account-side steps are idempotent, so
// re-invoking after a late failure is the documented recovery path.
type Service struct {
	provider identity.Provider
	admins   adminstore.Store
	grants   rolegrants.Store
	log      *log.Logger

	// Ensure is the account lookup-or-create strategy. Defaults to the
	// create-then-recover implementation.
	Ensure AccountEnsurer
}

func NewService(provider identity.Provider, admins adminstore.Store, grants rolegrants.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		provider: provider,
		admins:   admins,
		grants:   grants,
		log:      logger,
		Ensure:   NewRecoverEnsurer(provider),
	}
}

// InvitePhotographer runs the provisioning flow for the caller holding
// accessToken. Checks run in a fixed order and the first failure terminates
// the operation.
func (s *Service) InvitePhotographer(ctx context.Context, accessToken string, in InviteInput) (Invite, error) {
	ident, err := s.provider.ResolveIdentity(ctx, accessToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			return Invite{}, &Error{Status: http.StatusUnauthorized, Code: CodeInvalidToken, Message: "Token inválido"}
		}
		return Invite{}, dependencyError(err)
	}
	if ident.ID == "" {
		return Invite{}, &Error{Status: http.StatusUnauthorized, Code: CodeUnidentified, Message: "No se pudo identificar al usuario"}
	}

	isAdmin, err := s.admins.IsAdmin(ctx, ident.ID, ident.Email)
	if err != nil {
		// A store failure is a dependency failure, never "not admin".
		return Invite{}, dependencyError(err)
	}
	if !isAdmin {
		return Invite{}, &Error{Status: http.StatusForbidden, Code: CodeNotAdmin, Message: "No sos admin."}
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		return Invite{}, &Error{Status: http.StatusBadRequest, Code: CodeEmailRequired, Message: "Email requerido"}
	}
	displayName := domain.NormalizeHumanName(in.DisplayName)

	userID, err := s.Ensure.EnsureAccount(ctx, email, displayName)
	if err != nil {
		s.log.Printf("ensure account %s: %v", email, err)
		return Invite{}, &Error{Status: http.StatusInternalServerError, Code: CodeDependencyFailed, Message: "No se pudo crear o localizar el usuario"}
	}

	// Best-effort dual-write for the legacy authorization path. The
	// authoritative role lives in account metadata, so a failure here is
	// logged and never aborts the flow.
	if err := s.grants.Upsert(ctx, userID, domain.RolePhotographer); err != nil {
		s.log.Printf("legacy role upsert user=%s: %v", userID, err)
	}

	acct, err := s.provider.GetUser(ctx, userID)
	if err != nil {
		return Invite{}, dependencyError(err)
	}

	md := make(map[string]any, len(acct.Metadata)+2)
	for k, v := range acct.Metadata {
		md[k] = v
	}
	md["roles"] = domain.MergeRoles(domain.RolesFromMetadata(acct.Metadata), domain.RolePhotographer)
	if displayName != "" {
		md["display_name"] = displayName
	}
	if _, err := s.provider.UpdateUserMetadata(ctx, userID, md); err != nil {
		return Invite{}, dependencyError(err)
	}

	link, err := s.provider.GenerateLink(ctx, identity.LinkInput{Email: email, RedirectTo: in.RedirectTo})
	if err != nil {
		return Invite{}, dependencyError(err)
	}
	if link.URL == "" {
		return Invite{}, &Error{Status: http.StatusInternalServerError, Code: CodeDependencyFailed, Message: "El proveedor no devolvió un magic link"}
	}

	return Invite{UserID: userID, MagicLink: link.URL}, nil
}

func dependencyError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeDependencyFailed, Message: err.Error()}
}
