package provisioning

import (
	"context"
	"fmt"

	"github.com/fotopista/admin-api/internal/domain"
	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

// AccountEnsurer resolves an email to an account id, creating the account
// when absent. Implementations differ in how they treat a failed create;
// both are idempotent from the caller's perspective, so concurrent ensures
// for the same new email race on the provider's own uniqueness enforcement.
type AccountEnsurer interface {
	EnsureAccount(ctx context.Context, email, displayName string) (domain.UserID, error)
}

// NewCreateEnsurer returns the direct-create strategy: any create failure is
// final. Intended for deployments where the caller guarantees the address is
// new.
func NewCreateEnsurer(p identity.Provider) AccountEnsurer {
	return &createEnsurer{provider: p}
}

// NewRecoverEnsurer returns the create-then-recover strategy: when the create
// fails, the existing account's id is recovered from a generated magic link.
// This is the default; it treats any create failure as "probably exists",
// matching the provider's coarse error reporting.
func NewRecoverEnsurer(p identity.Provider) AccountEnsurer {
	return &recoverEnsurer{provider: p}
}

type createEnsurer struct {
	provider identity.Provider
}

func (e *createEnsurer) EnsureAccount(ctx context.Context, email, displayName string) (domain.UserID, error) {
	acct, err := e.provider.CreateUser(ctx, newAccountInput(email, displayName))
	if err != nil {
		return "", err
	}
	if acct.ID == "" {
		return "", fmt.Errorf("create user %s: provider returned no id", email)
	}
	return acct.ID, nil
}

type recoverEnsurer struct {
	provider identity.Provider
}

func (e *recoverEnsurer) EnsureAccount(ctx context.Context, email, displayName string) (domain.UserID, error) {
	acct, createErr := e.provider.CreateUser(ctx, newAccountInput(email, displayName))
	if createErr == nil {
		if acct.ID == "" {
			return "", fmt.Errorf("create user %s: provider returned no id", email)
		}
		return acct.ID, nil
	}

	// The account likely exists already; a generated link carries its id.
	link, linkErr := e.provider.GenerateLink(ctx, identity.LinkInput{Email: email})
	if linkErr != nil {
		return "", fmt.Errorf("create failed (%v); recover failed: %w", createErr, linkErr)
	}
	if link.UserID == "" {
		return "", fmt.Errorf("create failed (%v); recovered link carried no user id", createErr)
	}
	return link.UserID, nil
}

func newAccountInput(email, displayName string) identity.CreateUserInput {
	md := map[string]any{
		"roles": []string{domain.RolePhotographer},
	}
	if displayName != "" {
		md["display_name"] = displayName
	}
	return identity.CreateUserInput{
		Email:        email,
		EmailConfirm: true,
		Metadata:     md,
	}
}
