package identity

import (
	"context"

	"github.com/fotopista/admin-api/internal/domain"
)

// Identity is a caller resolved from a bearer credential. It is
// request-scoped and never persisted by this service.
type Identity struct {
	ID    domain.UserID
	Email string
}

// Account is the provider-owned user record. This service only ever
// mutates its metadata (roles, display name).
type Account struct {
	ID             domain.UserID
	Email          string
	EmailConfirmed bool

	// Metadata is the provider's free-form user metadata. Roles live under
	// "roles" (or the legacy singular "role"), the display name under
	// "display_name".
	Metadata map[string]any
}

// CreateUserInput describes a new account to register with the provider.
type CreateUserInput struct {
	Email        string
	EmailConfirm bool
	Metadata     map[string]any
}

// LinkInput requests a one-time magic link for an email address.
type LinkInput struct {
	Email string
	// RedirectTo is an optional post-authentication redirect target.
	RedirectTo string
}

// Link is a minted one-time authentication URL. UserID is populated when the
// provider includes the owning account in its response; callers use it to
// recover the id of an account that already exists.
type Link struct {
	UserID domain.UserID
	URL    string
}

// Provider is the identity-provider port: credential verification, account
// storage, metadata updates, and one-time link issuance. All operations are
// sequential network round-trips; implementations honor ctx cancellation.
type Provider interface {
	// ResolveIdentity exchanges a caller's bearer token for an Identity.
	// Rejected or unparseable tokens return ErrInvalidToken.
	ResolveIdentity(ctx context.Context, accessToken string) (Identity, error)

	// CreateUser registers a new account. An address already registered
	// returns ErrEmailExists.
	CreateUser(ctx context.Context, in CreateUserInput) (Account, error)

	// GetUser fetches an account by id. Unknown ids return ErrUserNotFound.
	GetUser(ctx context.Context, id domain.UserID) (Account, error)

	// UpdateUserMetadata overwrites the account's metadata map.
	UpdateUserMetadata(ctx context.Context, id domain.UserID, md map[string]any) (Account, error)

	// GenerateLink mints a one-time magic link for the address.
	GenerateLink(ctx context.Context, in LinkInput) (Link, error)
}
