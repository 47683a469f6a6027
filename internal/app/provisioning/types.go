package provisioning

import "github.com/fotopista/admin-api/internal/domain"

// InviteInput is the admin-supplied provisioning request.
type InviteInput struct {
	Email string
	// DisplayName is optional; when blank the target account's existing
	// display name is kept.
	DisplayName string
	// RedirectTo is an optional post-authentication redirect target carried
	// on the magic link.
	RedirectTo string
}

// Invite is the provisioning result: the target account id and a one-time
// authentication link. The link is request-scoped; its lifecycle (expiry,
// consumption) belongs to the identity provider.
type Invite struct {
	UserID    domain.UserID
	MagicLink string
}
