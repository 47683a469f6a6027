package adminstore

import (
	"context"

	"github.com/fotopista/admin-api/internal/domain"
)

// Store is the authorization store: the persisted set of administrator
// identities gating the provisioning operation.
//
// Membership is checked by account id OR email, since either field may be
// populated on a record. A lookup error must be surfaced to the caller as a
// dependency failure, never treated as "not an admin".
type Store interface {
	IsAdmin(ctx context.Context, id domain.UserID, email string) (bool, error)
}
