package rolegrants

import (
	"context"

	"github.com/fotopista/admin-api/internal/domain"
)

// Store persists role-assignment records in the legacy user_roles table.
//
// The authoritative role set lives in provider account metadata; this table
// is a dual-write kept for the legacy authorization path. Writes are
// best-effort from the caller's perspective: provisioning logs and continues
// when an upsert fails.
type Store interface {
	// Upsert records {user_id, role}. Repeating an existing pair is a no-op.
	Upsert(ctx context.Context, id domain.UserID, role domain.Role) error
}
