package httpapi

import (
	"context"

	"github.com/fotopista/admin-api/internal/ports/out/identity"
)

type identityKey struct{}

func WithIdentity(ctx context.Context, ident identity.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, ident)
}

func IdentityFromContext(ctx context.Context) (identity.Identity, bool) {
	v, ok := ctx.Value(identityKey{}).(identity.Identity)
	return v, ok && v.ID != ""
}
