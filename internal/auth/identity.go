package auth

import "context"

// Identity is the caller as resolved by the identity provider. UserID is
// stable across sessions and keys the caller's Profile.
type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the identity stored by the middleware, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey).(*Identity)
	return id
}
