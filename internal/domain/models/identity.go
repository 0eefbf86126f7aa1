package model

import "context"

const anonymousLabel = "User"

// Identity is the signed-in user as supplied by the identity provider.
// The zero value is an anonymous visitor.
type Identity struct {
	UserID int64
	Email  string
	Token  string
}

func (i Identity) DisplayName() string {
	if i.Email == "" {
		return anonymousLabel
	}
	return i.Email
}

type identityKey struct{}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityKey{}).(Identity)
	return identity
}
