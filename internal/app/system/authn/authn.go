// internal/app/system/authn/authn.go

// Package authn turns bearer tokens into a typed request identity.
//
// Token verification is delegated to the identity provider behind the
// TokenVerifier interface; the rest of the application only ever sees the
// immutable Identity record, never raw claims.
package authn

import (
	"context"
	"errors"
)

// Identity is the verified caller, built once per request.
type Identity struct {
	ID    string // identity provider subject id
	Email string
	Role  string // user | coach (from user document, falling back to claims)
}

// ErrInvalidToken is returned by verifiers for tokens that fail any
// verification step. The detail stays in the log; callers only need the
// unauthenticated outcome.
var ErrInvalidToken = errors.New("invalid bearer token")

// TokenVerifier verifies a bearer token and yields the subject identity.
// Implementations must not trust any claim they have not verified.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// RoleSource looks up the stored role for a subject id. An empty role with a
// nil error means the subject has no user document yet.
type RoleSource interface {
	Role(ctx context.Context, userID string) (string, error)
}

// AccountRemover deletes the upstream identity-provider account for a
// subject. Used best-effort during user deletion.
type AccountRemover interface {
	RemoveAccount(ctx context.Context, userID string) error
}

type ctxKey string

const identityKey ctxKey = "identity"

// WithIdentity returns a context carrying the verified identity. Exported for
// handler tests, which inject identities without running the middleware.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the request identity, if one was verified.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}
