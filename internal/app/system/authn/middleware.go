// internal/app/system/authn/middleware.go
package authn

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/habitstack/habitstack/internal/app/system/apperr"
	"github.com/habitstack/habitstack/internal/app/system/httpjson"
	"github.com/habitstack/habitstack/internal/domain/models"
)

// Middleware verifies bearer tokens and injects the resulting Identity into
// the request context.
type Middleware struct {
	Verifier TokenVerifier
	Roles    RoleSource
	Log      *zap.Logger
}

// NewMiddleware constructs the authentication middleware.
func NewMiddleware(verifier TokenVerifier, roles RoleSource, logger *zap.Logger) *Middleware {
	return &Middleware{Verifier: verifier, Roles: roles, Log: logger}
}

// Require rejects requests without a verifiable bearer token. Used by the
// REST surface, where every endpoint needs an authenticated caller.
func (m *Middleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.identify(r)
		if err != nil {
			httpjson.WriteError(w, m.Log, apperr.Unauthenticated("missing or invalid authorization header"))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// Load injects the identity when a valid token is present and passes the
// request through otherwise. Used by the GraphQL surface, where individual
// resolvers decide whether authentication is required.
func (m *Middleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, err := m.identify(r); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) identify(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return nil, ErrInvalidToken
	}

	id, err := m.Verifier.Verify(r.Context(), token)
	if err != nil {
		m.Log.Debug("token verification failed", zap.Error(err))
		return nil, err
	}

	// The stored role wins over the token claim; a subject with no user
	// document yet, or an unrecognized role string, gets the default role.
	if m.Roles != nil {
		role, err := m.Roles.Role(r.Context(), id.ID)
		if err != nil {
			m.Log.Warn("role lookup failed", zap.String("user_id", id.ID), zap.Error(err))
		} else if role != "" {
			id.Role = role
		}
	}
	if !models.ValidRole(id.Role) {
		id.Role = models.RoleUser
	}
	return id, nil
}
