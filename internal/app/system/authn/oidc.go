// internal/app/system/authn/oidc.go
package authn

import (
	"context"
	"fmt"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// OIDCVerifier verifies RS256 bearer tokens against the identity provider's
// JWKS endpoint. Keys are fetched at construction and refreshed in the
// background by keyfunc.
type OIDCVerifier struct {
	issuer   string
	audience string
	jwks     *keyfunc.JWKS
	parser   *jwt.Parser
}

// NewOIDCVerifier fetches the signing keys from jwksURL and returns a
// verifier that enforces the given issuer and audience.
func NewOIDCVerifier(ctx context.Context, jwksURL, issuer, audience string) (*OIDCVerifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{Ctx: ctx})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return &OIDCVerifier{
		issuer:   issuer,
		audience: audience,
		jwks:     jwks,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify parses and verifies token, returning the subject identity. The role
// carried here is the token's custom claim; the middleware overrides it with
// the stored user role when a user document exists.
func (v *OIDCVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	parsed, err := v.parser.Parse(token, v.jwks.Keyfunc)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	id := &Identity{ID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	return id, nil
}

// Close stops the background JWKS refresh.
func (v *OIDCVerifier) Close() {
	v.jwks.EndBackground()
}
