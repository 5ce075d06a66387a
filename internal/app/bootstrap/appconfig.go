// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, logging,
// environment). AppConfig is everything specific to HabitStack: the Mongo
// connection, token verification, the elevated role, the upstream identity
// admin API, and rate limiting.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token verification
	AuthJWKSURL  string // JWKS endpoint of the identity provider
	AuthIssuer   string // expected iss claim
	AuthAudience string // expected aud claim

	// ElevatedRole is the role granting cross-user access (default "coach").
	ElevatedRole string

	// Upstream identity admin API, used for best-effort account removal on
	// self-deletion. Blank disables the call.
	IdentityAdminURL   string
	IdentityAdminToken string

	// Rate limiting per client IP.
	RateLimitMax    int
	RateLimitWindow time.Duration
}
