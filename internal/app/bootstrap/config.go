// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for HabitStack.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, auth_jwks_url, etc.
//   - Environment variables: HABITSTACK_MONGO_URI, HABITSTACK_AUTH_JWKS_URL, etc.
//   - Command-line flags: --mongo_uri, --auth_jwks_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "habitstack", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer-token verification
	{Name: "auth_jwks_url", Default: "", Desc: "JWKS endpoint of the identity provider"},
	{Name: "auth_issuer", Default: "", Desc: "Expected token issuer"},
	{Name: "auth_audience", Default: "", Desc: "Expected token audience"},

	// Roles
	{Name: "elevated_role", Default: "coach", Desc: "Role granting cross-user access"},

	// Upstream identity admin API
	{Name: "identity_admin_url", Default: "", Desc: "Base URL of the identity provider's admin API (blank disables account removal)"},
	{Name: "identity_admin_token", Default: "", Desc: "Bearer token for the identity admin API"},

	// Rate limiting
	{Name: "rate_limit_max", Default: 100, Desc: "Max requests per client IP per window"},
	{Name: "rate_limit_window", Default: "15m", Desc: "Rate limit window (e.g., 15m, 1h)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, HABITSTACK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "HABITSTACK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		AuthJWKSURL:  appValues.String("auth_jwks_url"),
		AuthIssuer:   appValues.String("auth_issuer"),
		AuthAudience: appValues.String("auth_audience"),

		ElevatedRole: appValues.String("elevated_role"),

		IdentityAdminURL:   appValues.String("identity_admin_url"),
		IdentityAdminToken: appValues.String("identity_admin_token"),

		RateLimitMax:    appValues.Int("rate_limit_max"),
		RateLimitWindow: appValues.Duration("rate_limit_window", 15*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// HabitStack validates the MongoDB URI format and requires token
// verification settings so misconfiguration fails at startup, not on the
// first request.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.AuthJWKSURL == "" {
		return fmt.Errorf("auth_jwks_url is required")
	}
	if appCfg.ElevatedRole == "" {
		return fmt.Errorf("elevated_role must not be blank")
	}
	if appCfg.RateLimitMax <= 0 {
		return fmt.Errorf("rate_limit_max must be positive")
	}
	return nil
}
