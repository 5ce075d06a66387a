// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	bundlesfeature "github.com/habitstack/habitstack/internal/app/features/bundles"
	completionsfeature "github.com/habitstack/habitstack/internal/app/features/completions"
	graphqlfeature "github.com/habitstack/habitstack/internal/app/features/graphql"
	habitsfeature "github.com/habitstack/habitstack/internal/app/features/habits"
	healthfeature "github.com/habitstack/habitstack/internal/app/features/health"
	usersfeature "github.com/habitstack/habitstack/internal/app/features/users"
	"github.com/habitstack/habitstack/internal/app/service"
	bundlestore "github.com/habitstack/habitstack/internal/app/store/bundles"
	completionstore "github.com/habitstack/habitstack/internal/app/store/completions"
	habitstore "github.com/habitstack/habitstack/internal/app/store/habits"
	userstore "github.com/habitstack/habitstack/internal/app/store/users"
	"github.com/habitstack/habitstack/internal/app/system/authn"
	"github.com/habitstack/habitstack/internal/app/system/authz"
	"github.com/habitstack/habitstack/internal/app/system/ratelimit"
)

// verifier is kept for Shutdown so the JWKS refresh goroutine stops with the
// process.
var verifier *authn.OIDCVerifier

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. HabitStack wires stores into the shared
// service layer, then mounts both transports over it: the REST feature
// routers and the GraphQL endpoint.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.MongoDatabase)

	v, err := authn.NewOIDCVerifier(context.Background(), appCfg.AuthJWKSURL, appCfg.AuthIssuer, appCfg.AuthAudience)
	if err != nil {
		logger.Error("token verifier init failed", zap.Error(err))
		return nil, err
	}
	verifier = v
	tokens := authn.NewMiddleware(v, users, logger)

	var remover authn.AccountRemover = authn.NopAccountRemover{}
	if appCfg.IdentityAdminURL != "" {
		remover = authn.NewAccountClient(appCfg.IdentityAdminURL, appCfg.IdentityAdminToken)
	}

	svc := service.New(service.Deps{
		HabitStore:      habitstore.New(deps.MongoDatabase),
		BundleStore:     bundlestore.New(deps.MongoDatabase),
		UserStore:       users,
		CompletionStore: completionstore.New(deps.MongoDatabase),
		Guard:           authz.NewGuard(appCfg.ElevatedRole),
		Remover:         remover,
		Log:             logger,
	})

	limiter := ratelimit.New(appCfg.RateLimitMax, appCfg.RateLimitWindow)

	r := chi.NewRouter()
	r.Use(limiter.Middleware())

	// Public catalog endpoints.
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))
	r.Mount("/habits", habitsfeature.Routes(habitsfeature.NewHandler(svc.Habits, logger)))
	r.Mount("/bundles", bundlesfeature.Routes(bundlesfeature.NewHandler(svc.Bundles, logger)))

	// Guarded endpoints require a verified bearer token.
	r.Group(func(r chi.Router) {
		r.Use(tokens.Require)
		r.Mount("/users", usersfeature.Routes(usersfeature.NewHandler(svc.Users, logger)))
		r.Mount("/completions", completionsfeature.Routes(completionsfeature.NewHandler(svc.Completions, svc.Stats, logger)))
	})

	// GraphQL loads identity leniently; resolvers enforce their own access.
	gql := graphqlfeature.NewHandler(graphqlfeature.NewResolver(svc), coreCfg.Env == "prod", logger)
	r.Group(func(r chi.Router) {
		r.Use(tokens.Load)
		r.Mount("/graphql", graphqlfeature.Routes(gql))
	})

	return r, nil
}
