// internal/app/features/graphql/routes.go
package graphql

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter serving the GraphQL endpoint. The lenient
// bearer-token middleware is applied by the caller so resolvers decide
// per-field whether identity is required.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/", h.Serve)
	return r
}
