// internal/app/features/completions/routes.go
package completions

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the completion log, mounted under
// /completions. The bearer-token middleware is applied by the caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{userId}", h.List)
	r.Get("/{userId}/stats", h.StatsWindow)
	r.Delete("/{userId}/{completionId}", h.Delete)
	return r
}
