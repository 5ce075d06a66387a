// internal/app/features/bundles/routes.go
package bundles

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for bundles, mounted under /bundles.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/habits", h.Habits)
	return r
}
