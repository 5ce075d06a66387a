// internal/app/features/habits/routes.go
package habits

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the habit catalog, mounted under /habits.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/search/{query}", h.Search)
	r.Get("/{id}", h.Get)
	return r
}
