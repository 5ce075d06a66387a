// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for user profiles, mounted under /users.
// The bearer-token middleware is applied by the caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/{userId}", h.Get)
	r.Put("/{userId}", h.Update)
	r.Delete("/{userId}", h.Delete)
	return r
}
