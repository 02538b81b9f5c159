// internal/app/features/feedapi/routes.go
package feedapi

import "github.com/go-chi/chi/v5"

// Routes mounts the feed endpoint. Typically:
// r.Mount("/feed", feedapi.Routes(handler)).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.HandleGet)
	return r
}
