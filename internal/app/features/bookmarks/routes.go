// internal/app/features/bookmarks/routes.go
package bookmarks

import (
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the bookmark endpoints, all of which require a
// signed-in user.
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Use(tokens.RequireAuth)

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleAdd)
	r.Delete("/", h.HandleRemove)

	return r
}
