// internal/app/features/nodes/routes.go
package nodes

import (
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the node endpoints. Typically:
// r.Mount("/nodes", nodes.Routes(handler, tokens)).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.HandleGet)
	r.Get("/{id}/members", h.HandleListMembers)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)

		pr.Post("/", h.HandleCreate)
		pr.Post("/{id}/join", h.HandleJoin)
		pr.Post("/{id}/members", h.HandleUpdateMember)
	})

	return r
}
