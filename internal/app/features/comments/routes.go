// internal/app/features/comments/routes.go
package comments

import (
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the comment endpoints. Typically:
// r.Mount("/comments", comments.Routes(handler, tokens)).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Get("/{kind}/{id}", h.HandleList)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)

		pr.Post("/", h.HandleCreate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
