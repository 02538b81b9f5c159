// internal/app/features/contents/routes.go
package contents

import (
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the content endpoints. Typically:
// r.Mount("/contents", contents.Routes(handler, tokens)).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	// Public reads.
	r.Get("/{kind}", h.HandleList)
	r.Get("/{kind}/search", h.HandleSearch)
	r.Get("/{kind}/{id}", h.HandleGet)

	// Writes require a signed-in user.
	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)

		pr.Post("/{kind}", h.HandleCreate)
		pr.Post("/{kind}/{id}/adopt", h.HandleAdopt)
		pr.Post("/{kind}/{id}/publish", h.HandlePublish)
		pr.Post("/{kind}/{id}/relevancy", h.HandleRelevancy)
		pr.Post("/{kind}/{id}/view", h.HandleView)
		pr.Get("/{kind}/{id}/non_adopted", h.HandleNonAdopted)
	})

	return r
}
