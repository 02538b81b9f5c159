// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/dalemusser/civichub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account endpoints. Typically:
// r.Mount("/accounts", accounts.Routes(handler, tokens)).
func Routes(h *Handler, tokens *auth.Tokens) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.RequireAuth)
		pr.Get("/me", h.HandleMe)
	})

	return r
}
