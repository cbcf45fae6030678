// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /users subrouter. ServeCurrent stays outside the
// signed-in group so the UI can check authentication state.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/me", h.ServeCurrent)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeList)
		pr.Get("/audit", h.ServeAuditLog)
		pr.Post("/role", h.HandleRoleUpdate)
	})
	return r
}
