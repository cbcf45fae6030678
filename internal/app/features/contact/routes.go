// internal/app/features/contact/routes.go
package contact

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /contact subrouter. Submission is public; the
// inquiry list requires a signed-in admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.HandleSubmit)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeList)
	})
	return r
}
