// internal/app/features/investments/routes.go
package investments

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /investments subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	return r
}
