// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /events subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeUpcoming)
	r.Get("/all", h.ServeAll)

	r.Post("/", h.HandleCreate)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
