// internal/app/features/contributions/routes.go
package contributions

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /contributions subrouter. Every route requires a
// signed-in member; write routes additionally check role inside the
// handler.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/all", h.ServeListAll)
	r.Get("/summary", h.ServeSummary)
	r.Get("/summary/overall", h.ServeOverallSummary)

	r.Post("/", h.HandleAdd)
	r.Put("/{id}", h.HandleEdit)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
