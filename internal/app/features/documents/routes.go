// internal/app/features/documents/routes.go
package documents

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /documents subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeMine)
	r.Get("/published", h.ServePublished)
	r.Get("/{id}/download", h.ServeDownload)

	r.Post("/", h.HandleUpload)
	r.Post("/from_url", h.HandleCreateFromURL)
	r.Post("/{id}/publish", h.HandlePublish)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
