// internal/app/features/messages/routes.go
package messages

import (
	"github.com/go-chi/chi/v5"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
)

// Routes returns the /messages subrouter.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeFeed)
	r.Get("/unread_count", h.ServeUnreadCount)

	r.Post("/", h.HandleSend)
	r.Post("/read", h.HandleMarkRead)
	r.Post("/read_all", h.HandleMarkAllRead)
	r.Delete("/{id}", h.HandleDelete)
	return r
}
