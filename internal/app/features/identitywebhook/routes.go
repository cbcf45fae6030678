// internal/app/features/identitywebhook/routes.go
package identitywebhook

import "github.com/go-chi/chi/v5"

// Routes returns the webhook subrouter. Mounted under /webhooks/identity;
// authentication is by delivery signature, not bearer token.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Serve)
	return r
}
