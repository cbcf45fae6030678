// internal/app/features/events/serve.go
package events

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

// ServeUpcoming handles GET /events?limit=. Soonest first, today's
// events included.
func (h *Handler) ServeUpcoming(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	limit := 0
	if raw := query.Get(r, "limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	// Compare against the start of today so an event later today still
	// counts as upcoming.
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rows, err := h.Events.ListUpcoming(r.Context(), startOfDay, limit)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"events": rows})
}

// ServeAll handles GET /events/all, the admin calendar view including
// past events.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	rows, err := h.Events.ListAll(r.Context())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"events": rows})
}
