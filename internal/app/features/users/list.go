// internal/app/features/users/list.go
package users

import (
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

// ServeList handles GET /users: the member directory, sorted by folded
// name. Any signed-in member may read it.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	members, err := h.Users.List(r.Context())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"members": members})
}
