// internal/app/features/users/audit.go
package users

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

const auditDefaultLimit = 50

// ServeAuditLog handles GET /users/audit (admin only): the recent audit
// trail, optionally narrowed to one member or one category.
func (h *Handler) ServeAuditLog(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	filter := auditstore.QueryFilter{
		Category: r.URL.Query().Get("category"),
		Limit:    auditDefaultLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(w, h.Log, apperrors.ErrValidation)
			return
		}
		filter.UserID = &id
	}

	events, err := h.Events.Query(r.Context(), filter)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"events": events})
}
