// internal/app/features/users/role.go
package users

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/normalize"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type roleUpdateRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HandleRoleUpdate handles POST /users/role (admin only): assign one of
// the known roles to a member.
func (h *Handler) HandleRoleUpdate(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	var req roleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}

	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation))
		return
	}

	before, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	role := models.Role(normalize.Role(req.Role))
	if err := h.Users.UpdateRole(r.Context(), id, role); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("member role updated",
		zap.String("user_id", id.Hex()),
		zap.String("role", string(role)))
	if actor, ok := auth.CurrentUser(r); ok {
		h.Audit.Admin(r.Context(), r, auditstore.EventRoleChanged, &actor.ID, &id,
			map[string]string{"from": string(before.Role), "to": string(role)})
	}

	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"user": user})
}
