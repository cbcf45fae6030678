// internal/app/features/users/current.go
package users

import (
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// currentResponse describes the caller to the client UI. Unauthenticated
// callers get the zero shape with isAuthenticated false rather than an
// error, so the UI can render a signed-out state from one call.
type currentResponse struct {
	IsAuthenticated    bool         `json:"isAuthenticated"`
	User               *models.User `json:"user,omitempty"`
	IsAdmin            bool         `json:"isAdmin"`
	CanUploadDocuments bool         `json:"canUploadDocuments"`
	CanManageEvents    bool         `json:"canManageEvents"`
}

// ServeCurrent handles GET /users/me.
func (h *Handler) ServeCurrent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		respond.OK(w, currentResponse{})
		return
	}

	respond.OK(w, currentResponse{
		IsAuthenticated:    true,
		User:               user,
		IsAdmin:            authz.IsAdmin(r),
		CanUploadDocuments: authz.CanUploadDocuments(r),
		CanManageEvents:    authz.CanManageEvents(r),
	})
}
