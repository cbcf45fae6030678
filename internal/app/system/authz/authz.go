// Package authz holds the pure role predicates that gate privileged
// operations. Every predicate re-reads the freshly resolved user from the
// request context; there is no cached permission state. Roles outside the
// closed set deny everything.
package authz

import (
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the caller's role, ObjectID, and a found flag. ok=false
// means no authenticated user is present.
func UserCtx(r *http.Request) (role models.Role, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	return u.Role, u.ID, true
}

// IsAdmin reports whether the caller is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsAdminOrTreasurer reports whether the caller may manage the contribution
// ledger and view aggregate summaries.
func IsAdminOrTreasurer(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case models.RoleAdmin, models.RoleTreasurer:
		return true
	}
	return false
}

// CanUploadDocuments reports whether the caller's role is on the document
// upload allow-list.
func CanUploadDocuments(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case models.RoleSecretary, models.RoleTreasurer, models.RolePresident, models.RoleWebmaster, models.RoleAdmin:
		return true
	}
	return false
}

// CanManageEvents reports whether the caller may create, update, or delete
// calendar events. Only admins can.
func CanManageEvents(r *http.Request) bool {
	return IsAdmin(r)
}
