// internal/app/policy/messagepolicy.go
package messagepolicy

import (
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// CanDelete reports whether the current request user may delete the
// message: its author, or an admin moderating the chat.
func CanDelete(r *http.Request, msg models.Message) bool {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if uid == msg.AuthorID {
		return true
	}
	return authz.IsAdmin(r)
}
