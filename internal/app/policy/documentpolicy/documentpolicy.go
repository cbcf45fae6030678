// internal/app/policy/documentpolicy.go
package documentpolicy

import (
	"net/http"

	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// CanUpload reports whether the current request user may add documents.
// Office holders only; ordinary members read.
func CanUpload(r *http.Request) bool {
	return authz.CanUploadDocuments(r)
}

// CanModify reports whether the current request user may publish,
// unpublish, or delete the document: its owner, or an admin.
func CanModify(r *http.Request, doc models.Document) bool {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if uid == doc.OwnerID {
		return true
	}
	return authz.IsAdmin(r)
}
