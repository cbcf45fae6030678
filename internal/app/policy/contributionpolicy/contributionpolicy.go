// internal/app/policy/contributionpolicy.go
package contributionpolicy

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekezagroup/wekeza/internal/app/system/authz"
)

// CanManage reports whether the current request user may add, edit, or
// delete ledger rows.
func CanManage(r *http.Request) bool {
	return authz.IsAdminOrTreasurer(r)
}

// CanViewMember reports whether the current request user may read the
// given member's rows and summary: members see their own, admins and
// treasurers see anyone's.
func CanViewMember(r *http.Request, targetUserID primitive.ObjectID) bool {
	_, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if uid == targetUserID {
		return true
	}
	return authz.IsAdminOrTreasurer(r)
}

// CanViewAggregates reports whether the current request user may read
// group-wide listings and summaries. Callers that are refused get empty
// payloads rather than errors; the handlers own that fail-soft shape.
func CanViewAggregates(r *http.Request) bool {
	return authz.IsAdminOrTreasurer(r)
}
