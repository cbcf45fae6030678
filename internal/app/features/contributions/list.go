// internal/app/features/contributions/list.go
package contributions

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekezagroup/wekeza/internal/app/policy/contributionpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/normalize"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// ServeList handles GET /contributions?user_id=. Without the parameter
// it returns the caller's own ledger; with it, the caller must be the
// target or hold a privileged role.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	target := caller.ID
	if raw := query.Get(r, "user_id"); raw != "" {
		target, err = primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(w, h.Log, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation))
			return
		}
	}
	if !contributionpolicy.CanViewMember(r, target) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	rows, err := h.Contribs.ListByUser(r.Context(), target)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"contributions": rows})
}

// ServeListAll handles GET /contributions/all?month=&type=. Non-privileged
// callers get an empty list rather than an error; the group ledger is an
// administrative view, not a secret.
func (h *Handler) ServeListAll(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !contributionpolicy.CanViewAggregates(r) {
		respond.OK(w, map[string]any{"contributions": []models.Contribution{}})
		return
	}

	month := normalize.Month(query.Get(r, "month"))
	typ := query.Get(r, "type")
	rows, err := h.Contribs.ListAll(r.Context(), month, typ)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"contributions": rows})
}
