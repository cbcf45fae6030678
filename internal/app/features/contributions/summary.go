// internal/app/features/contributions/summary.go
package contributions

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekezagroup/wekeza/internal/app/policy/contributionpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// ServeSummary handles GET /contributions/summary?user_id=. Totals come
// from the rollup table, not a ledger scan.
func (h *Handler) ServeSummary(w http.ResponseWriter, r *http.Request) {
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

	sum, err := h.Rollups.UserSummary(r.Context(), target)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"summary": sum})
}

// ServeOverallSummary handles GET /contributions/summary/overall.
// Non-privileged callers get the zero summary.
func (h *Handler) ServeOverallSummary(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !contributionpolicy.CanViewAggregates(r) {
		respond.OK(w, map[string]any{"summary": models.OverallContributionSummary{}})
		return
	}

	sum, err := h.Rollups.OverallSummary(r.Context())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"summary": sum})
}
