// internal/app/features/investments/investments.go
package investments

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/contributionpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type investmentRequest struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	ReturnRate float64 `json:"return_rate"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Status     string  `json:"status"`
}

func (req investmentRequest) toModel() (models.Investment, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return models.Investment{}, fmt.Errorf("%w: start_date must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	inv := models.Investment{
		Name:       req.Name,
		Amount:     req.Amount,
		ReturnRate: req.ReturnRate,
		StartDate:  start.UTC(),
		Status:     req.Status,
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return models.Investment{}, fmt.Errorf("%w: end_date must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		endUTC := end.UTC()
		inv.EndDate = &endUTC
	}
	return inv, nil
}

// ServeList handles GET /investments?user_id=. Same visibility rule as
// the contribution ledger: own positions, or any member's for
// admin/treasurer.
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

	rows, err := h.Investments.ListByUser(r.Context(), target)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"investments": rows})
}

// HandleCreate handles POST /investments (admin/treasurer only).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.IsAdminOrTreasurer(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	inv, err := req.toModel()
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	inv.UserID, err = primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation))
		return
	}
	if _, err := h.Users.GetByID(r.Context(), inv.UserID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	created, err := h.Investments.Create(r.Context(), inv)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("investment recorded",
		zap.String("user_id", created.UserID.Hex()),
		zap.String("name", created.Name))
	respond.Created(w, map[string]any{"investment": created})
}

// HandleUpdate handles PUT /investments/{id} (admin/treasurer only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.IsAdminOrTreasurer(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid investment id", apperrors.ErrValidation))
		return
	}

	var req investmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	mut, err := req.toModel()
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	updated, err := h.Investments.Update(r.Context(), id, mut)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"investment": updated})
}
