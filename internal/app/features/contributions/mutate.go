// internal/app/features/contributions/mutate.go
package contributions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/contributionpolicy"
	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/normalize"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/app/system/txn"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type contributionRequest struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Month  string  `json:"month"`
	Type   string  `json:"type"`
	Notes  string  `json:"notes"`
}

// parseDate accepts a bare date or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC3339", apperrors.ErrValidation)
}

func (req contributionRequest) toModel() (models.Contribution, error) {
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return models.Contribution{}, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return models.Contribution{}, err
	}
	return models.Contribution{
		UserID: userID,
		Amount: req.Amount,
		Date:   date,
		Month:  normalize.Month(req.Month),
		Type:   req.Type,
		Notes:  req.Notes,
	}, nil
}

// HandleAdd handles POST /contributions (admin/treasurer only). The row
// and its rollup deltas commit together.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !contributionpolicy.CanManage(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	row, err := req.toModel()
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	row.AddedBy = caller.ID

	// The target must be a known member; ledger rows for deleted or
	// never-provisioned identities are operator mistakes.
	if _, err := h.Users.GetByID(r.Context(), row.UserID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var created models.Contribution
	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		var err error
		created, err = h.Contribs.Insert(ctx, row)
		if err != nil {
			return err
		}
		return h.Rollups.Apply(ctx, created, +1)
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("contribution recorded",
		zap.String("user_id", created.UserID.Hex()),
		zap.String("type", created.Type),
		zap.String("month", created.Month))
	h.Audit.Admin(r.Context(), r, auditstore.EventContributionAdded, &caller.ID, &created.UserID,
		map[string]string{"type": created.Type, "month": created.Month})
	respond.Created(w, map[string]any{"contribution": created})
}

// HandleEdit handles PUT /contributions/{id} (admin/treasurer only).
// Uniqueness is re-checked: an edit that would collide with another row
// fails the same way an insert would.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !contributionpolicy.CanManage(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid contribution id", apperrors.ErrValidation))
		return
	}

	var req contributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	mut := models.Contribution{
		Amount: req.Amount,
		Date:   date,
		Month:  normalize.Month(req.Month),
		Type:   req.Type,
		Notes:  req.Notes,
	}

	old, err := h.Contribs.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	mut.UserID = old.UserID

	var updated models.Contribution
	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		var err error
		updated, err = h.Contribs.Update(ctx, id, mut)
		if err != nil {
			return err
		}
		if err := h.Rollups.Apply(ctx, old, -1); err != nil {
			return err
		}
		return h.Rollups.Apply(ctx, updated, +1)
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Audit.Admin(r.Context(), r, auditstore.EventContributionUpdated, &caller.ID, &updated.UserID,
		map[string]string{"type": updated.Type, "month": updated.Month})
	respond.OK(w, map[string]any{"contribution": updated})
}

// HandleDelete handles DELETE /contributions/{id} (admin/treasurer only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !contributionpolicy.CanManage(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid contribution id", apperrors.ErrValidation))
		return
	}

	old, err := h.Contribs.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	err = txn.Run(r.Context(), h.DB, h.Log, func(ctx context.Context) error {
		if err := h.Contribs.Delete(ctx, id); err != nil {
			return err
		}
		return h.Rollups.Apply(ctx, old, -1)
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Audit.Admin(r.Context(), r, auditstore.EventContributionDeleted, &caller.ID, &old.UserID,
		map[string]string{"type": old.Type, "month": old.Month})
	respond.OK(w, map[string]any{"deleted": true})
}
