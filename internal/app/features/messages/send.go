// internal/app/features/messages/send.go
package messages

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/messagepolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

// HandleSend handles POST /messages. The body is sanitized to plain
// text in the store; the author starts in the read set.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}

	msg, err := h.Messages.Insert(r.Context(), caller.ID, req.Body)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("message sent", zap.String("author_id", caller.ID.Hex()))
	respond.Created(w, map[string]any{"message": msg})
}

// HandleDelete handles DELETE /messages/{id}. Authors may delete their
// own messages; admins may delete any.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid message id", apperrors.ErrValidation))
		return
	}

	msg, err := h.Messages.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !messagepolicy.CanDelete(r, msg) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	if err := h.Messages.Delete(r.Context(), id); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"deleted": true})
}
