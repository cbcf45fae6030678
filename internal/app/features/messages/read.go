// internal/app/features/messages/read.go
package messages

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

// HandleMarkRead handles POST /messages/read with {"message_ids": [...]}.
// Unknown ids are ignored and re-marking is a no-op, so clients can send
// whatever is on screen. Any successful call advances the caller's
// read watermark.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	var req struct {
		MessageIDs []string `json:"message_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}

	ids := make([]primitive.ObjectID, 0, len(req.MessageIDs))
	for _, raw := range req.MessageIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(w, h.Log, fmt.Errorf("%w: invalid message id %q", apperrors.ErrValidation, raw))
			return
		}
		ids = append(ids, id)
	}

	if err := h.Messages.MarkRead(r.Context(), caller.ID, ids); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := h.Messages.TouchWatermark(r.Context(), caller.ID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"marked": len(ids)})
}

// HandleMarkAllRead handles POST /messages/read_all.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	if err := h.Messages.MarkAllRead(r.Context(), caller.ID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if err := h.Messages.TouchWatermark(r.Context(), caller.ID); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"marked_all": true})
}
