// internal/app/features/documents/manage.go
package documents

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/documentpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// HandleCreateFromURL handles POST /documents/from_url (admin only).
// Registers an externally hosted file, e.g. a scanned constitution on a
// shared drive, without moving the bytes.
func (h *Handler) HandleCreateFromURL(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.IsAdmin(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	var req struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Published   bool   `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	if !urlutil.IsValidAbsHTTPURL(req.URL) {
		respond.Error(w, h.Log, fmt.Errorf("%w: url must be a valid http(s) URL", apperrors.ErrValidation))
		return
	}

	doc, err := h.Docs.Create(r.Context(), models.Document{
		Name:        req.Name,
		URL:         req.URL,
		Category:    req.Category,
		Description: req.Description,
		OwnerID:     caller.ID,
		IsPublished: req.Published,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.Created(w, map[string]any{"document": doc})
}

// HandlePublish handles POST /documents/{id}/publish with
// {"published": bool}. Owner or admin.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid document id", apperrors.ErrValidation))
		return
	}

	var req struct {
		Published bool `json:"published"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}

	doc, err := h.Docs.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !documentpolicy.CanModify(r, doc) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	updated, err := h.Docs.SetPublished(r.Context(), id, req.Published)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"document": updated})
}

// HandleDelete handles DELETE /documents/{id}. Owner or admin. The blob
// delete is best effort; a dangling blob is preferable to a row whose
// file is gone.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid document id", apperrors.ErrValidation))
		return
	}

	doc, err := h.Docs.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !documentpolicy.CanModify(r, doc) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	deleted, err := h.Docs.Delete(r.Context(), id)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if deleted.StorageKey != "" {
		if err := h.Storage.Delete(r.Context(), deleted.StorageKey); err != nil {
			h.Log.Error("blob delete failed", zap.Error(err), zap.String("key", deleted.StorageKey))
		}
	}
	respond.OK(w, map[string]any{"deleted": true})
}
