// internal/app/features/documents/serve.go
package documents

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/documentpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
)

// ServeMine handles GET /documents: the caller's own uploads, published
// or not.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	rows, err := h.Docs.ListByOwner(r.Context(), caller.ID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"documents": rows})
}

// ServePublished handles GET /documents/published, the shared library
// visible to every member.
func (h *Handler) ServePublished(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	rows, err := h.Docs.ListPublished(r.Context())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"documents": rows})
}

// ServeDownload handles GET /documents/{id}/download. Unpublished
// documents download only for their owner or an admin. Local storage is
// served directly; other backends redirect to a short-lived signed URL.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
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
	if !doc.IsPublished && !documentpolicy.CanModify(r, doc) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}
	if doc.StorageKey == "" {
		// Row created from an external URL; nothing to stream.
		http.Redirect(w, r, doc.URL, http.StatusSeeOther)
		return
	}

	disposition := fmt.Sprintf("attachment; filename=%q", doc.Name)
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if local, ok := h.Storage.(*storage.Local); ok {
		fullPath, err := local.GetFullPath(doc.StorageKey)
		if err != nil {
			h.Log.Error("document path lookup failed", zap.Error(err), zap.String("key", doc.StorageKey))
			respond.Error(w, h.Log, err)
			return
		}
		w.Header().Set("Content-Disposition", disposition)
		http.ServeFile(w, r, fullPath)
		return
	}

	signedURL, err := h.Storage.PresignedURL(r.Context(), doc.StorageKey, &storage.PresignOptions{
		Expires:            15 * time.Minute,
		ContentDisposition: disposition,
	})
	if err != nil {
		h.Log.Error("signed URL generation failed", zap.Error(err), zap.String("key", doc.StorageKey))
		respond.Error(w, h.Log, err)
		return
	}
	http.Redirect(w, r, signedURL, http.StatusSeeOther)
}
