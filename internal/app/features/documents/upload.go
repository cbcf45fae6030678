// internal/app/features/documents/upload.go
package documents

import (
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/policy/documentpolicy"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// maxUploadBytes caps document uploads at 25 MB.
const maxUploadBytes = 25 << 20

// storageKey builds a collision-free blob path: documents/YYYY/MM/uuid-name.
func storageKey(filename string) string {
	now := time.Now().UTC()
	dir := fmt.Sprintf("documents/%04d/%02d", now.Year(), now.Month())
	name := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	return path.Join(dir, name)
}

// sanitizeFilename keeps blob paths to a safe character set.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

// HandleUpload handles multipart POST /documents. Office holders only.
// The blob is written first; if the metadata insert fails the blob is
// removed so storage does not accumulate orphans.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !documentpolicy.CanUpload(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: could not parse upload", apperrors.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: file is required", apperrors.ErrValidation))
		return
	}
	defer file.Close()

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storageKey(header.Filename)
	if err := h.Storage.Put(r.Context(), key, file, &storage.PutOptions{ContentType: contentType}); err != nil {
		h.Log.Error("document upload failed", zap.Error(err), zap.String("key", key))
		respond.Error(w, h.Log, err)
		return
	}

	// The backend knows its own public URL shape (local path prefix,
	// S3/CloudFront). Fall back to the serving prefix when it has none.
	publicURL := h.Storage.URL(key)
	if publicURL == "" {
		publicURL = path.Join(h.PublicURLPrefix, key)
	}

	doc, err := h.Docs.Create(r.Context(), models.Document{
		Name:        name,
		ContentType: contentType,
		Size:        header.Size,
		StorageKey:  key,
		URL:         publicURL,
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		OwnerID:     caller.ID,
		IsPublished: r.FormValue("published") == "true",
	})
	if err != nil {
		if delErr := h.Storage.Delete(r.Context(), key); delErr != nil {
			h.Log.Error("orphaned blob cleanup failed", zap.Error(delErr), zap.String("key", key))
		}
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("document uploaded",
		zap.String("id", doc.ID.Hex()),
		zap.String("key", key),
		zap.Int64("size", doc.Size))
	respond.Created(w, map[string]any{"document": doc})
}
