// internal/app/features/identitywebhook/webhook.go
package identitywebhook

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
)

// maxBodyBytes caps webhook payloads; provider events are small.
const maxBodyBytes = 1 << 20

// event is the provider's envelope. Data carries the user object for
// user.* events.
type event struct {
	Type string    `json:"type"`
	Data eventUser `json:"data"`
}

type eventUser struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []emailAddress `json:"email_addresses"`
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

// Serve handles POST deliveries from the identity provider. Bad
// signatures get 401; unknown event types are acknowledged and skipped
// so the provider does not retry them forever.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}

	err = h.Verifier.Verify(
		r.Header.Get("svix-id"),
		r.Header.Get("svix-timestamp"),
		r.Header.Get("svix-signature"),
		body,
		time.Now(),
	)
	if err != nil {
		h.Log.Warn("webhook signature rejected", zap.Error(err))
		h.Audit.IdentityFailure(r.Context(), r, auditstore.EventWebhookRejected, err.Error())
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var ev event
	if err := json.Unmarshal(body, &ev); err != nil {
		h.Log.Warn("webhook payload unparseable", zap.Error(err))
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	switch ev.Type {
	case "user.created", "user.updated":
		email := ""
		if len(ev.Data.EmailAddresses) > 0 {
			email = ev.Data.EmailAddresses[0].EmailAddress
		}
		name := strings.TrimSpace(ev.Data.FirstName + " " + ev.Data.LastName)
		user, err := h.Users.UpsertFromIdentity(r.Context(), userstore.Profile{
			ExternalID: ev.Data.ID,
			Name:       name,
			Email:      email,
			AvatarURL:  ev.Data.ImageURL,
		})
		if err != nil {
			h.Log.Error("webhook user upsert failed",
				zap.String("external_id", ev.Data.ID),
				zap.Error(err))
			http.Error(w, "upsert failed", http.StatusInternalServerError)
			return
		}
		h.Log.Info("identity event applied",
			zap.String("type", ev.Type),
			zap.String("external_id", ev.Data.ID))
		eventType := auditstore.EventUserProvisioned
		if ev.Type == "user.updated" {
			eventType = auditstore.EventUserProfileSync
		}
		h.Audit.Identity(r.Context(), eventType, &user.ID,
			map[string]string{"external_id": ev.Data.ID})

	case "user.deleted":
		n, err := h.Users.DeleteByExternalID(r.Context(), ev.Data.ID)
		if err != nil {
			h.Log.Error("webhook user delete failed",
				zap.String("external_id", ev.Data.ID),
				zap.Error(err))
			http.Error(w, "delete failed", http.StatusInternalServerError)
			return
		}
		h.Log.Info("identity deletion applied",
			zap.String("external_id", ev.Data.ID),
			zap.Int64("deleted", n))
		h.Audit.Identity(r.Context(), auditstore.EventUserRemoved, nil,
			map[string]string{"external_id": ev.Data.ID})

	default:
		h.Log.Debug("ignoring identity event", zap.String("type", ev.Type))
	}

	w.WriteHeader(http.StatusOK)
}
