// internal/app/features/contact/submit.go
package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/mailer"
	"github.com/wekezagroup/wekeza/internal/app/system/ratelimit"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// HandleSubmit handles public POST /contact.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.Log.Warn("contact form rate limited", zap.String("ip", ip))
		respond.JSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]string{
				"code":    "rate_limited",
				"message": "too many submissions, try again later",
			},
		})
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}

	inq, err := h.Inquiries.Create(r.Context(), models.ContactInquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Reason:  req.Reason,
		Message: req.Message,
	})
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("contact inquiry received",
		zap.String("reason", inq.Reason),
		zap.String("ip", ip))
	h.notifyAdmins(r.Context(), inq)
	respond.Created(w, map[string]any{"inquiry": inq})
}

// notifyAdmins emails the configured inbox about a new inquiry. Delivery
// is best-effort; the submission has already been stored.
func (h *Handler) notifyAdmins(ctx context.Context, inq models.ContactInquiry) {
	if h.Mail == nil || h.NotifyTo == "" {
		return
	}
	msg := mailer.BuildInquiryEmail(mailer.InquiryEmailData{
		SiteName: "Wekeza",
		Name:     inq.Name,
		Email:    inq.Email,
		Phone:    inq.Phone,
		Reason:   inq.Reason,
		Message:  inq.Message,
	})
	msg.To = []string{h.NotifyTo}
	if err := h.Mail.Send(ctx, msg); err != nil {
		h.Log.Warn("inquiry notification failed", zap.Error(err))
	}
}

// ServeList handles GET /contact (admin only).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.IsAdmin(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	rows, err := h.Inquiries.List(r.Context())
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"inquiries": rows})
}
