// internal/app/features/events/manage.go
package events

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/authz"
	"github.com/wekezagroup/wekeza/internal/app/system/htmlsanitize"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

const defaultEventColor = "emerald"

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Virtual     bool   `json:"virtual"`
	MeetingLink string `json:"meeting_link"`
	Color       string `json:"color"`
}

func (req eventRequest) toModel() (models.Event, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			return models.Event{}, fmt.Errorf("%w: date must be YYYY-MM-DD or RFC3339", apperrors.ErrValidation)
		}
	}
	color := req.Color
	if color == "" {
		color = defaultEventColor
	}
	return models.Event{
		Title:       req.Title,
		Description: htmlsanitize.Strict(req.Description),
		Date:        date.UTC(),
		Time:        req.Time,
		Location:    req.Location,
		Virtual:     req.Virtual,
		MeetingLink: req.MeetingLink,
		Color:       color,
	}, nil
}

// HandleCreate handles POST /events (admin only).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.CanManageEvents(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	ev, err := req.toModel()
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	ev.CreatedBy = caller.ID

	created, err := h.Events.Create(r.Context(), ev)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	h.Log.Info("event created", zap.String("title", created.Title))
	respond.Created(w, map[string]any{"event": created})
}

// HandleUpdate handles PUT /events/{id} (admin only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.CanManageEvents(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid event id", apperrors.ErrValidation))
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid JSON body", apperrors.ErrValidation))
		return
	}
	mut, err := req.toModel()
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	updated, err := h.Events.Update(r.Context(), id, mut)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"event": updated})
}

// HandleDelete handles DELETE /events/{id} (admin only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.CurrentUserOrError(r); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	if !authz.CanManageEvents(r) {
		respond.Error(w, h.Log, apperrors.ErrForbidden)
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, h.Log, fmt.Errorf("%w: invalid event id", apperrors.ErrValidation))
		return
	}

	if err := h.Events.Delete(r.Context(), id); err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"deleted": true})
}
