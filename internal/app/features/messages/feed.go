// internal/app/features/messages/feed.go
package messages

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wekezagroup/wekeza/internal/app/system/auth"
	"github.com/wekezagroup/wekeza/internal/app/system/paging"
	"github.com/wekezagroup/wekeza/internal/app/system/respond"
	"github.com/wekezagroup/wekeza/internal/domain/models"
)

type feedMessage struct {
	ID              primitive.ObjectID `json:"id"`
	Body            string             `json:"body"`
	AuthorID        primitive.ObjectID `json:"author_id"`
	AuthorName      string             `json:"author_name"`
	AuthorAvatarURL string             `json:"author_avatar_url,omitempty"`
	AuthorRole      string             `json:"author_role,omitempty"`
	IsRead          bool               `json:"isRead"`
	CreatedAt       time.Time          `json:"created_at"`
}

type feedResponse struct {
	Messages       []feedMessage `json:"messages"`
	ContinueCursor string        `json:"continueCursor"`
	IsDone         bool          `json:"isDone"`
}

// ServeFeed handles GET /messages?numItems=&cursor=. Pages newest-first;
// isRead is computed against the caller's membership in each read set.
func (h *Handler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	cfg := paging.ConfigureFeed(query.Get(r, "cursor"), paging.ParseNumItems(r))
	rows, hasMore, err := h.Messages.ListPage(r.Context(), cfg)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(rows))
	seen := make(map[primitive.ObjectID]bool, len(rows))
	for _, m := range rows {
		if !seen[m.AuthorID] {
			seen[m.AuthorID] = true
			authorIDs = append(authorIDs, m.AuthorID)
		}
	}
	authors, err := h.Users.MapByIDs(r.Context(), authorIDs)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	out := make([]feedMessage, 0, len(rows))
	for _, m := range rows {
		fm := feedMessage{
			ID:        m.ID,
			Body:      m.Body,
			AuthorID:  m.AuthorID,
			IsRead:    readBy(m, caller.ID),
			CreatedAt: m.CreatedAt,
		}
		if a, ok := authors[m.AuthorID]; ok {
			fm.AuthorName = a.Name
			fm.AuthorAvatarURL = a.AvatarURL
			fm.AuthorRole = string(a.Role)
		} else {
			fm.AuthorName = "Former member"
		}
		out = append(out, fm)
	}

	respond.OK(w, feedResponse{
		Messages:       out,
		ContinueCursor: paging.ContinueCursor(rows, func(m models.Message) primitive.ObjectID { return m.ID }),
		IsDone:         !hasMore,
	})
}

func readBy(m models.Message, userID primitive.ObjectID) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ServeUnreadCount handles GET /messages/unread_count.
func (h *Handler) ServeUnreadCount(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CurrentUserOrError(r)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}

	n, err := h.Messages.UnreadCount(r.Context(), caller.ID)
	if err != nil {
		respond.Error(w, h.Log, err)
		return
	}
	respond.OK(w, map[string]any{"unread": n})
}
