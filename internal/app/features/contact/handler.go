// internal/app/features/contact/handler.go
package contact

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	contactstore "github.com/wekezagroup/wekeza/internal/app/store/contacts"
	"github.com/wekezagroup/wekeza/internal/app/system/mailer"
	"github.com/wekezagroup/wekeza/internal/app/system/ratelimit"
)

// Handler owns the public contact form and the admin inquiry list. The
// form is unauthenticated, so submissions are rate limited per client IP.
// Mail may be nil (notifications disabled); NotifyTo is the admin inbox
// for new-inquiry notifications.
type Handler struct {
	Log       *zap.Logger
	Inquiries *contactstore.Store
	Limiter   *ratelimit.Limiter
	Mail      mailer.Sender
	NotifyTo  string
}

func NewHandler(db *mongo.Database, mail mailer.Sender, notifyTo string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:       logger,
		Inquiries: contactstore.New(db),
		Limiter:   ratelimit.New(5, 10*time.Minute),
		Mail:      mail,
		NotifyTo:  notifyTo,
	}
}
