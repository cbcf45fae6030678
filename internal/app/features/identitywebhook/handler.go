// internal/app/features/identitywebhook/handler.go
package identitywebhook

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
	"github.com/wekezagroup/wekeza/internal/app/system/auditlog"
	"github.com/wekezagroup/wekeza/internal/app/system/webhooksig"
)

// Handler receives user lifecycle events from the identity provider and
// mirrors them into the users collection. It is the only writer that
// creates or removes user rows.
type Handler struct {
	Log      *zap.Logger
	Users    *userstore.Store
	Verifier *webhooksig.Verifier
	Audit    *auditlog.Logger
}

func NewHandler(db *mongo.Database, verifier *webhooksig.Verifier, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Users:    userstore.New(db),
		Verifier: verifier,
		Audit:    auditlog.New(auditstore.New(db), logger),
	}
}
