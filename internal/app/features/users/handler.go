// internal/app/features/users/handler.go
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
	"github.com/wekezagroup/wekeza/internal/app/system/auditlog"
)

// Handler owns the member-directory and role endpoints. It is constructed
// once at startup in bootstrap with the shared Mongo handle and logger.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Users  *userstore.Store
	Audit  *auditlog.Logger
	Events *auditstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	events := auditstore.New(db)
	return &Handler{
		DB:     db,
		Log:    logger,
		Users:  userstore.New(db),
		Audit:  auditlog.New(events, logger),
		Events: events,
	}
}
