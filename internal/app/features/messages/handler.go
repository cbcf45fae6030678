// internal/app/features/messages/handler.go
package messages

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	messagestore "github.com/wekezagroup/wekeza/internal/app/store/messages"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
)

// Handler owns the group chat endpoints. Author name, avatar, and role
// are joined at serve time rather than denormalized into message rows,
// so renames and role changes show up on old messages immediately.
type Handler struct {
	Log      *zap.Logger
	Users    *userstore.Store
	Messages *messagestore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:      logger,
		Users:    userstore.New(db),
		Messages: messagestore.New(db),
	}
}
