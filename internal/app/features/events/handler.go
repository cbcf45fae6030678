// internal/app/features/events/handler.go
package events

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	eventstore "github.com/wekezagroup/wekeza/internal/app/store/events"
)

// Handler owns the event directory endpoints. Reads are open to any
// signed-in member; writes require the event-management capability.
type Handler struct {
	Log    *zap.Logger
	Events *eventstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		Events: eventstore.New(db),
	}
}
