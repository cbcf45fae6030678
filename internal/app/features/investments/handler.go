// internal/app/features/investments/handler.go
package investments

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	investmentstore "github.com/wekezagroup/wekeza/internal/app/store/investments"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
)

// Handler owns the investment portfolio endpoints. Positions are
// attributed to one member; admins and the treasurer maintain them.
type Handler struct {
	Log         *zap.Logger
	Users       *userstore.Store
	Investments *investmentstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Log:         logger,
		Users:       userstore.New(db),
		Investments: investmentstore.New(db),
	}
}
