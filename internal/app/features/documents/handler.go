// internal/app/features/documents/handler.go
package documents

import (
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	documentstore "github.com/wekezagroup/wekeza/internal/app/store/documents"
)

// Handler owns the document library endpoints. Metadata lives in Mongo,
// bytes in blob storage; PublicURLPrefix is the serving prefix recorded
// on each row at upload time.
type Handler struct {
	Log             *zap.Logger
	Docs            *documentstore.Store
	Storage         storage.Store
	PublicURLPrefix string
}

func NewHandler(db *mongo.Database, store storage.Store, publicURLPrefix string, logger *zap.Logger) *Handler {
	return &Handler{
		Log:             logger,
		Docs:            documentstore.New(db),
		Storage:         store,
		PublicURLPrefix: publicURLPrefix,
	}
}
