// internal/app/features/contributions/handler.go
package contributions

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	auditstore "github.com/wekezagroup/wekeza/internal/app/store/audit"
	contributionstore "github.com/wekezagroup/wekeza/internal/app/store/contributions"
	userstore "github.com/wekezagroup/wekeza/internal/app/store/users"
	"github.com/wekezagroup/wekeza/internal/app/system/auditlog"
)

// Handler owns the contribution ledger endpoints. Every mutation runs
// the ledger write and its rollup deltas inside txn.Run so the served
// summaries stay consistent with the rows.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Users    *userstore.Store
	Contribs *contributionstore.Store
	Rollups  *contributionstore.Rollups
	Audit    *auditlog.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Users:    userstore.New(db),
		Contribs: contributionstore.New(db),
		Rollups:  contributionstore.NewRollups(db),
		Audit:    auditlog.New(auditstore.New(db), logger),
	}
}
