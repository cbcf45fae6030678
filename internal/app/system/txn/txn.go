// Package txn runs multi-document writes in a Mongo transaction when the
// deployment supports them, falling back to sequential writes when it does
// not (standalone servers have no transaction support). The ledger uses this
// to keep contribution rows and their rollup counters in step.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a session transaction. If the server rejects
// transactions outright, fn is re-run once outside a session so the write
// still lands; the caller loses atomicity but not the data. Rollup drift
// from that path is repairable via a scan rebuild.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := db.Client().StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Warn("transactions unavailable; running without atomicity", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Warn("transactions unavailable; running without atomicity", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// transactions (standalone server, old wire version, or session-less mode).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263: // IllegalOperation variants raised for txns on standalones
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	keywordPairs := [][2]string{
		{"transaction", "replica set"},
		{"transaction", "session"},
		{"session", "not supported"},
		{"illegal operation", "transaction"},
	}
	for _, pair := range keywordPairs {
		if strings.Contains(msg, pair[0]) && strings.Contains(msg, pair[1]) {
			return true
		}
	}
	return false
}
