// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/store/audit"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The contributions indexes carry the ledger's correctness: the two partial
unique indexes turn check-then-insert races into a single conditional
insert the server arbitrates.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureContributions(ctx, db); err != nil {
		problems = append(problems, "contributions: "+err.Error())
	}
	if err := ensureContributionRollups(ctx, db); err != nil {
		problems = append(problems, "contribution_rollups: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}
	if err := ensureMessageReads(ctx, db); err != nil {
		problems = append(problems, "message_reads: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureDocuments(ctx, db); err != nil {
		problems = append(problems, "documents: "+err.Error())
	}
	if err := ensureInvestments(ctx, db); err != nil {
		problems = append(problems, "investments: "+err.Error())
	}
	if err := ensureContactInquiries(ctx, db); err != nil {
		problems = append(problems, "contact_inquiries: "+err.Error())
	}
	if err := audit.New(db).EnsureIndexes(ctx); err != nil {
		problems = append(problems, "audit_events: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name          string `bson:"name"`
	Key           bson.D `bson:"key"`
	Unique        *bool  `bson:"unique,omitempty"`
	PartialFilter bson.M `bson:"partialFilterExpression,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

// optionsMatch reports whether an existing index already provides what the
// desired model asks for. Partial filters are compared by presence only;
// the filter bodies here never change shape without a rename.
func optionsMatch(m mongo.IndexModel, ex existingIndex) bool {
	wantUnique := m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
	haveUnique := ex.Unique != nil && *ex.Unique
	if wantUnique != haveUnique {
		return false
	}
	wantPartial := m.Options != nil && m.Options.PartialFilterExpression != nil
	return wantPartial == (len(ex.PartialFilter) > 0)
}

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 {
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// Mongo returns IndexOptionsConflict when an index with the same keys
// already exists under a different name or with different options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listIndexes(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return existing
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		var desiredName string
		if m.Options != nil && m.Options.Name != nil {
			desiredName = *m.Options.Name
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		existing := listIndexes(ctx, coll)
		ex, found := existing[desiredSig]

		if found && optionsMatch(m, ex) && (desiredName == "" || ex.Name == desiredName) {
			zap.L().Info("reusing existing index",
				zap.String("collection", coll.Name()),
				zap.String("name", ex.Name),
				zap.String("keys", desiredSig))
			continue
		}

		// Same keys but wrong name or options (e.g. adding uniqueness, or a
		// changed partial filter): drop and recreate under the desired shape.
		if found {
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			switch {
			case isDuplicateKeyErr(err):
				// Unique index over rows that already violate it. The ledger's
				// partial indexes hit this when legacy data holds duplicate
				// monthly rows or repeated joining fees.
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicate rows present)", coll.Name(), desiredName))
			case isOptionsConflictErr(err):
				errs = append(errs, fmt.Sprintf("%s(%s): conflicting index exists: %v", coll.Name(), desiredName, err))
			default:
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}

		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Identity webhooks upsert by the provider's stable id.
		{
			Keys:    bson.D{{Key: "external_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_externalid"),
		},
		// Member directory sorted by folded name.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_users_nameci_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_users_email"),
		},
	})
}

func ensureContributions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contributions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One monthly row per member per month.
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"type": "monthly"}).
				SetName("uniq_contributions_user_month_monthly"),
		},
		// One joining fee per member, ever.
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"type": "joining_fee"}).
				SetName("uniq_contributions_user_joiningfee"),
		},
		// Per-member history, newest first.
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: -1},
				{Key: "_id", Value: -1},
			},
			Options: options.Index().SetName("idx_contributions_user_date_id"),
		},
		// Treasurer views filtered by month and/or type.
		{
			Keys: bson.D{
				{Key: "month", Value: 1},
				{Key: "type", Value: 1},
				{Key: "date", Value: -1},
			},
			Options: options.Index().SetName("idx_contributions_month_type_date"),
		},
	})
}

func ensureContributionRollups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contribution_rollups")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One counter document per member; the group document has no user_id.
		{
			Keys: bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"user_id": bson.M{"$exists": true}}).
				SetName("uniq_rollups_user"),
		},
		{
			Keys: bson.D{{Key: "scope", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"scope": bson.M{"$exists": true}}).
				SetName("uniq_rollups_scope"),
		},
	})
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("messages")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_messages_author_id"),
		},
		// Unread counts filter on author != caller and read_by membership.
		{
			Keys:    bson.D{{Key: "read_by", Value: 1}},
			Options: options.Index().SetName("idx_messages_readby"),
		},
	})
}

func ensureMessageReads(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("message_reads")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// One watermark per member.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_messagereads_user"),
		},
	})
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("events")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Upcoming-events window: date >= now, ascending.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("idx_events_date_id"),
		},
	})
}

func ensureDocuments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("documents")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_documents_owner_id"),
		},
		{
			Keys:    bson.D{{Key: "is_published", Value: 1}, {Key: "_id", Value: -1}},
			Options: options.Index().SetName("idx_documents_published_id"),
		},
	})
}

func ensureInvestments(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("investments")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "start_date", Value: -1}},
			Options: options.Index().SetName("idx_investments_user_startdate"),
		},
	})
}

func ensureContactInquiries(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("contact_inquiries")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("idx_inquiries_submittedat"),
		},
	})
}
