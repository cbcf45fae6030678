// internal/app/store/contributions/rollups.go
package contributionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wekezagroup/wekeza/internal/domain/models"
)

// groupScope marks the single group-wide rollup document.
const groupScope = "group"

// rollupDoc carries maintained counters for one member (user_id set) or
// for the whole group (scope = "group"). Summaries are served from these
// instead of scanning the ledger.
type rollupDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Scope           string             `bson:"scope,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id,omitempty"`
	MonthlyTotal    float64            `bson:"monthly_total"`
	MonthlyCount    int64              `bson:"monthly_count"`
	JoiningFeeTotal float64            `bson:"joining_fee_total"`
	JoiningFeeCount int64              `bson:"joining_fee_count"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// Rollups maintains the contribution_rollups collection. Callers apply
// deltas in the same transaction as the ledger write (txn.Run) so the
// counters never drift from the rows under normal operation.
type Rollups struct {
	c *mongo.Collection
}

func NewRollups(db *mongo.Database) *Rollups {
	return &Rollups{c: db.Collection("contribution_rollups")}
}

// incFor builds the $inc document for one ledger row. sign is +1 on
// insert, -1 on delete; an edit applies -old then +new.
func incFor(c models.Contribution, sign float64) bson.M {
	if c.Type == models.ContributionJoiningFee {
		return bson.M{
			"joining_fee_total": sign * c.Amount,
			"joining_fee_count": int64(sign),
		}
	}
	return bson.M{
		"monthly_total": sign * c.Amount,
		"monthly_count": int64(sign),
	}
}

// Apply adjusts the member's rollup and the group rollup for one ledger
// row. Both upserts run in the caller's (transactional) context.
func (r *Rollups) Apply(ctx context.Context, c models.Contribution, sign float64) error {
	inc := incFor(c, sign)
	now := time.Now().UTC()
	opts := options.Update().SetUpsert(true)

	_, err := r.c.UpdateOne(ctx,
		bson.M{"user_id": c.UserID},
		bson.M{"$inc": inc, "$set": bson.M{"updated_at": now}},
		opts,
	)
	if err != nil {
		return err
	}
	_, err = r.c.UpdateOne(ctx,
		bson.M{"scope": groupScope},
		bson.M{"$inc": inc, "$set": bson.M{"updated_at": now}},
		opts,
	)
	return err
}

// UserSummary serves one member's summary from their rollup. A member
// with no rollup document has simply never contributed; that is a zero
// summary, not an error.
func (r *Rollups) UserSummary(ctx context.Context, userID primitive.ObjectID) (models.UserContributionSummary, error) {
	var doc rollupDoc
	err := r.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.UserContributionSummary{}, nil
	}
	if err != nil {
		return models.UserContributionSummary{}, err
	}
	return models.UserContributionSummary{
		TotalContributed:     doc.MonthlyTotal + doc.JoiningFeeTotal,
		MonthlyContributions: doc.MonthlyTotal,
		JoiningFee:           doc.JoiningFeeTotal,
		HasJoiningFee:        doc.JoiningFeeCount > 0,
		ContributionCount:    doc.MonthlyCount,
	}, nil
}

// OverallSummary serves the group summary. Totals come from the group
// document; member counts come from counting member rollups with live
// rows, which stays correct across deletes.
func (r *Rollups) OverallSummary(ctx context.Context) (models.OverallContributionSummary, error) {
	var doc rollupDoc
	err := r.c.FindOne(ctx, bson.M{"scope": groupScope}).Decode(&doc)
	if err != nil && err != mongo.ErrNoDocuments {
		return models.OverallContributionSummary{}, err
	}

	memberFilter := bson.M{
		"user_id": bson.M{"$exists": true},
		"$or": []bson.M{
			{"monthly_count": bson.M{"$gt": 0}},
			{"joining_fee_count": bson.M{"$gt": 0}},
		},
	}
	uniqueMembers, err := r.c.CountDocuments(ctx, memberFilter)
	if err != nil {
		return models.OverallContributionSummary{}, err
	}
	withFee, err := r.c.CountDocuments(ctx, bson.M{
		"user_id":           bson.M{"$exists": true},
		"joining_fee_count": bson.M{"$gt": 0},
	})
	if err != nil {
		return models.OverallContributionSummary{}, err
	}

	return models.OverallContributionSummary{
		TotalContributed:      doc.MonthlyTotal + doc.JoiningFeeTotal,
		MonthlyContributions:  doc.MonthlyTotal,
		JoiningFees:           doc.JoiningFeeTotal,
		UniqueMembers:         uniqueMembers,
		MembersWithJoiningFee: withFee,
	}, nil
}

// Rebuild replaces every rollup document with counters recomputed from a
// full ledger scan. Used to repair drift after a non-transactional
// fallback write failed partway.
func (r *Rollups) Rebuild(ctx context.Context, ledger *Store) error {
	rows, err := ledger.ListAll(ctx, "", "")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	perUser := map[primitive.ObjectID]*rollupDoc{}
	group := &rollupDoc{Scope: groupScope, UpdatedAt: now}
	for _, c := range rows {
		u, ok := perUser[c.UserID]
		if !ok {
			u = &rollupDoc{UserID: c.UserID, UpdatedAt: now}
			perUser[c.UserID] = u
		}
		for _, doc := range []*rollupDoc{u, group} {
			if c.Type == models.ContributionJoiningFee {
				doc.JoiningFeeTotal += c.Amount
				doc.JoiningFeeCount++
			} else {
				doc.MonthlyTotal += c.Amount
				doc.MonthlyCount++
			}
		}
	}

	if err := r.c.Drop(ctx); err != nil {
		return err
	}
	docs := []interface{}{group}
	for _, u := range perUser {
		docs = append(docs, u)
	}
	_, err = r.c.InsertMany(ctx, docs)
	return err
}
