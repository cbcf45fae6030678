package contributionstore_test

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	contributionstore "github.com/wekezagroup/wekeza/internal/app/store/contributions"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"github.com/wekezagroup/wekeza/internal/testutil"
)

// checkRollupsMatchScan asserts the maintained counters agree with a full
// ledger scan for the given members and for the group.
func checkRollupsMatchScan(t *testing.T, ctx context.Context, store *contributionstore.Store, rollups *contributionstore.Rollups, userIDs ...primitive.ObjectID) {
	t.Helper()

	for _, id := range userIDs {
		fromRollup, err := rollups.UserSummary(ctx, id)
		if err != nil {
			t.Fatalf("UserSummary failed: %v", err)
		}
		fromScan, err := store.ScanUserSummary(ctx, id)
		if err != nil {
			t.Fatalf("ScanUserSummary failed: %v", err)
		}
		if fromRollup != fromScan {
			t.Errorf("user %v: rollup %+v != scan %+v", id, fromRollup, fromScan)
		}
	}

	overallRollup, err := rollups.OverallSummary(ctx)
	if err != nil {
		t.Fatalf("OverallSummary failed: %v", err)
	}
	overallScan, err := store.ScanOverallSummary(ctx)
	if err != nil {
		t.Fatalf("ScanOverallSummary failed: %v", err)
	}
	if overallRollup != overallScan {
		t.Errorf("overall: rollup %+v != scan %+v", overallRollup, overallScan)
	}
}

func TestRollups_TrackLedger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contributionstore.New(db)
	rollups := contributionstore.NewRollups(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Amina Odhiambo")
	b := fixtures.CreateUser(ctx, "Daniel Kiprop")
	admin := fixtures.CreateAdmin(ctx, "Grace Njeri")

	insert := func(c models.Contribution) models.Contribution {
		t.Helper()
		created, err := store.Insert(ctx, c)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := rollups.Apply(ctx, created, +1); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		return created
	}

	first := insert(monthlyRow(a.ID, admin.ID, 500, "2026-01"))
	insert(monthlyRow(a.ID, admin.ID, 500, "2026-02"))
	insert(feeRow(a.ID, admin.ID, 1000, "2026-01"))
	insert(monthlyRow(b.ID, admin.ID, 300, "2026-01"))
	checkRollupsMatchScan(t, ctx, store, rollups, a.ID, b.ID)

	// Edit: reverse the old row, apply the new one.
	mut := monthlyRow(a.ID, admin.ID, 750, "2026-03")
	updated, err := store.Update(ctx, first.ID, mut)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := rollups.Apply(ctx, first, -1); err != nil {
		t.Fatalf("Apply(-old) failed: %v", err)
	}
	if err := rollups.Apply(ctx, updated, +1); err != nil {
		t.Fatalf("Apply(+new) failed: %v", err)
	}
	checkRollupsMatchScan(t, ctx, store, rollups, a.ID, b.ID)

	// Delete reverses the row.
	if err := store.Delete(ctx, updated.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := rollups.Apply(ctx, updated, -1); err != nil {
		t.Fatalf("Apply(-deleted) failed: %v", err)
	}
	checkRollupsMatchScan(t, ctx, store, rollups, a.ID, b.ID)
}

func TestRollups_EmptyMemberIsZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	rollups := contributionstore.NewRollups(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sum, err := rollups.UserSummary(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("UserSummary failed: %v", err)
	}
	if sum != (models.UserContributionSummary{}) {
		t.Errorf("UserSummary = %+v, want zero", sum)
	}

	overall, err := rollups.OverallSummary(ctx)
	if err != nil {
		t.Fatalf("OverallSummary failed: %v", err)
	}
	if overall != (models.OverallContributionSummary{}) {
		t.Errorf("OverallSummary = %+v, want zero", overall)
	}
}

func TestRollups_MemberCountsSurviveDeletes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contributionstore.New(db)
	rollups := contributionstore.NewRollups(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Amina Odhiambo")
	admin := fixtures.CreateAdmin(ctx, "Grace Njeri")

	created, err := store.Insert(ctx, monthlyRow(a.ID, admin.ID, 500, "2026-01"))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if err := rollups.Apply(ctx, created, +1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := rollups.Apply(ctx, created, -1); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// The member's rollup document still exists with zeroed counters;
	// they must not count as a contributing member.
	overall, err := rollups.OverallSummary(ctx)
	if err != nil {
		t.Fatalf("OverallSummary failed: %v", err)
	}
	if overall.UniqueMembers != 0 {
		t.Errorf("UniqueMembers = %d after all rows deleted, want 0", overall.UniqueMembers)
	}
}

func TestRollups_Rebuild(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := contributionstore.New(db)
	rollups := contributionstore.NewRollups(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateUser(ctx, "Amina Odhiambo")
	b := fixtures.CreateUser(ctx, "Daniel Kiprop")
	admin := fixtures.CreateAdmin(ctx, "Grace Njeri")

	// Write ledger rows without applying any rollup deltas, simulating
	// drift from a failed non-transactional write.
	seed := []models.Contribution{
		monthlyRow(a.ID, admin.ID, 500, "2026-01"),
		feeRow(a.ID, admin.ID, 1000, "2026-01"),
		monthlyRow(b.ID, admin.ID, 300, "2026-02"),
	}
	for i, c := range seed {
		if _, err := store.Insert(ctx, c); err != nil {
			t.Fatalf("Insert seed[%d] failed: %v", i, err)
		}
	}

	if err := rollups.Rebuild(ctx, store); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	checkRollupsMatchScan(t, ctx, store, rollups, a.ID, b.ID)
}
