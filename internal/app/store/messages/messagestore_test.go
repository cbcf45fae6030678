package messagestore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	messagestore "github.com/wekezagroup/wekeza/internal/app/store/messages"
	"github.com/wekezagroup/wekeza/internal/app/system/apperrors"
	"github.com/wekezagroup/wekeza/internal/app/system/paging"
	"github.com/wekezagroup/wekeza/internal/domain/models"
	"github.com/wekezagroup/wekeza/internal/testutil"
)

func TestStore_Insert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	msg, err := store.Insert(ctx, author.ID, "  Karibu everyone!  ")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if msg.Body != "Karibu everyone!" {
		t.Errorf("Body: got %q, want trimmed", msg.Body)
	}
	if len(msg.ReadBy) != 1 || msg.ReadBy[0] != author.ID {
		t.Errorf("ReadBy: got %v, want just the author", msg.ReadBy)
	}
	if msg.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Insert_SanitizesMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	msg, err := store.Insert(ctx, author.ID, `meeting at 6 <script>alert("x")</script>`)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if msg.Body != "meeting at 6" {
		t.Errorf("Body: got %q, want markup stripped", msg.Body)
	}
}

func TestStore_Insert_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	for _, body := range []string{"", "   ", "\n\t ", "<b></b>"} {
		if _, err := store.Insert(ctx, author.ID, body); !errors.Is(err, apperrors.ErrEmptyMessage) {
			t.Errorf("Insert(%q) error = %v, want ErrEmptyMessage", body, err)
		}
	}
}

func TestStore_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")

	first := fixtures.CreateMessage(ctx, author.ID, "first")
	second := fixtures.CreateMessage(ctx, author.ID, "second")

	if err := store.MarkRead(ctx, reader.ID, []primitive.ObjectID{first.ID}); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	got, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ReadBy) != 2 {
		t.Errorf("ReadBy after mark: got %v, want author and reader", got.ReadBy)
	}

	// Marking again must not duplicate the set entry.
	if err := store.MarkRead(ctx, reader.ID, []primitive.ObjectID{first.ID}); err != nil {
		t.Fatalf("second MarkRead failed: %v", err)
	}
	got, err = store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ReadBy) != 2 {
		t.Errorf("ReadBy after repeat mark: got %v, want no duplicates", got.ReadBy)
	}

	// Unknown ids in the batch are skipped, known ones still apply.
	if err := store.MarkRead(ctx, reader.ID, []primitive.ObjectID{primitive.NewObjectID(), second.ID}); err != nil {
		t.Fatalf("MarkRead with unknown id failed: %v", err)
	}
	got, err = store.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ReadBy) != 2 {
		t.Errorf("ReadBy on second message: got %v, want author and reader", got.ReadBy)
	}

	// Empty batch is a no-op.
	if err := store.MarkRead(ctx, reader.ID, nil); err != nil {
		t.Errorf("MarkRead(nil) failed: %v", err)
	}
}

func TestStore_MarkAllRead_AndUnreadCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")

	fixtures.CreateMessage(ctx, author.ID, "one")
	fixtures.CreateMessage(ctx, author.ID, "two")
	fixtures.CreateMessage(ctx, reader.ID, "mine")

	count, err := store.UnreadCount(ctx, reader.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("UnreadCount = %d, want 2 (own messages never count)", count)
	}

	if err := store.MarkAllRead(ctx, reader.ID); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	count, err = store.UnreadCount(ctx, reader.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 0 {
		t.Errorf("UnreadCount after MarkAllRead = %d, want 0", count)
	}

	// The author's own view is unaffected by the reader's marks.
	count, err = store.UnreadCount(ctx, author.ID)
	if err != nil {
		t.Fatalf("UnreadCount failed: %v", err)
	}
	if count != 1 {
		t.Errorf("author UnreadCount = %d, want 1 (the reader's message)", count)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	msg := fixtures.CreateMessage(ctx, author.ID, "soon gone")

	if err := store.Delete(ctx, msg.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, msg.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("GetByID after delete: error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, msg.ID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second Delete: error = %v, want ErrNotFound", err)
	}
}

func TestStore_ListPage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	bodies := []string{"m1", "m2", "m3", "m4", "m5"}
	for _, b := range bodies {
		if _, err := store.Insert(ctx, author.ID, b); err != nil {
			t.Fatalf("Insert %s failed: %v", b, err)
		}
	}

	// First page: newest two.
	page, hasMore, err := store.ListPage(ctx, paging.ConfigureFeed("", 2))
	if err != nil {
		t.Fatalf("ListPage failed: %v", err)
	}
	if len(page) != 2 || !hasMore {
		t.Fatalf("first page: %d rows hasMore=%v, want 2 rows with more", len(page), hasMore)
	}
	if page[0].Body != "m5" || page[1].Body != "m4" {
		t.Errorf("first page order: got %q,%q want m5,m4", page[0].Body, page[1].Body)
	}

	// Continue from the cursor.
	cursor := paging.ContinueCursor(page, func(m models.Message) primitive.ObjectID { return m.ID })
	page, hasMore, err = store.ListPage(ctx, paging.ConfigureFeed(cursor, 2))
	if err != nil {
		t.Fatalf("second ListPage failed: %v", err)
	}
	if len(page) != 2 || !hasMore {
		t.Fatalf("second page: %d rows hasMore=%v, want 2 rows with more", len(page), hasMore)
	}
	if page[0].Body != "m3" || page[1].Body != "m2" {
		t.Errorf("second page order: got %q,%q want m3,m2", page[0].Body, page[1].Body)
	}

	// Last page.
	cursor = paging.ContinueCursor(page, func(m models.Message) primitive.ObjectID { return m.ID })
	page, hasMore, err = store.ListPage(ctx, paging.ConfigureFeed(cursor, 2))
	if err != nil {
		t.Fatalf("third ListPage failed: %v", err)
	}
	if len(page) != 1 || hasMore {
		t.Fatalf("third page: %d rows hasMore=%v, want 1 row and done", len(page), hasMore)
	}
	if page[0].Body != "m1" {
		t.Errorf("third page: got %q, want m1", page[0].Body)
	}
}

func TestStore_Watermark(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := messagestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")

	wm, err := store.Watermark(ctx, reader.ID)
	if err != nil {
		t.Fatalf("Watermark failed: %v", err)
	}
	if !wm.LastReadAt.IsZero() {
		t.Errorf("Watermark before any touch = %v, want zero", wm.LastReadAt)
	}

	if err := store.TouchWatermark(ctx, reader.ID); err != nil {
		t.Fatalf("TouchWatermark failed: %v", err)
	}
	first, err := store.Watermark(ctx, reader.ID)
	if err != nil {
		t.Fatalf("Watermark failed: %v", err)
	}
	if first.LastReadAt.IsZero() {
		t.Fatal("expected watermark to be set")
	}

	// A second touch upserts the same row forward.
	if err := store.TouchWatermark(ctx, reader.ID); err != nil {
		t.Fatalf("second TouchWatermark failed: %v", err)
	}
	second, err := store.Watermark(ctx, reader.ID)
	if err != nil {
		t.Fatalf("Watermark failed: %v", err)
	}
	if second.LastReadAt.Before(first.LastReadAt) {
		t.Errorf("watermark moved backwards: %v -> %v", first.LastReadAt, second.LastReadAt)
	}

	n, err := db.Collection("message_reads").CountDocuments(ctx, map[string]any{"user_id": reader.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("watermark rows = %d, want 1", n)
	}
}
