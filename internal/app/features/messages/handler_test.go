package messages_test

import (
	"fmt"
	"net/http"
	"testing"

	"go.uber.org/zap"

	"github.com/wekezagroup/wekeza/internal/app/features/messages"
	"github.com/wekezagroup/wekeza/internal/testutil"
)

func TestHandleSend(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	req := testutil.NewAuthenticatedJSONRequest(t, "POST", "/messages",
		map[string]string{"body": "Karibu everyone! <script>alert(1)</script>"}, author)
	rec := testutil.NewRecorder()

	h.HandleSend(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var body struct {
		Message struct {
			Body     string   `json:"body"`
			AuthorID string   `json:"author_id"`
			ReadBy   []string `json:"read_by"`
		} `json:"message"`
	}
	rec.DecodeJSON(t, &body)
	if body.Message.Body != "Karibu everyone!" {
		t.Errorf("body: got %q, want markup stripped", body.Message.Body)
	}
	if len(body.Message.ReadBy) != 1 || body.Message.ReadBy[0] != author.ID.Hex() {
		t.Errorf("read_by: got %v, want just the author", body.Message.ReadBy)
	}
}

func TestHandleSend_EmptyAfterSanitize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")

	req := testutil.NewAuthenticatedJSONRequest(t, "POST", "/messages",
		map[string]string{"body": "<img src=x>   "}, author)
	rec := testutil.NewRecorder()

	h.HandleSend(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertErrorCode(t, "empty_message")
}

func TestServeFeed_ReadFlagsAndAuthors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")
	fixtures.CreateMessage(ctx, author.ID, "first")
	fixtures.CreateMessage(ctx, reader.ID, "second")

	req := testutil.NewAuthenticatedRequest("GET", "/messages", reader)
	rec := testutil.NewRecorder()

	h.ServeFeed(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Messages []struct {
			Body       string `json:"body"`
			AuthorName string `json:"author_name"`
			IsRead     bool   `json:"isRead"`
		} `json:"messages"`
		IsDone bool `json:"isDone"`
	}
	rec.DecodeJSON(t, &body)
	if len(body.Messages) != 2 {
		t.Fatalf("messages: got %d, want 2", len(body.Messages))
	}
	// Newest first.
	if body.Messages[0].Body != "second" {
		t.Errorf("feed order: first row = %q, want \"second\"", body.Messages[0].Body)
	}
	if !body.Messages[0].IsRead {
		t.Error("own message must be read")
	}
	if body.Messages[1].IsRead {
		t.Error("other member's message must start unread")
	}
	if body.Messages[1].AuthorName != "Amina Odhiambo" {
		t.Errorf("author_name: got %q", body.Messages[1].AuthorName)
	}
	if !body.IsDone {
		t.Error("two messages fit one page, expected isDone")
	}
}

func TestServeFeed_Pagination(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	for i := 0; i < 5; i++ {
		fixtures.CreateMessage(ctx, author.ID, fmt.Sprintf("message %d", i))
	}

	var body struct {
		Messages []struct {
			Body string `json:"body"`
		} `json:"messages"`
		ContinueCursor string `json:"continueCursor"`
		IsDone         bool   `json:"isDone"`
	}

	req := testutil.NewAuthenticatedRequest("GET", "/messages?numItems=2", author)
	rec := testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &body)

	if len(body.Messages) != 2 || body.IsDone {
		t.Fatalf("page 1: got %d rows, isDone=%v", len(body.Messages), body.IsDone)
	}
	if body.Messages[0].Body != "message 4" {
		t.Errorf("page 1 starts at %q, want newest", body.Messages[0].Body)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/messages?numItems=2&cursor="+body.ContinueCursor, author)
	rec = testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &body)

	if len(body.Messages) != 2 || body.IsDone {
		t.Fatalf("page 2: got %d rows, isDone=%v", len(body.Messages), body.IsDone)
	}
	if body.Messages[0].Body != "message 2" {
		t.Errorf("page 2 starts at %q, want \"message 2\"", body.Messages[0].Body)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/messages?numItems=2&cursor="+body.ContinueCursor, author)
	rec = testutil.NewRecorder()
	h.ServeFeed(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
	rec.DecodeJSON(t, &body)

	if len(body.Messages) != 1 || !body.IsDone {
		t.Fatalf("page 3: got %d rows, isDone=%v, want 1 row and done", len(body.Messages), body.IsDone)
	}
}

func TestHandleMarkRead_UpdatesUnreadCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")
	m1 := fixtures.CreateMessage(ctx, author.ID, "one")
	fixtures.CreateMessage(ctx, author.ID, "two")

	var count struct {
		Unread int64 `json:"unread"`
	}

	req := testutil.NewAuthenticatedRequest("GET", "/messages/unread_count", reader)
	rec := testutil.NewRecorder()
	h.ServeUnreadCount(rec.ResponseRecorder, req)
	rec.DecodeJSON(t, &count)
	if count.Unread != 2 {
		t.Fatalf("unread before: got %d, want 2", count.Unread)
	}

	req = testutil.NewAuthenticatedJSONRequest(t, "POST", "/messages/read",
		map[string][]string{"message_ids": {m1.ID.Hex()}}, reader)
	rec = testutil.NewRecorder()
	h.HandleMarkRead(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// Marking twice is harmless.
	req = testutil.NewAuthenticatedJSONRequest(t, "POST", "/messages/read",
		map[string][]string{"message_ids": {m1.ID.Hex()}}, reader)
	rec = testutil.NewRecorder()
	h.HandleMarkRead(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewAuthenticatedRequest("GET", "/messages/unread_count", reader)
	rec = testutil.NewRecorder()
	h.ServeUnreadCount(rec.ResponseRecorder, req)
	rec.DecodeJSON(t, &count)
	if count.Unread != 1 {
		t.Errorf("unread after: got %d, want 1", count.Unread)
	}
}

func TestHandleMarkAllRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	reader := fixtures.CreateUser(ctx, "Daniel Kiprop")
	for i := 0; i < 3; i++ {
		fixtures.CreateMessage(ctx, author.ID, fmt.Sprintf("message %d", i))
	}

	req := testutil.NewAuthenticatedRequest("POST", "/messages/read_all", reader)
	rec := testutil.NewRecorder()
	h.HandleMarkAllRead(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	req = testutil.NewAuthenticatedRequest("GET", "/messages/unread_count", reader)
	rec = testutil.NewRecorder()
	h.ServeUnreadCount(rec.ResponseRecorder, req)

	var count struct {
		Unread int64 `json:"unread"`
	}
	rec.DecodeJSON(t, &count)
	if count.Unread != 0 {
		t.Errorf("unread after read_all: got %d, want 0", count.Unread)
	}
}

func TestHandleDelete_AuthorAndAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := messages.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	author := fixtures.CreateUser(ctx, "Amina Odhiambo")
	other := fixtures.CreateUser(ctx, "Daniel Kiprop")
	admin := fixtures.CreateAdmin(ctx, "Grace Njeri")
	own := fixtures.CreateMessage(ctx, author.ID, "mine")
	target := fixtures.CreateMessage(ctx, author.ID, "admin will remove this")

	// Another member may not delete it.
	req := testutil.NewAuthenticatedRequest("DELETE", "/messages/"+own.ID.Hex(), other)
	req = testutil.WithChiURLParam(req, "id", own.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusForbidden)

	// The author may.
	req = testutil.NewAuthenticatedRequest("DELETE", "/messages/"+own.ID.Hex(), author)
	req = testutil.WithChiURLParam(req, "id", own.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	// So may an admin, for any message.
	req = testutil.NewAuthenticatedRequest("DELETE", "/messages/"+target.ID.Hex(), admin)
	req = testutil.WithChiURLParam(req, "id", target.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDelete(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}
