// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedPageSize is the default number of rows returned per feed page.
// Keep this as an int because call sites add one and then cast to
// int64 for Mongo Find().SetLimit().
const FeedPageSize = 30

// MaxFeedPageSize caps client-requested page sizes.
const MaxFeedPageSize = 100

// ParseNumItems extracts the "numItems" query parameter. Returns
// FeedPageSize if not present, invalid, or out of range.
func ParseNumItems(r *http.Request) int {
	s := query.Get(r, "numItems")
	if s == "" {
		return FeedPageSize
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return FeedPageSize
	}
	if n > MaxFeedPageSize {
		return MaxFeedPageSize
	}
	return n
}

// FeedConfig holds decoded cursor state for a newest-first feed.
// Feeds page in one direction only: each cursor points past the oldest
// row already delivered, and the next page continues from there.
type FeedConfig struct {
	PageSize int
	Cursor   *wafflemongo.Cursor
}

// ConfigureFeed decodes the continuation cursor, if any.
func ConfigureFeed(cursor string, pageSize int) FeedConfig {
	cfg := FeedConfig{PageSize: pageSize}
	if cursor != "" {
		if c, ok := wafflemongo.DecodeCursor(cursor); ok {
			cfg.Cursor = &c
		}
	}
	return cfg
}

// ApplyToFind configures FindOptions with descending sort and a
// look-ahead limit (fetch one extra document to detect isDone).
func (cfg FeedConfig) ApplyToFind(find *options.FindOptions) {
	find.SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetLimit(int64(cfg.PageSize + 1))
}

// Window returns the cursor condition for the query filter, or nil on
// the first page. ObjectIDs embed the creation timestamp, so paging on
// _id alone preserves newest-first order.
func (cfg FeedConfig) Window() bson.M {
	if cfg.Cursor == nil {
		return nil
	}
	return bson.M{"_id": bson.M{"$lt": cfg.Cursor.ID}}
}

// TrimFeed trims a fetched slice after a look-ahead fetch. It modifies
// the slice in place and reports whether more rows remain.
func TrimFeed[T any](rows *[]T, pageSize int) (hasMore bool) {
	if len(*rows) > pageSize {
		*rows = (*rows)[:pageSize]
		return true
	}
	return false
}

// ContinueCursor creates the continuation cursor from the last element
// of a trimmed page. idFn extracts the ObjectID from an element.
// Returns "" for an empty page.
func ContinueCursor[T any](rows []T, idFn func(T) primitive.ObjectID) string {
	if len(rows) == 0 {
		return ""
	}
	last := rows[len(rows)-1]
	return wafflemongo.EncodeCursor("", idFn(last))
}
