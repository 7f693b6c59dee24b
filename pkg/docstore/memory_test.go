// pkg/docstore/memory_test.go
package docstore

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Rank     int       `json:"rank"`
	Open     bool      `json:"open"`
	Created  time.Time `json:"created"`
	Optional *string   `json:"optional"`
}

func TestMemoryStoreInsertAndFindOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	doc := testDoc{ID: "a", Name: "first", Rank: 3, Open: true, Created: time.Now().UTC()}
	require.NoError(t, store.Insert(ctx, "docs", doc.ID, doc))

	var got testDoc
	require.NoError(t, store.FindOne(ctx, "docs", Filter{"id": "a"}, &got))
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 3, got.Rank)
	assert.True(t, got.Open)

	err := store.FindOne(ctx, "docs", Filter{"id": "nope"}, &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDuplicateInsert(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", "a", testDoc{ID: "a"}))
	err := store.Insert(ctx, "docs", "a", testDoc{ID: "a"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryStoreFilterMatchesTypedFields(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", "a", testDoc{ID: "a", Rank: 7, Open: true}))
	require.NoError(t, store.Insert(ctx, "docs", "b", testDoc{ID: "b", Rank: 7, Open: false}))

	// Int filters must match numbers stored via struct fields.
	var open []testDoc
	require.NoError(t, store.Find(ctx, "docs", Filter{"rank": 7, "open": true}, FindOptions{}, &open))
	require.Len(t, open, 1)
	assert.Equal(t, "a", open[0].ID)

	// nil matches a null field.
	var withNil []testDoc
	require.NoError(t, store.Find(ctx, "docs", Filter{"optional": nil}, FindOptions{}, &withNil))
	assert.Len(t, withNil, 2)
}

func TestMemoryStoreFindSortAndLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	names := []string{"cherry", "apple", "banana"}
	for i, name := range names {
		require.NoError(t, store.Insert(ctx, "docs", name, testDoc{ID: name, Name: name, Rank: i}))
	}

	var asc []testDoc
	require.NoError(t, store.Find(ctx, "docs", Filter{}, FindOptions{SortBy: "name"}, &asc))
	require.Len(t, asc, 3)
	assert.Equal(t, "apple", asc[0].Name)
	assert.Equal(t, "cherry", asc[2].Name)

	var desc []testDoc
	require.NoError(t, store.Find(ctx, "docs", Filter{}, FindOptions{SortBy: "rank", Descending: true, Limit: 2}, &desc))
	require.Len(t, desc, 2)
	assert.Equal(t, 2, desc[0].Rank)
	assert.Equal(t, 1, desc[1].Rank)
}

func TestMemoryStoreUpdateOne(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", "a", testDoc{ID: "a", Name: "before"}))

	matched, err := store.UpdateOne(ctx, "docs", Filter{"id": "a"}, Patch{"name": "after"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, matched)

	var got testDoc
	require.NoError(t, store.FindOne(ctx, "docs", Filter{"id": "a"}, &got))
	assert.Equal(t, "after", got.Name)

	matched, err = store.UpdateOne(ctx, "docs", Filter{"id": "missing"}, Patch{"name": "x"})
	require.NoError(t, err)
	assert.Zero(t, matched)
}

func TestMemoryStoreConcurrentFindAndUpdate(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", "a", testDoc{ID: "a", Name: "start"}))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			var got []testDoc
			if err := store.Find(ctx, "docs", Filter{"id": "a"}, FindOptions{SortBy: "name"}, &got); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			if _, err := store.UpdateOne(ctx, "docs", Filter{"id": "a"}, Patch{"name": strconv.Itoa(i)}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	wg.Wait()
}

func TestMemoryStoreDeleteAndCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, "docs", "a", testDoc{ID: "a", Open: true}))
	require.NoError(t, store.Insert(ctx, "docs", "b", testDoc{ID: "b", Open: true}))
	require.NoError(t, store.Insert(ctx, "docs", "c", testDoc{ID: "c", Open: false}))

	count, err := store.Count(ctx, "docs", Filter{"open": true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	deleted, err := store.DeleteOne(ctx, "docs", Filter{"id": "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	count, err = store.Count(ctx, "docs", Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
