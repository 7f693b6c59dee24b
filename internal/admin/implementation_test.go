// internal/admin/implementation_test.go
package admin

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"growingtogether/internal/allotment"
	"growingtogether/internal/membership"
	"growingtogether/pkg/docstore"
)

func seedStore(t *testing.T) *docstore.MemoryStore {
	t.Helper()
	store := docstore.NewMemoryStore()
	ctx := context.Background()

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

	users := []membership.User{
		{ID: "u1", Email: "admin@staffordallotment.com", Username: "Site Admin", PasswordHash: "secret-hash", Role: "admin", IsApproved: true, JoinDate: now},
		{ID: "u2", Email: "pat@example.com", Username: "Pat", PasswordHash: "secret-hash", Role: "member", IsApproved: true, JoinDate: now},
		{ID: "u3", Email: "new@example.com", Username: "New", PasswordHash: "secret-hash", Role: "member", IsApproved: false, JoinDate: now},
	}
	for _, u := range users {
		require.NoError(t, store.Insert(ctx, "users", u.ID, u))
	}

	holder := "u2"
	plots := []allotment.Plot{
		{ID: "p1", Number: "1", HolderUserID: &holder},
		{ID: "p2", Number: "2"},
	}
	for _, p := range plots {
		require.NoError(t, store.Insert(ctx, "plots", p.ID, p))
	}

	type dated struct {
		ID        string    `json:"id"`
		CreatedAt time.Time `json:"created_at"`
	}
	require.NoError(t, store.Insert(ctx, "posts", "post-new", dated{ID: "post-new", CreatedAt: now.Add(-24 * time.Hour)}))
	require.NoError(t, store.Insert(ctx, "posts", "post-old", dated{ID: "post-old", CreatedAt: now.Add(-30 * 24 * time.Hour)}))
	require.NoError(t, store.Insert(ctx, "diary_entries", "d1", dated{ID: "d1", CreatedAt: now.Add(-2 * time.Hour)}))

	return store
}

func newFixedService(store docstore.Store) *service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) },
	}
}

func TestAnalytics(t *testing.T) {
	store := seedStore(t)
	svc := newFixedService(store)

	analytics, err := svc.Analytics(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 3, analytics.Users.Total)
	assert.EqualValues(t, 2, analytics.Users.Active)
	assert.EqualValues(t, 1, analytics.Users.Pending)

	assert.EqualValues(t, 2, analytics.Content.Posts)
	assert.EqualValues(t, 1, analytics.Content.DiaryEntries)

	// Only documents inside the 7-day window count as recent.
	assert.Equal(t, 1, analytics.RecentActivity.Posts)
	assert.Equal(t, 1, analytics.RecentActivity.DiaryEntries)

	assert.EqualValues(t, 2, analytics.Plots.Total)
	assert.EqualValues(t, 1, analytics.Plots.Active)
}

func TestExportStripsCredentials(t *testing.T) {
	store := seedStore(t)
	svc := newFixedService(store)

	export, err := svc.Export(context.Background())
	require.NoError(t, err)

	require.Len(t, export.Users, 3)
	for _, u := range export.Users {
		assert.NotEmpty(t, u.Email)
	}
	assert.Len(t, export.Plots, 2)
}

func TestExportXLSXProducesWorkbook(t *testing.T) {
	store := seedStore(t)
	svc := newFixedService(store)

	raw, err := svc.ExportXLSX(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Users")
	assert.Contains(t, sheets, "Plots")

	// The workbook never carries password material.
	rows, err := f.GetRows("Users")
	require.NoError(t, err)
	for _, row := range rows {
		for _, cell := range row {
			assert.NotContains(t, cell, "secret-hash")
		}
	}
}
