// internal/diary/implementation_test.go
package diary

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growingtogether/pkg/docstore"
)

func newTestService() Service {
	return NewService(docstore.NewMemoryStore(), zap.NewNop())
}

func TestCreateEntryValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, "member-1", CreateInput{Title: "First sowing", EntryType: TypeSowing})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	_, err = svc.CreateEntry(ctx, "member-1", CreateInput{PlotNumber: "4", Title: "Aliens landed", EntryType: "ufo"})
	assert.ErrorIs(t, err, ErrInvalidEntry)

	entry, err := svc.CreateEntry(ctx, "member-1", CreateInput{PlotNumber: "4", Title: "First sowing", EntryType: TypeSowing})
	require.NoError(t, err)
	assert.NotNil(t, entry.Photos)
	assert.NotNil(t, entry.Tags)
}

func TestListEntriesScoping(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, "member-1", CreateInput{PlotNumber: "4", Title: "Sowed carrots", EntryType: TypeSowing})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, "member-2", CreateInput{PlotNumber: "9", Title: "Harvested spuds", EntryType: TypeHarvest})
	require.NoError(t, err)

	// Without a plot filter a member only sees their own entries.
	mine, err := svc.ListEntries(ctx, "", "member-1", false)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Sowed carrots", mine[0].Title)

	// Admins see everything.
	all, err := svc.ListEntries(ctx, "", "admin-1", true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// Plot filter works for anyone.
	plot9, err := svc.ListEntries(ctx, "9", "member-1", false)
	require.NoError(t, err)
	require.Len(t, plot9, 1)
	assert.Equal(t, "Harvested spuds", plot9[0].Title)
}
