// internal/plants/plants_test.go
package plants

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growingtogether/pkg/docstore"
)

func TestSeedDefaultsAndList(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()

	seeded, err := SeedDefaults(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 3, seeded)

	svc := NewService(store)
	plants, err := svc.ListPlants(ctx)
	require.NoError(t, err)
	require.Len(t, plants, 3)

	// Sorted by name.
	assert.Equal(t, "Carrots", plants[0].Name)
	assert.Equal(t, "Lettuce", plants[1].Name)
	assert.Equal(t, "Tomatoes", plants[2].Name)

	for _, p := range plants {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.SowingMonths)
		assert.False(t, p.CreatedAt.IsZero())
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()

	_, err := SeedDefaults(ctx, store)
	require.NoError(t, err)

	seeded, err := SeedDefaults(ctx, store)
	require.NoError(t, err)
	assert.Zero(t, seeded)

	count, err := store.Count(ctx, "plants", docstore.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
