// internal/plants/seed.go
package plants

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"growingtogether/pkg/docstore"
)

// SeedDefaults populates the plant library with the starter growing guides
// when the collection is empty. Returns the number of records written.
func SeedDefaults(ctx context.Context, store docstore.Store) (int, error) {
	count, err := store.Count(ctx, plantsCollection, docstore.Filter{})
	if err != nil {
		return 0, fmt.Errorf("counting plants: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	defaults := []Plant{
		{
			Name:         "Tomatoes",
			Category:     "vegetable",
			SowingMonths: []string{"March", "April"},
			HarvestTime:  "July to October",
			CareNotes:    "Start under cover; pinch out side shoots and water consistently to avoid split fruit.",
		},
		{
			Name:         "Carrots",
			Category:     "vegetable",
			SowingMonths: []string{"April", "May", "June"},
			HarvestTime:  "September to November",
			CareNotes:    "Sow thinly in stone-free soil; cover with fleece against carrot fly.",
		},
		{
			Name:         "Lettuce",
			Category:     "salad",
			SowingMonths: []string{"March", "April", "May", "August"},
			HarvestTime:  "May to October",
			CareNotes:    "Succession sow every two weeks; shade summer sowings to stop bolting.",
		},
	}

	for i := range defaults {
		defaults[i].ID = uuid.NewString()
		defaults[i].CreatedAt = time.Now().UTC()
		if err := store.Insert(ctx, plantsCollection, defaults[i].ID, defaults[i]); err != nil {
			return i, fmt.Errorf("inserting %s: %w", defaults[i].Name, err)
		}
	}
	return len(defaults), nil
}
