// internal/plants/plants.go
package plants

import (
	"context"
	"fmt"
	"time"

	"growingtogether/pkg/docstore"
)

const plantsCollection = "plants"

// Plant is a growing-guide entry in the site plant library.
type Plant struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	SowingMonths []string  `json:"sowing_months"`
	HarvestTime  string    `json:"harvest_time"`
	CareNotes    string    `json:"care_notes"`
	CreatedAt    time.Time `json:"created_at"`
}

// Service lists the plant library. Entries are seeded at bootstrap.
type Service interface {
	ListPlants(ctx context.Context) ([]Plant, error)
}

type service struct {
	store docstore.Store
}

func NewService(store docstore.Store) Service {
	return &service{store: store}
}

func (s *service) ListPlants(ctx context.Context) ([]Plant, error) {
	var plants []Plant
	err := s.store.Find(ctx, plantsCollection, docstore.Filter{}, docstore.FindOptions{
		SortBy: "name",
	}, &plants)
	if err != nil {
		return nil, fmt.Errorf("listing plants: %w", err)
	}
	return plants, nil
}
