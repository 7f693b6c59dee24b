// internal/allotment/implementation.go
package allotment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growingtogether/pkg/docstore"
)

const plotsCollection = "plots"

// service implements the Service interface.
type service struct {
	store docstore.Store
	log   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new allotment directory service instance.
func NewService(store docstore.Store, log *zap.Logger) Service {
	return &service{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// CreatePlot provisions a new vacant plot.
func (s *service) CreatePlot(ctx context.Context, number, size, notes string) (*Plot, error) {
	if number == "" {
		return nil, fmt.Errorf("plot number is required")
	}

	err := s.store.FindOne(ctx, plotsCollection, docstore.Filter{"number": number}, &Plot{})
	if err == nil {
		return nil, ErrNumberTaken
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("check plot number: %w", err)
	}

	now := s.now()
	plot := &Plot{
		ID:        s.newID(),
		Number:    number,
		Size:      size,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Insert(ctx, plotsCollection, plot.ID, plot); err != nil {
		return nil, fmt.Errorf("insert plot: %w", err)
	}

	s.log.Info("plot created", zap.String("plot_id", plot.ID), zap.String("number", number))
	return plot, nil
}

// GetPlot retrieves a plot by id.
func (s *service) GetPlot(ctx context.Context, id string) (*Plot, error) {
	plot := &Plot{}
	err := s.store.FindOne(ctx, plotsCollection, docstore.Filter{"id": id}, plot)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plot: %w", err)
	}
	return plot, nil
}

// ListPlots returns every plot ordered by number. Numbers are compared
// numerically where possible so plot 2 precedes plot 10; the store sort is
// lexicographic and cannot do this.
func (s *service) ListPlots(ctx context.Context) ([]Plot, error) {
	plots := []Plot{}
	err := s.store.Find(ctx, plotsCollection, docstore.Filter{}, docstore.FindOptions{}, &plots)
	if err != nil {
		return nil, fmt.Errorf("list plots: %w", err)
	}
	sort.SliceStable(plots, func(i, j int) bool {
		return lessPlotNumber(plots[i].Number, plots[j].Number)
	})
	return plots, nil
}

// lessPlotNumber orders fully numeric plot numbers by value, keeps them
// ahead of lettered ones, and falls back to string order otherwise.
func lessPlotNumber(a, b string) bool {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return an < bn
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}

// AssignHolder sets or clears the plot's holder. Passing nil vacates the plot.
func (s *service) AssignHolder(ctx context.Context, plotID string, holderUserID *string) (*Plot, error) {
	matched, err := s.store.UpdateOne(ctx, plotsCollection,
		docstore.Filter{"id": plotID},
		docstore.Patch{
			"holder_user_id": holderUserID,
			"updated_at":     s.now(),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("assign holder: %w", err)
	}
	if matched == 0 {
		return nil, ErrPlotNotFound
	}

	s.log.Info("plot holder changed", zap.String("plot_id", plotID))
	return s.GetPlot(ctx, plotID)
}

// PlotByHolder finds the plot held by the given user.
func (s *service) PlotByHolder(ctx context.Context, holderUserID string) (*Plot, error) {
	plot := &Plot{}
	err := s.store.FindOne(ctx, plotsCollection, docstore.Filter{"holder_user_id": holderUserID}, plot)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrPlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plot by holder: %w", err)
	}
	return plot, nil
}
