// internal/allotment/service.go
package allotment

import (
	"context"
	"errors"
)

var (
	ErrPlotNotFound = errors.New("plot not found")
	ErrNumberTaken  = errors.New("plot number already exists")
)

// Service defines the interface for the allotment directory.
type Service interface {
	CreatePlot(ctx context.Context, number, size, notes string) (*Plot, error)
	GetPlot(ctx context.Context, id string) (*Plot, error)
	ListPlots(ctx context.Context) ([]Plot, error)
	AssignHolder(ctx context.Context, plotID string, holderUserID *string) (*Plot, error)
	PlotByHolder(ctx context.Context, holderUserID string) (*Plot, error)
}
