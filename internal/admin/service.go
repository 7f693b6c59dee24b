// internal/admin/service.go
package admin

import (
	"context"

	"growingtogether/pkg/docstore"
)

// Service provides the admin analytics and export surface.
type Service interface {
	Analytics(ctx context.Context) (*Analytics, error)
	Export(ctx context.Context) (*Export, error)
	// ExportXLSX renders the community snapshot as an Excel workbook.
	ExportXLSX(ctx context.Context) ([]byte, error)
}

func NewService(store docstore.Store) Service {
	return newService(store)
}
