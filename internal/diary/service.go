// internal/diary/service.go
package diary

import (
	"context"
	"errors"
)

var ErrInvalidEntry = errors.New("invalid diary entry")

// Service defines the interface for the diary service.
type Service interface {
	CreateEntry(ctx context.Context, userID string, input CreateInput) (*Entry, error)
	// ListEntries returns entries newest first. With no plot filter,
	// non-admin callers only see their own entries.
	ListEntries(ctx context.Context, plotNumber, callerID string, callerIsAdmin bool) ([]Entry, error)
}
