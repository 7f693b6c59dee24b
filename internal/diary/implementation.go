// internal/diary/implementation.go
package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growingtogether/pkg/docstore"
)

const entriesCollection = "diary_entries"

// service implements the Service interface.
type service struct {
	store docstore.Store
	log   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new diary service instance.
func NewService(store docstore.Store, log *zap.Logger) Service {
	return &service{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// CreateEntry persists a new diary entry for userID.
func (s *service) CreateEntry(ctx context.Context, userID string, input CreateInput) (*Entry, error) {
	if input.PlotNumber == "" || input.Title == "" {
		return nil, fmt.Errorf("%w: plot_number and title are required", ErrInvalidEntry)
	}
	if !validEntryType(input.EntryType) {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrInvalidEntry, input.EntryType)
	}

	entry := &Entry{
		ID:         s.newID(),
		UserID:     userID,
		PlotNumber: input.PlotNumber,
		EntryType:  input.EntryType,
		Title:      input.Title,
		Content:    input.Content,
		Photos:     input.Photos,
		Date:       s.now(),
		Tags:       input.Tags,
	}
	if entry.Photos == nil {
		entry.Photos = []string{}
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	if err := s.store.Insert(ctx, entriesCollection, entry.ID, entry); err != nil {
		return nil, fmt.Errorf("insert diary entry: %w", err)
	}

	s.log.Info("diary entry created", zap.String("entry_id", entry.ID), zap.String("plot_number", entry.PlotNumber))
	return entry, nil
}

// ListEntries returns entries newest first.
func (s *service) ListEntries(ctx context.Context, plotNumber, callerID string, callerIsAdmin bool) ([]Entry, error) {
	filter := docstore.Filter{}
	if plotNumber != "" {
		filter["plot_number"] = plotNumber
	} else if !callerIsAdmin {
		filter["user_id"] = callerID
	}

	entries := []Entry{}
	err := s.store.Find(ctx, entriesCollection, filter,
		docstore.FindOptions{SortBy: "date", Descending: true, Limit: 100},
		&entries,
	)
	if err != nil {
		return nil, fmt.Errorf("list diary entries: %w", err)
	}
	return entries, nil
}
