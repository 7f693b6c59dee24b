// internal/events/implementation.go
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"growingtogether/pkg/docstore"
)

const eventsCollection = "events"

type service struct {
	store docstore.Store
	now   func() time.Time
	newID func() string
}

func newService(store docstore.Store) *service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func (s *service) CreateEvent(ctx context.Context, creatorID string, input CreateInput) (*Event, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidEvent)
	}

	bring := input.BringList
	if bring == nil {
		bring = []string{}
	}

	event := Event{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Date:        input.Date.UTC(),
		Location:    input.Location,
		BringList:   bring,
		CoverPhoto:  input.CoverPhoto,
		CreatedBy:   creatorID,
		RSVPList:    []string{},
		CreatedAt:   s.now(),
	}

	if err := s.store.Insert(ctx, eventsCollection, event.ID, event); err != nil {
		return nil, fmt.Errorf("persisting event: %w", err)
	}
	return &event, nil
}

func (s *service) ListEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	err := s.store.Find(ctx, eventsCollection, docstore.Filter{}, docstore.FindOptions{
		SortBy: "date",
	}, &events)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return events, nil
}

func (s *service) ToggleRSVP(ctx context.Context, eventID, userID string) (*Event, error) {
	var event Event
	err := s.store.FindOne(ctx, eventsCollection, docstore.Filter{"id": eventID}, &event)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading event: %w", err)
	}

	// Toggle semantics: remove when present, append otherwise.
	updated := make([]string, 0, len(event.RSVPList)+1)
	found := false
	for _, id := range event.RSVPList {
		if id == userID {
			found = true
			continue
		}
		updated = append(updated, id)
	}
	if !found {
		updated = append(updated, userID)
	}
	event.RSVPList = updated

	matched, err := s.store.UpdateOne(ctx, eventsCollection, docstore.Filter{"id": eventID}, docstore.Patch{
		"rsvp_list": updated,
	})
	if err != nil {
		return nil, fmt.Errorf("updating rsvp list: %w", err)
	}
	if matched == 0 {
		return nil, ErrEventNotFound
	}
	return &event, nil
}
