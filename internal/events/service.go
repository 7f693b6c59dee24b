// internal/events/service.go
package events

import (
	"context"
	"errors"

	"growingtogether/pkg/docstore"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// Service manages community events and attendance.
type Service interface {
	CreateEvent(ctx context.Context, creatorID string, input CreateInput) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	// ToggleRSVP adds the user to the event's attendance list, or removes
	// them if already present. Returns the updated event.
	ToggleRSVP(ctx context.Context, eventID, userID string) (*Event, error)
}

func NewService(store docstore.Store) Service {
	return newService(store)
}
