// internal/events/implementation_test.go
package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growingtogether/pkg/docstore"
)

func TestCreateEventValidation(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, "admin-1", CreateInput{Date: time.Now()})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = svc.CreateEvent(ctx, "admin-1", CreateInput{Title: "Open day"})
	assert.ErrorIs(t, err, ErrInvalidEvent)

	event, err := svc.CreateEvent(ctx, "admin-1", CreateInput{Title: "Open day", Date: time.Now()})
	require.NoError(t, err)
	assert.NotNil(t, event.RSVPList)
	assert.NotNil(t, event.BringList)
}

func TestListEventsAscendingByDate(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())
	ctx := context.Background()

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.CreateEvent(ctx, "admin-1", CreateInput{Title: "Harvest festival", Date: base.AddDate(0, 1, 0)})
	require.NoError(t, err)
	_, err = svc.CreateEvent(ctx, "admin-1", CreateInput{Title: "Work party", Date: base})
	require.NoError(t, err)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Work party", events[0].Title)
	assert.Equal(t, "Harvest festival", events[1].Title)
}

func TestToggleRSVP(t *testing.T) {
	svc := NewService(docstore.NewMemoryStore())
	ctx := context.Background()

	event, err := svc.CreateEvent(ctx, "admin-1", CreateInput{Title: "Open day", Date: time.Now()})
	require.NoError(t, err)

	// First toggle adds.
	updated, err := svc.ToggleRSVP(ctx, event.ID, "member-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"member-1"}, updated.RSVPList)

	// A second attendee joins alongside.
	updated, err = svc.ToggleRSVP(ctx, event.ID, "member-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"member-1", "member-2"}, updated.RSVPList)

	// Toggling again removes only that attendee.
	updated, err = svc.ToggleRSVP(ctx, event.ID, "member-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"member-2"}, updated.RSVPList)

	_, err = svc.ToggleRSVP(ctx, "no-such-event", "member-1")
	assert.ErrorIs(t, err, ErrEventNotFound)
}
