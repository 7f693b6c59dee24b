// internal/events/domain.go
package events

import "time"

// Event represents a community event members can RSVP to.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	BringList   []string  `json:"bring_list"`
	CoverPhoto  string    `json:"cover_photo,omitempty"`
	CreatedBy   string    `json:"created_by"`
	RSVPList    []string  `json:"rsvp_list"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput carries an event creation request.
type CreateInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	BringList   []string  `json:"bring_list"`
	CoverPhoto  string    `json:"cover_photo"`
}
