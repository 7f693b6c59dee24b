// internal/allotment/domain.go
package allotment

import "time"

// Plot represents one allotment parcel. HolderUserID is nil while the plot
// is vacant; at most one active holder exists per plot, enforced at
// assignment time.
type Plot struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	HolderUserID *string   `json:"holder_user_id"`
	Size         string    `json:"size,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
