// internal/community/domain.go
package community

import "time"

// Post is a message on the community feed. Admins can pin posts or mark
// them as announcements.
type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	Content        string    `json:"content"`
	Photos         []string  `json:"photos"`
	Pinned         bool      `json:"pinned"`
	IsAnnouncement bool      `json:"is_announcement"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateInput carries a new post. The announcement flag only takes effect
// for admin authors.
type CreateInput struct {
	Content        string   `json:"content"`
	Photos         []string `json:"photos"`
	IsAnnouncement bool     `json:"is_announcement"`
}
