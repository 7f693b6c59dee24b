// internal/diary/domain.go
package diary

import "time"

// Entry types recognised by the journal.
const (
	TypeSowing      = "sowing"
	TypeWatering    = "watering"
	TypeHarvest     = "harvest"
	TypeMaintenance = "maintenance"
	TypeGeneral     = "general"
)

// Entry represents one growing-diary record for a plot.
type Entry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	PlotNumber string    `json:"plot_number"`
	EntryType  string    `json:"entry_type"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Photos     []string  `json:"photos"`
	Date       time.Time `json:"date"`
	Weather    string    `json:"weather,omitempty"`
	Tags       []string  `json:"tags"`
}

// CreateInput carries a diary entry submission.
type CreateInput struct {
	PlotNumber string   `json:"plot_number"`
	EntryType  string   `json:"entry_type"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Photos     []string `json:"photos"`
	Tags       []string `json:"tags"`
}

func validEntryType(t string) bool {
	switch t {
	case TypeSowing, TypeWatering, TypeHarvest, TypeMaintenance, TypeGeneral:
		return true
	}
	return false
}
