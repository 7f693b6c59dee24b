// internal/admin/domain.go
package admin

import (
	"time"

	"growingtogether/internal/allotment"
	"growingtogether/internal/diary"
	"growingtogether/internal/events"
	"growingtogether/internal/inspection"
	"growingtogether/internal/membership"
	"growingtogether/internal/tasks"
)

// Analytics is the admin dashboard summary.
type Analytics struct {
	Users struct {
		Total   int64 `json:"total"`
		Active  int64 `json:"active"`
		Pending int64 `json:"pending"`
	} `json:"users"`
	Content struct {
		Posts        int64 `json:"posts"`
		Events       int64 `json:"events"`
		DiaryEntries int64 `json:"diary_entries"`
		Inspections  int64 `json:"inspections"`
		Tasks        int64 `json:"tasks"`
	} `json:"content"`
	RecentActivity struct {
		Posts        int `json:"posts"`
		DiaryEntries int `json:"diary_entries"`
	} `json:"recent_activity"`
	Plots struct {
		Total  int64 `json:"total"`
		Active int64 `json:"active"`
	} `json:"plots"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Export is the full community snapshot. Credentials are stripped before
// it leaves the service.
type Export struct {
	ExportedAt  time.Time               `json:"exported_at"`
	Users       []membership.Profile    `json:"users"`
	Plots       []allotment.Plot        `json:"plots"`
	Inspections []inspection.Inspection `json:"inspections"`
	Tasks       []tasks.Task            `json:"tasks"`
	Diary       []diary.Entry           `json:"diary_entries"`
	Events      []events.Event          `json:"events"`
}
