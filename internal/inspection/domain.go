// internal/inspection/domain.go
package inspection

import "time"

// Use status recorded for a plot visit.
const (
	UseActive  = "active"
	UsePartial = "partial"
	UseNotUsed = "not_used"
)

// Upkeep condition recorded for a plot visit.
const (
	UpkeepGood = "good"
	UpkeepFair = "fair"
	UpkeepPoor = "poor"
)

// Compliance escalation levels an assessor can attach to an inspection.
const (
	ActionNone            = "none"
	ActionAdvisory        = "advisory"
	ActionWarning         = "warning"
	ActionFinalWarning    = "final_warning"
	ActionRecommendRemove = "recommend_removal"
)

// Member notice lifecycle states.
const (
	NoticeOpen         = "open"
	NoticeAcknowledged = "acknowledged"
	NoticeClosed       = "closed"
)

// Inspection is a scored compliance assessment of a plot at a point in
// time. The score is always derived, never caller-supplied, and the record
// is immutable once written.
type Inspection struct {
	ID               string     `json:"id"`
	PlotID           string     `json:"plot_id"`
	AssessorUserID   string     `json:"assessor_user_id"`
	Date             time.Time  `json:"date"`
	UseStatus        string     `json:"use_status"`
	Upkeep           string     `json:"upkeep"`
	Issues           []string   `json:"issues"`
	Notes            string     `json:"notes,omitempty"`
	Photos           []string   `json:"photos"`
	Score            int        `json:"score"`
	Action           string     `json:"action"`
	ReinspectBy      *time.Time `json:"reinspect_by,omitempty"`
	SharedWithMember bool       `json:"shared_with_member"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// MemberNotice is a message to a plot holder, derived from the inspection
// that triggered it.
type MemberNotice struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	InspectionID string    `json:"inspection_id,omitempty"`
	Title        string    `json:"title"`
	Body         string    `json:"body"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateInput carries an inspection submission. ReinspectBy is the raw
// string from the client; parsing is deliberately lenient (see Create).
type CreateInput struct {
	PlotID           string   `json:"plot_id"`
	UseStatus        string   `json:"use_status"`
	Upkeep           string   `json:"upkeep"`
	Issues           []string `json:"issues"`
	Notes            string   `json:"notes"`
	Photos           []string `json:"photos"`
	Action           string   `json:"action"`
	ReinspectBy      string   `json:"reinspect_by"`
	SharedWithMember *bool    `json:"shared_with_member"`
}

// Result is the structured outcome of recording an inspection. NoticeCreated
// makes the conditional side effect observable instead of silent, and
// Warnings carries non-fatal diagnostics such as an unparseable reinspection
// date or a failed notice write.
type Result struct {
	Inspection    *Inspection `json:"inspection"`
	NoticeCreated bool        `json:"notice_created"`
	Warnings      []string    `json:"warnings,omitempty"`
}

// Filters narrows inspection listings.
type Filters struct {
	PlotID     string
	Action     string
	AssessorID string
	DateFrom   *time.Time
	DateTo     *time.Time
	SharedOnly bool
}

func validUseStatus(s string) bool {
	return s == UseActive || s == UsePartial || s == UseNotUsed
}

func validUpkeep(s string) bool {
	return s == UpkeepGood || s == UpkeepFair || s == UpkeepPoor
}

func validAction(s string) bool {
	switch s {
	case ActionNone, ActionAdvisory, ActionWarning, ActionFinalWarning, ActionRecommendRemove:
		return true
	}
	return false
}
