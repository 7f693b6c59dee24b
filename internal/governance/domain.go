// internal/governance/domain.go
package governance

import "time"

// Rule is a site rule members are asked to read and acknowledge.
type Rule struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RuleAck records that a user has acknowledged a rule. At most one per
// user per rule.
type RuleAck struct {
	ID             string    `json:"id"`
	RuleID         string    `json:"rule_id"`
	UserID         string    `json:"user_id"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

// Document is a site document record (tenancy agreements, constitution,
// meeting minutes) held alongside the rules.
type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	FileURL    string    `json:"file_url"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// RuleInput carries rule creation fields.
type RuleInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// DocumentInput carries document record creation fields.
type DocumentInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	FileURL  string `json:"file_url"`
}
